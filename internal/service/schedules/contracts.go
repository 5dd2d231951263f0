package schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	Update(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	FindByWorkshopAndDay(ctx context.Context, workshopID int64, day domain.DayOfWeek) (*domain.WeeklySchedule, error)
	FindAllByWorkshop(ctx context.Context, workshopID int64, includeInactive bool) ([]*domain.WeeklySchedule, error)
	SetActive(ctx context.Context, workshopID int64, day domain.DayOfWeek, active bool, updatedBy *int64) error

	CreateException(ctx context.Context, exception *domain.ScheduleException) (*domain.ScheduleException, error)
	ListExceptions(ctx context.Context, workshopID int64, from, to *time.Time, includeInactive bool) ([]*domain.ScheduleException, error)
	DeactivateException(ctx context.Context, workshopID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache инвалидация кэша слотов мастерской
type SlotCache interface {
	InvalidateWorkshop(ctx context.Context, workshopID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
