package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	FindByWorkshopAndDay(ctx context.Context, workshopID int64, day domain.DayOfWeek) (*domain.WeeklySchedule, error)
	FindExceptionsForDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.ScheduleException, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindOccupyingByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Appointment, error)
}

// SlotCache кэш рассчитанных свободных слотов.
// Set записывает значение, только если версия даты не изменилась с момента чтения Version.
type SlotCache interface {
	Get(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, bool, error)
	Version(ctx context.Context, workshopID int64, date time.Time) (string, error)
	Set(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType, version string, slots []types.TimeString) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
