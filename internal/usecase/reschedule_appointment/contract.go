package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// AvailabilityChecker проверка свободного интервала
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeAppointmentID *int64) (bool, error)
}

// SlotCache инвалидация кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, workshopID int64, date time.Time) error
}

// EventPublisher публикация событий жизненного цикла записи
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error
}

// Metrics бизнес-метрики записи
type Metrics interface {
	IncSlotConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
