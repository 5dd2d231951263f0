package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// AvailabilityChecker проверка свободного интервала
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeAppointmentID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
	IncAppointmentCreated(serviceType string)
	IncSlotConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
