package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/integrations/reparationorders"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	FindByWorkshopWithFilter(ctx context.Context, filter domain.WorkshopAppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	LinkReparationOrder(ctx context.Context, id, orderID int64, updatedBy *int64) (*domain.Appointment, error)
}

// AvailabilityChecker проверка свободного интервала
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeAppointmentID *int64) (bool, error)
}

// ReparationOrderClient интерфейс клиента сервиса заказ-нарядов
type ReparationOrderClient interface {
	CreateOrder(ctx context.Context, req reparationorders.CreateOrderRequest) (*domain.ReparationOrder, error)
}

// SlotCache инвалидация кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, workshopID int64, date time.Time) error
}

// EventPublisher публикация событий жизненного цикла записи
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
