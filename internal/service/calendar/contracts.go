package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// AvailabilityEngine расписание дня и свободные слоты
type AvailabilityEngine interface {
	EffectiveSchedule(ctx context.Context, workshopID int64, date time.Time) (domain.DaySchedule, error)
	AvailableSlots(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindByWorkshopWithFilter(ctx context.Context, filter domain.WorkshopAppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
