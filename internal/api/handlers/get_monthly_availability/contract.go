package get_monthly_availability

import (
	"context"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar/models"
)

type CalendarService interface {
	MonthlyAvailability(ctx context.Context, workshopID int64, year, month int, serviceType domain.ServiceType) (*models.MonthlyAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
