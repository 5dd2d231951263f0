package check_multiple_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar/models"
)

type CalendarService interface {
	CheckMultipleDates(ctx context.Context, workshopID int64, dates []time.Time, serviceType domain.ServiceType) (*models.MultipleDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
