package get_busy_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar/models"
)

type CalendarService interface {
	BusyDates(ctx context.Context, workshopID int64, startDate, endDate time.Time) (*models.BusyDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
