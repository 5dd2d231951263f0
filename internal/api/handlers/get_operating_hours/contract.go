package get_operating_hours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

type AvailabilityService interface {
	HoursFor(ctx context.Context, workshopID int64, date time.Time) (*domain.OperatingHours, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
