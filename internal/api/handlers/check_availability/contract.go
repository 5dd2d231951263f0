package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

type AppointmentService interface {
	CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
