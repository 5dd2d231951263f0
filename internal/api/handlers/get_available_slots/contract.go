package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

type AvailabilityService interface {
	AvailableSlots(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
