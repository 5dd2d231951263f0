package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	GetWeekly(ctx context.Context, workshopID int64, includeInactive bool) (*models.WeeklyScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
