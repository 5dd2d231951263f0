package create_schedule_day

import (
	"context"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	CreateDay(ctx context.Context, workshopID, userID int64, req *models.DayScheduleRequest) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
