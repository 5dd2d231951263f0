package list_exceptions

import (
	"context"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	ListExceptions(ctx context.Context, req *models.ListExceptionsRequest) (*models.ExceptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
