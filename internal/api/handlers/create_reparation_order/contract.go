package create_reparation_order

import (
	"context"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
)

type AppointmentService interface {
	CreateReparationOrder(ctx context.Context, id int64, userID int64) (*models.ReparationOrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
