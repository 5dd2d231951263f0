package reschedule_appointment

import (
	"context"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/reschedule_appointment"
)

type RescheduleUseCase interface {
	Execute(ctx context.Context, req *rescheduleAppointment.Request) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
