package reschedule_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate"`      // "2025-10-16"
	NewStartTime string `json:"newStartTime"` // "14:00"
}

func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID int64) (*rescheduleAppointment.Request, error) {
	date, err := handlers.ParseDate(r.NewDate)
	if err != nil {
		return nil, fmt.Errorf("newDate: %w", err)
	}
	startTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, fmt.Errorf("newStartTime: %w", err)
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		NewDate:       date,
		NewStartTime:  startTime,
	}, nil
}
