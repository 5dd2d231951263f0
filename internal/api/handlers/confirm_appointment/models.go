package confirm_appointment

import "github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"

// ConfirmAppointmentRequest HTTP request model, тело необязательно
type ConfirmAppointmentRequest struct {
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

func (r *ConfirmAppointmentRequest) ToServiceRequest(userID int64) *models.ConfirmRequest {
	return &models.ConfirmRequest{
		UserID:     userID,
		EmployeeID: r.EmployeeID,
	}
}
