package cancel_appointment

import "github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

func (r *CancelAppointmentRequest) ToServiceRequest(userID int64) *models.CancelRequest {
	return &models.CancelRequest{
		UserID: userID,
		Reason: r.Reason,
	}
}
