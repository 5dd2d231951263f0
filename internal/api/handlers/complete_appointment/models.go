package complete_appointment

import "github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	ActualCost *float64 `json:"actualCost,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

func (r *CompleteAppointmentRequest) ToServiceRequest(userID int64) *models.CompleteRequest {
	return &models.CompleteRequest{
		UserID:     userID,
		ActualCost: r.ActualCost,
		Notes:      r.Notes,
	}
}
