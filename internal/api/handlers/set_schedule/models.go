package set_schedule

import "github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"

// SetScheduleRequest HTTP request model
type SetScheduleRequest struct {
	Days []models.DayScheduleRequest `json:"days"`
}

func (r *SetScheduleRequest) ToServiceRequest(workshopID, userID int64) *models.SetWeeklyScheduleRequest {
	return &models.SetWeeklyScheduleRequest{
		WorkshopID: workshopID,
		UserID:     userID,
		Days:       r.Days,
	}
}
