package update_schedule_day

import "github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"

// UpdateScheduleDayRequest HTTP request model, передаются только изменяемые поля
type UpdateScheduleDayRequest struct {
	IsOpen              *bool   `json:"isOpen,omitempty"`
	OpenTime            *string `json:"openTime,omitempty"`
	CloseTime           *string `json:"closeTime,omitempty"`
	BreakStartTime      *string `json:"breakStartTime,omitempty"`
	BreakEndTime        *string `json:"breakEndTime,omitempty"`
	ClearBreak          bool    `json:"clearBreak,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
}

func (r *UpdateScheduleDayRequest) ToServiceRequest(workshopID, userID int64, day string) *models.UpdateDayRequest {
	return &models.UpdateDayRequest{
		WorkshopID:          workshopID,
		UserID:              userID,
		DayOfWeek:           day,
		IsOpen:              r.IsOpen,
		OpenTime:            r.OpenTime,
		CloseTime:           r.CloseTime,
		BreakStartTime:      r.BreakStartTime,
		BreakEndTime:        r.BreakEndTime,
		ClearBreak:          r.ClearBreak,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
}
