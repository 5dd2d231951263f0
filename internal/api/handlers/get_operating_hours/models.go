package get_operating_hours

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// OperatingHoursResponse HTTP response model, часы пустые для закрытого дня
type OperatingHoursResponse struct {
	WorkshopID int64   `json:"workshopId"`
	Date       string  `json:"date"`
	IsOpen     bool    `json:"isOpen"`
	OpenTime   *string `json:"openTime,omitempty"`
	CloseTime  *string `json:"closeTime,omitempty"`
}

func FromDomain(workshopID int64, date time.Time, hours *domain.OperatingHours) *OperatingHoursResponse {
	resp := &OperatingHoursResponse{
		WorkshopID: workshopID,
		Date:       date.Format(domain.DateFormat),
	}
	if hours == nil {
		return resp
	}

	open, closing := hours.OpenTime.String(), hours.CloseTime.String()
	resp.IsOpen = true
	resp.OpenTime = &open
	resp.CloseTime = &closing
	return resp
}
