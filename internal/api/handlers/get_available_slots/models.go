package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	WorkshopID      int64    `json:"workshopId"`
	Date            string   `json:"date"`
	ServiceType     string   `json:"serviceType"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// FromServiceResponse собирает HTTP ответ из списка времён начала
func FromServiceResponse(workshopID int64, date time.Time, serviceType domain.ServiceType, slots []types.TimeString) *AvailableSlotsResponse {
	result := make([]string, len(slots))
	for i, slot := range slots {
		result[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		WorkshopID:      workshopID,
		Date:            date.Format(domain.DateFormat),
		ServiceType:     string(serviceType),
		DurationMinutes: serviceType.StandardDuration(),
		Slots:           result,
	}
}
