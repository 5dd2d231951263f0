package check_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	WorkshopID      int64  `json:"workshopId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}
