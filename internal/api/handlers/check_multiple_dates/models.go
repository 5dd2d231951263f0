package check_multiple_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// CheckMultipleDatesRequest HTTP request model
type CheckMultipleDatesRequest struct {
	Dates       []string `json:"dates"` // ["2025-10-15", "2025-10-16"]
	ServiceType string   `json:"serviceType"`
}

// ParseDates разбирает даты запроса, порядок сохраняется
func (r *CheckMultipleDatesRequest) ParseDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, raw := range r.Dates {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("dates: %q: %w", raw, err)
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func (r *CheckMultipleDatesRequest) DomainServiceType() domain.ServiceType {
	return domain.ServiceType(r.ServiceType)
}
