package get_workshop_appointments

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
)

// ToServiceRequest создает запрос к сервису из query параметров
func ToServiceRequest(workshopID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.ListWorkshopAppointmentsRequest, error) {
	req := &models.ListWorkshopAppointmentsRequest{
		WorkshopID: workshopID,
	}

	startDate, err := handlers.ParseOptionalDate(startDateStr)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	req.StartDate = startDate

	endDate, err := handlers.ParseOptionalDate(endDateStr)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	req.EndDate = endDate

	if statusStr != "" {
		if _, err := models.ToDomainStatus(statusStr); err != nil {
			return nil, err
		}
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
