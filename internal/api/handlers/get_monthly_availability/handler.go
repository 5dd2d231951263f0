package get_monthly_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar"
)

const (
	msgInvalidWorkshopID = "некорректный ID мастерской"
	msgInvalidParams     = "ожидаются year, month (1-12) и serviceType"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workshops/{workshopId}/availability/monthly
// Query params: year, month, serviceType
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	query := r.URL.Query()
	year, yearErr := strconv.Atoi(query.Get("year"))
	month, monthErr := strconv.Atoi(query.Get("month"))
	if yearErr != nil || monthErr != nil {
		h.logger.Warn("GET /workshops/{id}/availability/monthly - Invalid year or month: year=%q, month=%q",
			query.Get("year"), query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.MonthlyAvailability(r.Context(), workshopID, year, month, domain.ServiceType(query.Get("serviceType")))
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			h.logger.Warn("GET /workshops/{id}/availability/monthly - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /workshops/{id}/availability/monthly - Failed: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /workshops/{id}/availability/monthly - Calendar built: workshop_id=%d, %04d-%02d", workshopID, year, month)
	handlers.RespondJSON(w, http.StatusOK, result)
}
