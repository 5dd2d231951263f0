package check_multiple_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar"
)

const (
	msgInvalidWorkshopID  = "некорректный ID мастерской"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams      = "требуется от 1 до 31 даты и корректный тип услуги"
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

// Handle POST /api/v1/workshops/{workshopId}/availability/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	var req CheckMultipleDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workshops/{id}/availability/dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	dates, err := req.ParseDates()
	if err != nil {
		h.logger.Warn("POST /workshops/{id}/availability/dates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CheckMultipleDates(r.Context(), workshopID, dates, req.DomainServiceType())
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			h.logger.Warn("POST /workshops/{id}/availability/dates - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("POST /workshops/{id}/availability/dates - Failed: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /workshops/{id}/availability/dates - Checked %d dates: workshop_id=%d", len(dates), workshopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
