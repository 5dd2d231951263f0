package get_busy_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar"
)

const (
	msgInvalidWorkshopID = "некорректный ID мастерской"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "диапазон дат должен быть не длиннее 90 дней и не обратным"
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

// Handle GET /api/v1/workshops/{workshopId}/busy-dates?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	query := r.URL.Query()
	startDate, startErr := handlers.ParseDate(query.Get("startDate"))
	endDate, endErr := handlers.ParseDate(query.Get("endDate"))
	if startErr != nil || endErr != nil {
		h.logger.Warn("GET /workshops/{id}/busy-dates - Invalid dates: startDate=%q, endDate=%q",
			query.Get("startDate"), query.Get("endDate"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BusyDates(r.Context(), workshopID, startDate, endDate)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /workshops/{id}/busy-dates - Failed: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /workshops/{id}/busy-dates - Busy dates retrieved: workshop_id=%d, count=%d", workshopID, len(result.BusyDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
