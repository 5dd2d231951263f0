package list_exceptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

const (
	msgInvalidWorkshopID = "некорректный ID мастерской"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workshops/{workshopId}/schedule/exceptions
// Query params: from, to, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	query := r.URL.Query()
	from, fromErr := handlers.ParseOptionalDate(query.Get("from"))
	to, toErr := handlers.ParseOptionalDate(query.Get("to"))
	if fromErr != nil || toErr != nil {
		h.logger.Warn("GET /workshops/{id}/schedule/exceptions - Invalid dates: from=%q, to=%q", query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListExceptionsRequest{WorkshopID: workshopID, From: from, To: to}
	if raw := query.Get("includeInactive"); raw != "" {
		if req.IncludeInactive, err = strconv.ParseBool(raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.ListExceptions(r.Context(), req)
	if err != nil {
		if errors.Is(err, schedules.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /workshops/{id}/schedule/exceptions - Failed: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
