package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
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

// Handle GET /api/v1/workshops/{workshopId}/schedule
// Query params: includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.GetWeekly(r.Context(), workshopID, includeInactive)
	if err != nil {
		h.logger.Error("GET /workshops/{id}/schedule - Failed to get schedule: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
