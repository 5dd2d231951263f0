package set_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
)

const (
	msgInvalidWorkshopID  = "некорректный ID мастерской"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание: от 1 до 7 разных дней с корректными часами работы"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle PUT /api/v1/workshops/{workshopId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	var req SetScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /workshops/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWeeklySchedule(r.Context(), req.ToServiceRequest(workshopID, userID))
	if err != nil {
		if errors.Is(err, schedules.ErrInvalidInput) {
			h.logger.Warn("PUT /workshops/{id}/schedule - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)
			return
		}
		h.logger.Error("PUT /workshops/{id}/schedule - Failed to set schedule: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /workshops/{id}/schedule - Schedule saved: workshop_id=%d, days=%d, user_id=%d", workshopID, len(req.Days), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
