package update_schedule_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
)

const (
	msgInvalidWorkshopID  = "некорректный ID мастерской"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректный день недели или часы работы"
	msgScheduleNotFound   = "расписание на этот день не задано"
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

// Handle PATCH /api/v1/workshops/{workshopId}/schedule/{day}
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
	day := mux.Vars(r)["day"]

	var req UpdateScheduleDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /workshops/{id}/schedule/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateDay(r.Context(), req.ToServiceRequest(workshopID, userID, day))
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PATCH /workshops/{id}/schedule/{day} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)
		case errors.Is(err, schedules.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgScheduleNotFound)
		default:
			h.logger.Error("PATCH /workshops/{id}/schedule/{day} - Failed to update day: workshop_id=%d, day=%s, error=%v", workshopID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /workshops/{id}/schedule/{day} - Day updated: workshop_id=%d, day=%s, user_id=%d", workshopID, day, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
