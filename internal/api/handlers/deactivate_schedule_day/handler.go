package deactivate_schedule_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
)

const (
	msgInvalidWorkshopID = "некорректный ID мастерской"
	msgInvalidDay        = "некорректный день недели"
	msgScheduleNotFound  = "расписание на этот день не задано"
	msgMissingUserID     = "отсутствует ID пользователя"
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

// Handle DELETE /api/v1/workshops/{workshopId}/schedule/{day}
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

	if err := h.service.DeactivateDay(r.Context(), workshopID, userID, day); err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDay)
		case errors.Is(err, schedules.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgScheduleNotFound)
		default:
			h.logger.Error("DELETE /workshops/{id}/schedule/{day} - Failed: workshop_id=%d, day=%s, error=%v", workshopID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /workshops/{id}/schedule/{day} - Day deactivated: workshop_id=%d, day=%s, user_id=%d", workshopID, day, userID)
	w.WriteHeader(http.StatusNoContent)
}
