package create_schedule_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

const (
	msgInvalidWorkshopID  = "некорректный ID мастерской"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректные часы работы"
	msgDayAlreadyExists   = "расписание на этот день уже задано"
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

// Handle POST /api/v1/workshops/{workshopId}/schedule/days
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

	var req models.DayScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workshops/{id}/schedule/days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateDay(r.Context(), workshopID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /workshops/{id}/schedule/days - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)
		case errors.Is(err, schedules.ErrDayAlreadyExists):
			handlers.RespondConflict(w, msgDayAlreadyExists)
		default:
			h.logger.Error("POST /workshops/{id}/schedule/days - Failed to create day: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /workshops/{id}/schedule/days - Day created: workshop_id=%d, day=%s", workshopID, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
