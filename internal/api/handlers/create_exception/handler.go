package create_exception

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidException   = "для рабочего дня нужны специальные часы работы"
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

// Handle POST /api/v1/workshops/{workshopId}/schedule/exceptions
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

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workshops/{id}/schedule/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(workshopID, userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateException(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, schedules.ErrInvalidInput) {
			h.logger.Warn("POST /workshops/{id}/schedule/exceptions - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidException)
			return
		}
		h.logger.Error("POST /workshops/{id}/schedule/exceptions - Failed: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /workshops/{id}/schedule/exceptions - Exception created: workshop_id=%d, date=%s, user_id=%d",
		workshopID, req.Date, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
