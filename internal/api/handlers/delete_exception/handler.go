package delete_exception

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
)

const (
	msgInvalidWorkshopID  = "некорректный ID мастерской"
	msgInvalidExceptionID = "некорректный ID исключения"
	msgExceptionNotFound  = "исключение не найдено"
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

// Handle DELETE /api/v1/workshops/{workshopId}/schedule/exceptions/{exceptionId}
// Исключение деактивируется, история сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}
	exceptionID, err := handlers.PathInt64(r, "exceptionId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	if err := h.service.DeactivateException(r.Context(), workshopID, exceptionID); err != nil {
		if errors.Is(err, schedules.ErrExceptionNotFound) {
			handlers.RespondNotFound(w, msgExceptionNotFound)
			return
		}
		h.logger.Error("DELETE /workshops/{id}/schedule/exceptions/{id} - Failed: exception_id=%d, error=%v", exceptionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /workshops/{id}/schedule/exceptions/{id} - Exception deactivated: workshop_id=%d, exception_id=%d",
		workshopID, exceptionID)
	w.WriteHeader(http.StatusNoContent)
}
