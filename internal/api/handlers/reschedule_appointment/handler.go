package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgAppointmentNotFound  = "запись не найдена"
	msgInvalidTransition    = "запись нельзя перенести в текущем статусе"
	msgMissingUserID        = "отсутствует ID пользователя"
)

type Handler struct {
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{appointmentId}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{appointmentId}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{appointmentId}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDateTime)
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, rescheduleAppointment.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)
		case errors.Is(err, rescheduleAppointment.ErrNewSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{appointmentId}/reschedule - New slot not available: appointment_id=%d, date=%s, time=%s",
				appointmentID, req.NewDate, req.NewStartTime)
			handlers.RespondConflict(w, rescheduleAppointment.ErrNewSlotNotAvailable.Error())
		default:
			h.logger.Error("PATCH /appointments/{appointmentId}/reschedule - Failed to reschedule: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{appointmentId}/reschedule - Appointment rescheduled: appointment_id=%d, date=%s, time=%s",
		appointmentID, req.NewDate, req.NewStartTime)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
