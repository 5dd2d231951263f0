package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgNumberTaken        = "номер записи уже используется"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: workshop_id=%d, date=%s, time=%s",
				req.WorkshopID, req.AppointmentDate, req.StartTime)
			handlers.RespondConflict(w, createAppointment.ErrSlotNotAvailable.Error())

		case errors.Is(err, createAppointment.ErrNumberTaken):
			h.logger.Warn("POST /appointments - Number taken: workshop_id=%d", req.WorkshopID)
			handlers.RespondConflict(w, msgNumberTaken)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrNumberGenerationExhausted):
			h.logger.Error("POST /appointments - Number generation exhausted: workshop_id=%d", req.WorkshopID)
			handlers.RespondError(w, http.StatusInternalServerError, createAppointment.ErrNumberGenerationExhausted.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: workshop_id=%d, error=%v",
				req.WorkshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, number=%s, user_id=%d",
		result.ID, result.AppointmentNumber, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
