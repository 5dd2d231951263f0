package create_reparation_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgAlreadyLinked        = "заказ-наряд для записи уже создан"
	msgRejected             = "сервис заказ-нарядов отклонил запрос"
	msgServiceUnavailable   = "сервис заказ-нарядов недоступен"
	msgMissingUserID        = "отсутствует ID пользователя"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/reparation-order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{appointmentId}/reparation-order - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	order, err := h.service.CreateReparationOrder(r.Context(), appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrReparationOrderAlreadyLinked):
			handlers.RespondConflict(w, msgAlreadyLinked)
		case errors.Is(err, appointments.ErrReparationOrderRejected):
			h.logger.Warn("POST /appointments/{appointmentId}/reparation-order - Rejected: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgRejected)
		case errors.Is(err, appointments.ErrReparationServiceUnavailable):
			h.logger.Error("POST /appointments/{appointmentId}/reparation-order - Service unavailable: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondServiceUnavailable(w, msgServiceUnavailable)
		default:
			h.logger.Error("POST /appointments/{appointmentId}/reparation-order - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{appointmentId}/reparation-order - Order created: appointment_id=%d, order_id=%d", appointmentID, order.OrderID)
	handlers.RespondJSON(w, http.StatusCreated, order)
}
