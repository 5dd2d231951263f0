package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/availability"
)

const (
	msgInvalidWorkshopID  = "некорректный ID мастерской"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceType = "некорректный тип услуги"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workshops/{workshopId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceType (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/available-slots - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /workshops/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceType := domain.ServiceType(r.URL.Query().Get("serviceType"))
	if !serviceType.IsValid() {
		h.logger.Warn("GET /workshops/{id}/available-slots - Invalid service type: %q", serviceType)
		handlers.RespondBadRequest(w, msgInvalidServiceType)
		return
	}

	slots, err := h.service.AvailableSlots(r.Context(), workshopID, date, serviceType)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidServiceType)
			return
		}
		h.logger.Error("GET /workshops/{id}/available-slots - Failed to get slots: workshop_id=%d, date=%s, error=%v",
			workshopID, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /workshops/{id}/available-slots - Slots retrieved successfully: workshop_id=%d, date=%s, slots_count=%d",
		workshopID, dateStr, len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(workshopID, date, serviceType, slots))
}
