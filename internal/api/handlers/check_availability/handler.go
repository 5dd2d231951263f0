package check_availability

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

const (
	msgInvalidWorkshopID = "некорректный ID мастерской"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStartTime  = "некорректное время начала, ожидается HH:MM"
	msgInvalidDuration   = "длительность должна быть от 15 до 480 минут"
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

// Handle GET /api/v1/workshops/{workshopId}/availability
// Query params: date, startTime, duration (минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	query := r.URL.Query()
	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/availability - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	duration, err := strconv.Atoi(query.Get("duration"))
	if err != nil || duration < domain.MinAppointmentDuration || duration > domain.MaxAppointmentDuration {
		h.logger.Warn("GET /workshops/{id}/availability - Invalid duration: %q", query.Get("duration"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	available, err := h.service.CheckAvailability(r.Context(), workshopID, date, startTime, duration)
	if err != nil {
		h.logger.Error("GET /workshops/{id}/availability - Failed to check availability: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		WorkshopID:      workshopID,
		Date:            date.Format(domain.DateFormat),
		StartTime:       startTime.String(),
		DurationMinutes: duration,
		Available:       available,
	})
}
