package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	if req.WorkshopID <= 0 {
		return fmt.Errorf("%w: workshopId must be positive", ErrInvalidInput)
	}

	if req.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: unknown serviceType %q", ErrInvalidInput, req.ServiceType)
	}

	if req.Priority != nil && !req.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *req.Priority)
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		return fmt.Errorf("%w: estimatedCost must not be negative", ErrInvalidInput)
	}

	if req.AppointmentNumber != nil && !appointmentNumberPattern.MatchString(*req.AppointmentNumber) {
		return fmt.Errorf("%w: appointmentNumber must match APP-YYMMDD-NNNN", ErrInvalidInput)
	}

	return nil
}

// resolveTiming вычисляет длительность и время окончания.
// Переданное время окончания должно совпадать с началом плюс длительность с точностью до минуты.
func resolveTiming(req *Request) (int, types.TimeString, error) {
	duration := req.ServiceType.StandardDuration()
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	if duration < domain.MinAppointmentDuration || duration > domain.MaxAppointmentDuration {
		return 0, "", fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinAppointmentDuration, domain.MaxAppointmentDuration)
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		return 0, "", fmt.Errorf("%w: appointment must end within the same day", ErrInvalidInput)
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return 0, "", fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
		diff := req.EndTime.Minutes() - endTime.Minutes()
		if diff < -domain.DurationToleranceMinutes || diff > domain.DurationToleranceMinutes {
			return 0, "", fmt.Errorf("%w: endTime %s does not match startTime %s plus %d minutes",
				ErrInvalidInput, *req.EndTime, req.StartTime, duration)
		}
		endTime = *req.EndTime
	}

	return duration, endTime, nil
}
