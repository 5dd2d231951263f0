package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
)

const metricsOperation = "reschedule"

// UseCase use case для переноса записи на другую дату или время
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityChecker
	cache           SlotCache
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityChecker,
	cache SlotCache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute переносит запись, сохраняя её длительность.
// Проверка и обновление выполняются без транзакции: одинаковое время начала отсекает
// частичный уникальный индекс, пересечение со сдвигом остаётся возможным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("RescheduleAppointment: appointment id=%d to date=%s, time=%s by user=%d",
		req.AppointmentID, req.NewDate.Format(domain.DateFormat), req.NewStartTime, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}

	if !appointment.IsActive || !appointment.CanReschedule() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d in status=%s cannot be rescheduled",
			appointment.ID, appointment.Status)
		return nil, fmt.Errorf("%w: status %s", ErrInvalidTransition, appointment.Status)
	}

	newDate := domain.TruncateDate(req.NewDate)
	newEndTime, err := req.NewStartTime.AddMinutes(appointment.DurationMinutes)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: new interval crosses midnight for appointment id=%d", appointment.ID)
		return nil, ErrNewSlotNotAvailable
	}

	available, err := uc.availability.CheckAvailability(ctx, appointment.WorkshopID, newDate,
		req.NewStartTime, appointment.DurationMinutes, &appointment.ID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: availability check failed for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: check availability: %v", ErrInternal, err)
	}
	if !available {
		uc.metrics.IncSlotConflict(metricsOperation)
		uc.logger.Warn("RescheduleAppointment: new slot %s %s is not available for appointment id=%d",
			newDate.Format(domain.DateFormat), req.NewStartTime, appointment.ID)
		return nil, ErrNewSlotNotAvailable
	}

	oldDate := appointment.AppointmentDate

	appointment.AppointmentDate = newDate
	appointment.StartTime = req.NewStartTime
	appointment.EndTime = newEndTime
	appointment.Status = domain.StatusRescheduled
	if req.UserID > 0 {
		appointment.UpdatedBy = &req.UserID
	}

	updated, err := uc.appointmentRepo.Update(ctx, appointment)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.metrics.IncSlotConflict(metricsOperation)
			uc.logger.Warn("RescheduleAppointment: slot index rejected appointment id=%d: %v", appointment.ID, err)
			return nil, ErrNewSlotNotAvailable
		}
		uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: update appointment: %v", ErrInternal, err)
	}

	uc.invalidate(ctx, updated.WorkshopID, oldDate)
	if !domain.SameDate(oldDate, updated.AppointmentDate) {
		uc.invalidate(ctx, updated.WorkshopID, updated.AppointmentDate)
	}

	if err := uc.publisher.Publish(ctx, events.AppointmentRescheduled, updated); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to publish event for appointment id=%d: %v", updated.ID, err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s %s",
		updated.ID, updated.AppointmentDate.Format(domain.DateFormat), updated.StartTime)
	return models.FromDomainAppointment(updated), nil
}

func (uc *UseCase) invalidate(ctx context.Context, workshopID int64, date time.Time) {
	if err := uc.cache.InvalidateDate(ctx, workshopID, date); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to invalidate slot cache for workshop=%d, date=%s: %v",
			workshopID, date.Format(domain.DateFormat), err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}
	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}
	return nil
}
