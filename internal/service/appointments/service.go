package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/integrations/reparationorders"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// Service сервис жизненного цикла записей
type Service struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityChecker
	reparation      ReparationOrderClient
	cache           SlotCache
	publisher       EventPublisher
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	availability AvailabilityChecker,
	reparation ReparationOrderClient,
	cache SlotCache,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		reparation:      reparation,
		cache:           cache,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByWorkshop получает записи мастерской с фильтрацией по периоду и статусу
func (s *Service) ListByWorkshop(ctx context.Context, req *models.ListWorkshopAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("ListByWorkshop: fetching appointments for workshop=%d", req.WorkshopID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("ListByWorkshop: endDate before startDate for workshop=%d", req.WorkshopID)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByWorkshop: invalid filter for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.FindByWorkshopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByWorkshop: repository error for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: ListByWorkshop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByWorkshop: fetched %d appointments for workshop=%d", len(appointments), req.WorkshopID)
	return models.FromDomainAppointmentList(appointments), nil
}

// CheckAvailability проверяет, свободен ли интервал
func (s *Service) CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int) (bool, error) {
	available, err := s.availability.CheckAvailability(ctx, workshopID, date, startTime, durationMinutes, nil)
	if err != nil {
		s.logger.Error("CheckAvailability: workshop=%d, date=%s, start=%s: %v",
			workshopID, date.Format(domain.DateFormat), startTime, err)
		return false, fmt.Errorf("%w: CheckAvailability - %v", ErrInternal, err)
	}
	return available, nil
}

// Confirm подтверждает запись и опционально назначает сотрудника.
// Доступность слота повторно не проверяется.
func (s *Service) Confirm(ctx context.Context, id int64, req *models.ConfirmRequest) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Confirm", id, req.UserID, (*domain.Appointment).CanConfirm, events.AppointmentConfirmed,
		func(a *domain.Appointment, now time.Time) {
			a.Status = domain.StatusConfirmed
			a.ConfirmedAt = &now
			a.ConfirmationSent = true
			if req.EmployeeID != nil {
				a.EmployeeID = req.EmployeeID
			}
		})
}

// Cancel отменяет запись. Причина обязательна.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		s.logger.Warn("Cancel: empty reason for appointment id=%d", id)
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: reason too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.transition(ctx, "Cancel", id, req.UserID, (*domain.Appointment).CanCancel, events.AppointmentCancelled,
		func(a *domain.Appointment, now time.Time) {
			a.Status = domain.StatusCancelled
			a.CancelledAt = &now
			a.CancellationReason = &reason
		})
}

// Start переводит запись в работу
func (s *Service) Start(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Start", id, userID, (*domain.Appointment).CanStart, events.AppointmentStarted,
		func(a *domain.Appointment, now time.Time) {
			a.Status = domain.StatusInProgress
			a.StartedAt = &now
		})
}

// Complete завершает работы по записи
func (s *Service) Complete(ctx context.Context, id int64, req *models.CompleteRequest) (*models.AppointmentResponse, error) {
	if req.ActualCost != nil && *req.ActualCost < 0 {
		return nil, fmt.Errorf("%w: actualCost must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return s.transition(ctx, "Complete", id, req.UserID, (*domain.Appointment).CanComplete, events.AppointmentCompleted,
		func(a *domain.Appointment, now time.Time) {
			a.Status = domain.StatusCompleted
			a.CompletedAt = &now
			if req.ActualCost != nil {
				a.ActualCost = req.ActualCost
			}
			if req.Notes != nil {
				a.CompletionNotes = req.Notes
			}
		})
}

// MarkNoShow отмечает неявку клиента
func (s *Service) MarkNoShow(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "MarkNoShow", id, userID, (*domain.Appointment).CanMarkNoShow, events.AppointmentNoShow,
		func(a *domain.Appointment, _ time.Time) {
			a.Status = domain.StatusNoShow
		})
}

// Deactivate скрывает запись и освобождает её интервал
func (s *Service) Deactivate(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Deactivate: appointment id=%d by user=%d", id, userID)

	appointment, err := s.load(ctx, "Deactivate", id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsActive {
		return models.FromDomainAppointment(appointment), nil
	}

	appointment.IsActive = false
	return s.save(ctx, "Deactivate", appointment, userID, "")
}

// Restore возвращает запись в активное состояние.
// Если запись занимает интервал, он должен быть по-прежнему свободен.
func (s *Service) Restore(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Restore: appointment id=%d by user=%d", id, userID)

	appointment, err := s.load(ctx, "Restore", id)
	if err != nil {
		return nil, err
	}
	if appointment.IsActive {
		return models.FromDomainAppointment(appointment), nil
	}

	if appointment.Status != domain.StatusCancelled {
		available, err := s.availability.CheckAvailability(ctx, appointment.WorkshopID, appointment.AppointmentDate,
			appointment.StartTime, appointment.DurationMinutes, &appointment.ID)
		if err != nil {
			s.logger.Error("Restore: availability check failed for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Restore - check availability: %v", ErrInternal, err)
		}
		if !available {
			s.logger.Warn("Restore: slot is taken for appointment id=%d", id)
			return nil, ErrSlotNotAvailable
		}
	}

	appointment.IsActive = true
	return s.save(ctx, "Restore", appointment, userID, "")
}

// CreateReparationOrder создает заказ-наряд во внешнем сервисе и связывает его с записью
func (s *Service) CreateReparationOrder(ctx context.Context, id int64, userID int64) (*models.ReparationOrderResponse, error) {
	s.logger.Info("CreateReparationOrder: appointment id=%d by user=%d", id, userID)

	appointment, err := s.load(ctx, "CreateReparationOrder", id)
	if err != nil {
		return nil, err
	}
	if appointment.HasReparationOrder() {
		s.logger.Warn("CreateReparationOrder: appointment id=%d already linked to order=%d", id, *appointment.ReparationOrderID)
		return nil, ErrReparationOrderAlreadyLinked
	}

	description := ""
	if appointment.Description != nil {
		description = *appointment.Description
	}

	order, err := s.reparation.CreateOrder(ctx, reparationorders.CreateOrderRequest{
		Name:        appointment.Title,
		Description: description,
		WorkshopID:  appointment.WorkshopID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reparationorders.ErrServiceUnavailable):
			s.logger.Warn("CreateReparationOrder: reparation service unavailable for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrReparationServiceUnavailable, err)
		case errors.Is(err, reparationorders.ErrRejected):
			s.logger.Warn("CreateReparationOrder: order rejected for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrReparationOrderRejected, err)
		default:
			s.logger.Error("CreateReparationOrder: client error for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: CreateReparationOrder - client error: %v", ErrInternal, err)
		}
	}

	// Привязка условная: параллельный вызов, успевший первым, не перезаписывается
	var updatedBy *int64
	if userID != 0 {
		updatedBy = &userID
	}
	linked, err := s.appointmentRepo.LinkReparationOrder(ctx, id, order.ID, updatedBy)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrReparationOrderAlreadyLinked) {
			s.logger.Error("CreateReparationOrder: appointment id=%d was linked concurrently, order=%d left unlinked", id, order.ID)
			return nil, ErrReparationOrderAlreadyLinked
		}
		s.logger.Error("CreateReparationOrder: failed to link order=%d to appointment id=%d, order left unlinked: %v", order.ID, id, err)
		return nil, fmt.Errorf("%w: CreateReparationOrder - link order: %v", ErrInternal, err)
	}

	s.logger.Info("CreateReparationOrder: appointment id=%d linked to order=%d", id, order.ID)
	return &models.ReparationOrderResponse{
		OrderID:     order.ID,
		Name:        order.Name,
		Description: order.Description,
		WorkshopID:  order.WorkshopID,
		Status:      order.Status,
		Appointment: *models.FromDomainAppointment(linked),
	}, nil
}

// transition выполняет переход статуса: загрузка, проверка допустимости, изменение, сохранение и событие
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	userID int64,
	allowed func(*domain.Appointment) bool,
	eventType string,
	mutate func(a *domain.Appointment, now time.Time),
) (*models.AppointmentResponse, error) {
	s.logger.Info("%s: appointment id=%d by user=%d", op, id, userID)

	appointment, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !allowed(appointment) {
		s.logger.Warn("%s: transition not allowed from status=%s for appointment id=%d", op, appointment.Status, id)
		return nil, fmt.Errorf("%w: cannot %s appointment in status %s", ErrInvalidTransition, strings.ToLower(op), appointment.Status)
	}

	mutate(appointment, s.now().UTC())
	return s.save(ctx, op, appointment, userID, eventType)
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// save сохраняет запись, сбрасывает кэш слотов даты и публикует событие, если оно задано
func (s *Service) save(ctx context.Context, op string, appointment *domain.Appointment, userID int64, eventType string) (*models.AppointmentResponse, error) {
	if userID != 0 {
		appointment.UpdatedBy = &userID
	}

	updated, err := s.appointmentRepo.Update(ctx, appointment)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			s.logger.Warn("%s: slot taken for appointment id=%d", op, appointment.ID)
			return nil, ErrSlotNotAvailable
		}
		s.logger.Error("%s: failed to update appointment id=%d: %v", op, appointment.ID, err)
		return nil, fmt.Errorf("%w: %s - update: %v", ErrInternal, op, err)
	}

	if err := s.cache.InvalidateDate(ctx, updated.WorkshopID, updated.AppointmentDate); err != nil {
		s.logger.Warn("%s: failed to invalidate slot cache for workshop=%d: %v", op, updated.WorkshopID, err)
	}

	if eventType != "" {
		if err := s.publisher.Publish(ctx, eventType, updated); err != nil {
			s.logger.Warn("%s: failed to publish %s for appointment id=%d: %v", op, eventType, updated.ID, err)
		}
	}

	s.logger.Info("%s: appointment id=%d saved with status=%s", op, updated.ID, updated.Status)
	return models.FromDomainAppointment(updated), nil
}
