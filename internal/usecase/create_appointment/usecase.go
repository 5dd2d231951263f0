package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/txmanager"
)

const (
	metricsOperation = "create"

	// maxInsertAttempts попытки вставки при коллизии сгенерированного номера
	maxInsertAttempts = 3
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityChecker
	txManager       TransactionManager
	cache           SlotCache
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	numberGenerator func(time.Time) string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	cache SlotCache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		numberGenerator: newAppointmentNumber,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("CreateAppointment: user=%d, client=%d, workshop=%d, date=%s, time=%s, serviceType=%s",
		req.UserID, req.ClientID, req.WorkshopID, req.AppointmentDate.Format(domain.DateFormat), req.StartTime, req.ServiceType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	duration, endTime, err := resolveTiming(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: timing validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().UTC()
	date := domain.TruncateDate(req.AppointmentDate)

	// 2. Номер записи
	number, err := uc.resolveNumber(ctx, req, now)
	if err != nil {
		return nil, err
	}

	priority := domain.DefaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	appointment := &domain.Appointment{
		AppointmentNumber: number,
		ClientID:          req.ClientID,
		WorkshopID:        req.WorkshopID,
		EmployeeID:        req.EmployeeID,
		ContactID:         req.ContactID,
		AppointmentDate:   date,
		StartTime:         req.StartTime,
		EndTime:           endTime,
		DurationMinutes:   duration,
		ServiceType:       req.ServiceType,
		Priority:          priority,
		Status:            domain.StatusPending,
		Title:             req.Title,
		Description:       req.Description,
		Notes:             req.Notes,
		EstimatedCost:     req.EstimatedCost,
		Vehicle:           req.Vehicle,
		IsActive:          true,
	}
	if req.UserID > 0 {
		appointment.CreatedBy = &req.UserID
		appointment.UpdatedBy = &req.UserID
	}

	// 3. Проверка доступности и вставка в сериализуемой транзакции.
	// Коллизия сгенерированного номера при вставке приводит к новому номеру и повтору.
	var result *domain.Appointment
	for attempt := 1; ; attempt++ {
		result, err = uc.insert(ctx, req, appointment, date, duration)
		if err == nil {
			break
		}
		if req.AppointmentNumber != nil || !errors.Is(err, appointmentRepo.ErrDuplicateNumber) {
			return nil, uc.translateError(req, err)
		}
		if attempt == maxInsertAttempts {
			uc.logger.Error("CreateAppointment: generated numbers kept colliding on insert: %v", err)
			return nil, ErrNumberGenerationExhausted
		}

		uc.logger.Warn("CreateAppointment: generated number %s collided on insert, attempt %d", appointment.AppointmentNumber, attempt)
		number, err := uc.generateNumber(ctx, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: %v", err)
			return nil, err
		}
		appointment.AppointmentNumber = number
	}

	uc.metrics.IncAppointmentCreated(string(result.ServiceType))

	if err := uc.cache.InvalidateDate(ctx, result.WorkshopID, result.AppointmentDate); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate slot cache for workshop=%d: %v", result.WorkshopID, err)
	}

	if err := uc.publisher.Publish(ctx, events.AppointmentCreated, result); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", result.ID, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, number=%s", result.ID, result.AppointmentNumber)
	return models.FromDomainAppointment(result), nil
}

// insert проверяет доступность интервала и создаёт запись в одной транзакции
func (uc *UseCase) insert(
	ctx context.Context,
	req *Request,
	appointment *domain.Appointment,
	date time.Time,
	duration int,
) (*domain.Appointment, error) {
	var created *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		available, err := uc.availability.CheckAvailability(txCtx, req.WorkshopID, date, req.StartTime, duration, nil)
		if err != nil {
			return fmt.Errorf("%w: check availability: %w", ErrInternal, err)
		}
		if !available {
			return ErrSlotNotAvailable
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveNumber возвращает переданный номер, если он свободен, иначе генерирует новый
func (uc *UseCase) resolveNumber(ctx context.Context, req *Request, now time.Time) (string, error) {
	if req.AppointmentNumber == nil {
		number, err := uc.generateNumber(ctx, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: %v", err)
			return "", err
		}
		return number, nil
	}

	exists, err := uc.appointmentRepo.ExistsByNumber(ctx, *req.AppointmentNumber)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check number %s: %v", *req.AppointmentNumber, err)
		return "", fmt.Errorf("%w: check number: %v", ErrInternal, err)
	}
	if exists {
		uc.logger.Warn("CreateAppointment: number %s already exists", *req.AppointmentNumber)
		return "", ErrNumberTaken
	}
	return *req.AppointmentNumber, nil
}

// translateError приводит ошибки транзакции к ошибкам use case.
// Конфликт сериализации и нарушение уникального индекса слота означают занятый слот,
// в том числе когда конфликт возник при чтении внутри проверки доступности.
func (uc *UseCase) translateError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable),
		errors.Is(err, appointmentRepo.ErrSlotTaken),
		errors.Is(err, appointmentRepo.ErrSerialization),
		errors.Is(err, txmanager.ErrSerializationFailure):
		uc.metrics.IncSlotConflict(metricsOperation)
		uc.logger.Warn("CreateAppointment: slot %s %s is not available for workshop=%d: %v",
			req.AppointmentDate.Format(domain.DateFormat), req.StartTime, req.WorkshopID, err)
		return ErrSlotNotAvailable
	case errors.Is(err, appointmentRepo.ErrDuplicateNumber):
		uc.logger.Warn("CreateAppointment: supplied number collided on insert: %v", err)
		return ErrNumberTaken
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateAppointment: %v", err)
		return err
	default:
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}
