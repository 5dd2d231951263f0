package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

// Service сервис управления недельным расписанием и исключениями
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	cache        SlotCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	cache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		cache:        cache,
		logger:       logger,
	}
}

// GetWeekly возвращает недельное расписание мастерской
func (s *Service) GetWeekly(ctx context.Context, workshopID int64, includeInactive bool) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("GetWeekly: workshop=%d, includeInactive=%t", workshopID, includeInactive)

	days, err := s.scheduleRepo.FindAllByWorkshop(ctx, workshopID, includeInactive)
	if err != nil {
		s.logger.Error("GetWeekly: repository error for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: GetWeekly - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeekly(workshopID, days), nil
}

// SetWeeklySchedule сохраняет до 7 дней одной транзакцией.
// Все дни валидируются до первой записи.
func (s *Service) SetWeeklySchedule(ctx context.Context, req *models.SetWeeklyScheduleRequest) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("SetWeeklySchedule: workshop=%d, days=%d, user=%d", req.WorkshopID, len(req.Days), req.UserID)

	if len(req.Days) == 0 || len(req.Days) > len(domain.AllDays) {
		return nil, fmt.Errorf("%w: between 1 and %d days are required", ErrInvalidInput, len(domain.AllDays))
	}

	schedules := make([]*domain.WeeklySchedule, 0, len(req.Days))
	seen := make(map[domain.DayOfWeek]bool, len(req.Days))
	for i := range req.Days {
		schedule, err := s.buildDay(&req.Days[i], req.WorkshopID, req.UserID)
		if err != nil {
			s.logger.Warn("SetWeeklySchedule: invalid day #%d for workshop=%d: %v", i, req.WorkshopID, err)
			return nil, err
		}
		if seen[schedule.DayOfWeek] {
			return nil, fmt.Errorf("%w: day %s is repeated", ErrInvalidInput, schedule.DayOfWeek)
		}
		seen[schedule.DayOfWeek] = true
		schedules = append(schedules, schedule)
	}

	saved := make([]*domain.WeeklySchedule, 0, len(schedules))
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, schedule := range schedules {
			result, err := s.scheduleRepo.Upsert(txCtx, schedule)
			if err != nil {
				return fmt.Errorf("upsert %s: %w", schedule.DayOfWeek, err)
			}
			saved = append(saved, result)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetWeeklySchedule: failed to save schedule for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: SetWeeklySchedule - %v", ErrInternal, err)
	}

	s.invalidate(ctx, "SetWeeklySchedule", req.WorkshopID)

	s.logger.Info("SetWeeklySchedule: saved %d days for workshop=%d", len(saved), req.WorkshopID)
	return models.FromDomainWeekly(req.WorkshopID, saved), nil
}

// CreateDay создает расписание на один день недели
func (s *Service) CreateDay(ctx context.Context, workshopID, userID int64, req *models.DayScheduleRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("CreateDay: workshop=%d, day=%s, user=%d", workshopID, req.DayOfWeek, userID)

	schedule, err := s.buildDay(req, workshopID, userID)
	if err != nil {
		s.logger.Warn("CreateDay: validation failed for workshop=%d: %v", workshopID, err)
		return nil, err
	}

	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateDay) {
			s.logger.Warn("CreateDay: day %s already exists for workshop=%d", schedule.DayOfWeek, workshopID)
			return nil, ErrDayAlreadyExists
		}
		s.logger.Error("CreateDay: repository error for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: CreateDay - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "CreateDay", workshopID)

	resp := models.FromDomainDay(created)
	return &resp, nil
}

// UpdateDay частично обновляет расписание дня недели
func (s *Service) UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("UpdateDay: workshop=%d, day=%s, user=%d", req.WorkshopID, req.DayOfWeek, req.UserID)

	day, err := domain.ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	schedule, err := s.findDay(ctx, "UpdateDay", req.WorkshopID, day)
	if err != nil {
		return nil, err
	}

	if err := req.ApplyTo(schedule); err != nil {
		s.logger.Warn("UpdateDay: invalid values for workshop=%d, day=%s: %v", req.WorkshopID, day, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpdateDay: validation failed for workshop=%d, day=%s: %v", req.WorkshopID, day, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.scheduleRepo.Update(ctx, schedule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("UpdateDay: repository error for workshop=%d, day=%s: %v", req.WorkshopID, day, err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "UpdateDay", req.WorkshopID)

	resp := models.FromDomainDay(updated)
	return &resp, nil
}

// DeactivateDay выключает день недели: мастерская считается закрытой в этот день
func (s *Service) DeactivateDay(ctx context.Context, workshopID, userID int64, dayName string) error {
	return s.setDayActive(ctx, "DeactivateDay", workshopID, userID, dayName, false)
}

// RestoreDay возвращает ранее выключенный день недели
func (s *Service) RestoreDay(ctx context.Context, workshopID, userID int64, dayName string) error {
	return s.setDayActive(ctx, "RestoreDay", workshopID, userID, dayName, true)
}

func (s *Service) setDayActive(ctx context.Context, op string, workshopID, userID int64, dayName string, active bool) error {
	s.logger.Info("%s: workshop=%d, day=%s, user=%d", op, workshopID, dayName, userID)

	day, err := domain.ParseDayOfWeek(dayName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updatedBy *int64
	if userID > 0 {
		updatedBy = &userID
	}

	if err := s.scheduleRepo.SetActive(ctx, workshopID, day, active, updatedBy); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: day %s not configured for workshop=%d", op, day, workshopID)
			return ErrScheduleNotFound
		}
		s.logger.Error("%s: repository error for workshop=%d, day=%s: %v", op, workshopID, day, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.invalidate(ctx, op, workshopID)
	return nil
}

// CreateException добавляет исключение (праздник, сокращённый день) на дату
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: workshop=%d, date=%s, closed=%t, recurring=%t",
		req.WorkshopID, req.Date.Format(domain.DateFormat), req.IsClosed, req.IsRecurringYearly)

	exception, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateException: invalid values for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := exception.Validate(); err != nil {
		s.logger.Warn("CreateException: validation failed for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.CreateException(ctx, exception)
	if err != nil {
		s.logger.Error("CreateException: repository error for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "CreateException", req.WorkshopID)

	return models.FromDomainException(created), nil
}

// ListExceptions возвращает исключения мастерской за период
func (s *Service) ListExceptions(ctx context.Context, req *models.ListExceptionsRequest) (*models.ExceptionListResponse, error) {
	s.logger.Info("ListExceptions: workshop=%d", req.WorkshopID)

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	exceptions, err := s.scheduleRepo.ListExceptions(ctx, req.WorkshopID, req.From, req.To, req.IncludeInactive)
	if err != nil {
		s.logger.Error("ListExceptions: repository error for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: ListExceptions - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExceptionList(req.WorkshopID, exceptions), nil
}

// DeactivateException выключает исключение
func (s *Service) DeactivateException(ctx context.Context, workshopID, exceptionID int64) error {
	s.logger.Info("DeactivateException: workshop=%d, exception=%d", workshopID, exceptionID)

	if err := s.scheduleRepo.DeactivateException(ctx, workshopID, exceptionID); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeactivateException: exception=%d not found for workshop=%d", exceptionID, workshopID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeactivateException: repository error for exception=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: DeactivateException - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "DeactivateException", workshopID)
	return nil
}

func (s *Service) buildDay(req *models.DayScheduleRequest, workshopID, userID int64) (*domain.WeeklySchedule, error) {
	schedule, err := req.ToDomain(workshopID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return schedule, nil
}

func (s *Service) findDay(ctx context.Context, op string, workshopID int64, day domain.DayOfWeek) (*domain.WeeklySchedule, error) {
	schedule, err := s.scheduleRepo.FindByWorkshopAndDay(ctx, workshopID, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: day %s not configured for workshop=%d", op, day, workshopID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("%s: repository error for workshop=%d, day=%s: %v", op, workshopID, day, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return schedule, nil
}

// invalidate сбрасывает кэш слотов всей мастерской после изменения расписания
func (s *Service) invalidate(ctx context.Context, op string, workshopID int64) {
	if err := s.cache.InvalidateWorkshop(ctx, workshopID); err != nil {
		s.logger.Warn("%s: failed to invalidate slot cache for workshop=%d: %v", op, workshopID, err)
	}
}
