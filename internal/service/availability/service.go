package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// Service движок доступности: часы работы на дату, свободные слоты и проверка интервала
type Service struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	cache           SlotCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		logger:          logger,
	}
}

// EffectiveSchedule вычисляет расписание мастерской на конкретную дату.
//
// Порядок разрешения:
//  1. Активное исключение на эту дату (точная дата важнее ежегодного)
//  2. Активная открытая строка недельного расписания для дня недели
//  3. Иначе день закрыт
//
// Открытое исключение заменяет часы работы, убирает перерыв и сохраняет шаг слотов дня недели.
func (s *Service) EffectiveSchedule(ctx context.Context, workshopID int64, date time.Time) (domain.DaySchedule, error) {
	date = domain.TruncateDate(date)

	exceptions, err := s.scheduleRepo.FindExceptionsForDate(ctx, workshopID, date)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: EffectiveSchedule - find exceptions: %w", ErrInternal, err)
	}

	weekly, err := s.scheduleRepo.FindByWorkshopAndDay(ctx, workshopID, domain.DayOfWeekFromDate(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return domain.DaySchedule{}, fmt.Errorf("%w: EffectiveSchedule - find weekly schedule: %w", ErrInternal, err)
	}

	return resolveDay(date, weekly, exceptions), nil
}

// resolveDay применяет исключения к недельному расписанию
func resolveDay(date time.Time, weekly *domain.WeeklySchedule, exceptions []*domain.ScheduleException) domain.DaySchedule {
	if exception := pickException(date, exceptions); exception != nil {
		if exception.IsClosed {
			return domain.ClosedDay(date, domain.ScheduleSourceException)
		}

		slotDuration := domain.DefaultSlotDurationMinutes
		if weekly != nil && weekly.SlotDurationMinutes > 0 {
			slotDuration = weekly.SlotDurationMinutes
		}

		return domain.DaySchedule{
			Date:                date,
			IsOpen:              true,
			OpenTime:            *exception.SpecialOpenTime,
			CloseTime:           *exception.SpecialCloseTime,
			SlotDurationMinutes: slotDuration,
			Source:              domain.ScheduleSourceException,
		}
	}

	if weekly == nil {
		return domain.ClosedDay(date, domain.ScheduleSourceNone)
	}
	if !weekly.IsActive || !weekly.IsOpen {
		return domain.ClosedDay(date, domain.ScheduleSourceWeekly)
	}

	return domain.DaySchedule{
		Date:                date,
		IsOpen:              true,
		OpenTime:            weekly.OpenTime,
		CloseTime:           weekly.CloseTime,
		BreakStartTime:      weekly.BreakStartTime,
		BreakEndTime:        weekly.BreakEndTime,
		SlotDurationMinutes: weekly.SlotDurationMinutes,
		Source:              domain.ScheduleSourceWeekly,
	}
}

func pickException(date time.Time, exceptions []*domain.ScheduleException) *domain.ScheduleException {
	var recurring *domain.ScheduleException
	for _, e := range exceptions {
		if !e.IsActive {
			continue
		}
		if e.MatchesExactly(date) {
			return e
		}
		if recurring == nil && e.Matches(date) {
			recurring = e
		}
	}
	return recurring
}

// IsOpen проверяет, работает ли мастерская в указанную дату
func (s *Service) IsOpen(ctx context.Context, workshopID int64, date time.Time) (bool, error) {
	day, err := s.EffectiveSchedule(ctx, workshopID, date)
	if err != nil {
		s.logger.Error("IsOpen: workshop=%d, date=%s: %v", workshopID, date.Format(domain.DateFormat), err)
		return false, err
	}
	return day.IsOpen, nil
}

// HoursFor возвращает часы работы на дату или nil, если мастерская закрыта
func (s *Service) HoursFor(ctx context.Context, workshopID int64, date time.Time) (*domain.OperatingHours, error) {
	day, err := s.EffectiveSchedule(ctx, workshopID, date)
	if err != nil {
		s.logger.Error("HoursFor: workshop=%d, date=%s: %v", workshopID, date.Format(domain.DateFormat), err)
		return nil, err
	}
	if !day.IsOpen {
		return nil, nil
	}
	return &domain.OperatingHours{OpenTime: day.OpenTime, CloseTime: day.CloseTime}, nil
}

// AvailableSlots возвращает свободные времена начала для типа услуги в хронологическом порядке.
// Закрытый день даёт пустой список, а не ошибку.
func (s *Service) AvailableSlots(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, error) {
	if !serviceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, serviceType)
	}
	date = domain.TruncateDate(date)

	cached, ok, err := s.cache.Get(ctx, workshopID, date, serviceType)
	if err != nil {
		s.logger.Warn("AvailableSlots: cache read failed for workshop=%d, date=%s: %v",
			workshopID, date.Format(domain.DateFormat), err)
	}
	if ok {
		return cached, nil
	}

	// Версия читается до расчёта: инвалидация во время расчёта отменит запись в кэш
	version, err := s.cache.Version(ctx, workshopID, date)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn("AvailableSlots: cache version read failed for workshop=%d, date=%s: %v",
			workshopID, date.Format(domain.DateFormat), err)
	}

	day, err := s.EffectiveSchedule(ctx, workshopID, date)
	if err != nil {
		s.logger.Error("AvailableSlots: workshop=%d, date=%s: %v", workshopID, date.Format(domain.DateFormat), err)
		return nil, err
	}

	result := make([]types.TimeString, 0)
	if day.IsOpen {
		appointments, err := s.appointmentRepo.FindOccupyingByWorkshopAndDate(ctx, workshopID, date)
		if err != nil {
			s.logger.Error("AvailableSlots: failed to load appointments for workshop=%d, date=%s: %v",
				workshopID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: AvailableSlots - load appointments: %w", ErrInternal, err)
		}

		duration := serviceType.StandardDuration()
		for _, candidate := range GenerateSlots(day) {
			if isAvailable(day, appointments, candidate, duration, nil) {
				result = append(result, candidate)
			}
		}
	}

	if cacheable {
		if err := s.cache.Set(ctx, workshopID, date, serviceType, version, result); err != nil {
			s.logger.Warn("AvailableSlots: cache write failed for workshop=%d, date=%s: %v",
				workshopID, date.Format(domain.DateFormat), err)
		}
	}

	return result, nil
}

// CheckAvailability проверяет, можно ли занять [startTime, startTime+duration) в указанную дату.
// excludeAppointmentID исключает переносимую запись из поиска пересечений.
func (s *Service) CheckAvailability(
	ctx context.Context,
	workshopID int64,
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
	excludeAppointmentID *int64,
) (bool, error) {
	if err := startTime.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	date = domain.TruncateDate(date)

	day, err := s.EffectiveSchedule(ctx, workshopID, date)
	if err != nil {
		s.logger.Error("CheckAvailability: workshop=%d, date=%s: %v", workshopID, date.Format(domain.DateFormat), err)
		return false, err
	}

	if !day.IsOpen || !day.Contains(startTime, durationMinutes) {
		return false, nil
	}

	appointments, err := s.appointmentRepo.FindOccupyingByWorkshopAndDate(ctx, workshopID, date)
	if err != nil {
		s.logger.Error("CheckAvailability: failed to load appointments for workshop=%d, date=%s: %v",
			workshopID, date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: CheckAvailability - load appointments: %w", ErrInternal, err)
	}

	return isAvailable(day, appointments, startTime, durationMinutes, excludeAppointmentID), nil
}
