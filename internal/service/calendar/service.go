package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar/models"
)

const (
	minYear = 1970
	maxYear = 9999
)

// Service агрегирует доступность по диапазонам дат
type Service struct {
	availability    AvailabilityEngine
	appointmentRepo AppointmentRepository
	parallelism     int
	logger          Logger
}

// NewService создает новый экземпляр сервиса календаря.
// parallelism ограничивает число дней, обрабатываемых одновременно.
func NewService(
	availability AvailabilityEngine,
	appointmentRepo AppointmentRepository,
	parallelism int,
	logger Logger,
) *Service {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Service{
		availability:    availability,
		appointmentRepo: appointmentRepo,
		parallelism:     parallelism,
		logger:          logger,
	}
}

// MonthlyAvailability возвращает доступность для каждого дня месяца.
// Ошибка расчёта отдельного дня не прерывает запрос: день считается недоступным.
func (s *Service) MonthlyAvailability(ctx context.Context, workshopID int64, year, month int, serviceType domain.ServiceType) (*models.MonthlyAvailabilityResponse, error) {
	s.logger.Info("MonthlyAvailability: workshop=%d, year=%d, month=%d, serviceType=%s", workshopID, year, month, serviceType)

	if year < minYear || year > maxYear {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if !serviceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown serviceType %q", ErrInvalidInput, serviceType)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	days := s.collectAvailability(ctx, "MonthlyAvailability", workshopID, dates, serviceType)

	resp := &models.MonthlyAvailabilityResponse{
		WorkshopID:  workshopID,
		Year:        year,
		Month:       month,
		ServiceType: string(serviceType),
		Days:        make([]models.DayAvailabilityResponse, len(days)),
	}
	for i, d := range days {
		resp.Days[i] = models.FromDomainDayAvailability(d)
	}

	s.logger.Info("MonthlyAvailability: computed %d days for workshop=%d", len(days), workshopID)
	return resp, nil
}

// CheckMultipleDates возвращает свободные интервалы для набора дат (от 1 до 31)
func (s *Service) CheckMultipleDates(ctx context.Context, workshopID int64, dates []time.Time, serviceType domain.ServiceType) (*models.MultipleDatesResponse, error) {
	s.logger.Info("CheckMultipleDates: workshop=%d, dates=%d, serviceType=%s", workshopID, len(dates), serviceType)

	if len(dates) == 0 || len(dates) > domain.MaxMultipleDates {
		s.logger.Warn("CheckMultipleDates: invalid number of dates=%d", len(dates))
		return nil, fmt.Errorf("%w: between 1 and %d dates are required", ErrInvalidInput, domain.MaxMultipleDates)
	}
	if !serviceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown serviceType %q", ErrInvalidInput, serviceType)
	}

	normalized := make([]time.Time, len(dates))
	for i, d := range dates {
		if d.IsZero() {
			return nil, fmt.Errorf("%w: date at position %d is empty", ErrInvalidInput, i)
		}
		normalized[i] = domain.TruncateDate(d)
	}

	days := s.collectAvailability(ctx, "CheckMultipleDates", workshopID, normalized, serviceType)

	resp := &models.MultipleDatesResponse{
		WorkshopID:  workshopID,
		ServiceType: string(serviceType),
		Dates:       make([]models.DateSlotsResponse, len(days)),
	}
	for i, d := range days {
		resp.Dates[i] = models.FromDomainDateSlots(d)
	}
	return resp, nil
}

// BusyDates возвращает закрытые и загруженные даты периода в порядке возрастания.
//
// Загрузка = число занимающих записей / вместимость дня (рабочие минуты без перерыва / шаг слота):
//   - от 100% fully_booked
//   - от 80% mostly_booked
//
// Закрытый день всегда помечается closed с нулевым счётчиком.
func (s *Service) BusyDates(ctx context.Context, workshopID int64, startDate, endDate time.Time) (*models.BusyDatesResponse, error) {
	startDate = domain.TruncateDate(startDate)
	endDate = domain.TruncateDate(endDate)

	s.logger.Info("BusyDates: workshop=%d, period=%s to %s",
		workshopID, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if endDate.Sub(startDate) > domain.MaxBusyDatesRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: date range must not exceed %d days", ErrInvalidInput, domain.MaxBusyDatesRangeDays)
	}

	appointments, err := s.appointmentRepo.FindByWorkshopWithFilter(ctx, domain.WorkshopAppointmentsFilter{
		WorkshopID: workshopID,
		StartDate:  &startDate,
		EndDate:    &endDate,
		Statuses:   domain.OccupyingStatuses,
	})
	if err != nil {
		s.logger.Error("BusyDates: failed to load appointments for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: BusyDates - load appointments: %v", ErrInternal, err)
	}

	counts := make(map[string]int)
	for _, a := range appointments {
		counts[a.AppointmentDate.Format(domain.DateFormat)]++
	}

	dates := make([]time.Time, 0, domain.MaxBusyDatesRangeDays+1)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	results := make([]*domain.BusyDate, len(dates))
	s.forEachDate(ctx, dates, func(ctx context.Context, i int, date time.Time) {
		day, err := s.availability.EffectiveSchedule(ctx, workshopID, date)
		if err != nil {
			s.logger.Warn("BusyDates: skipping date=%s for workshop=%d: %v", date.Format(domain.DateFormat), workshopID, err)
			return
		}
		results[i] = classifyDay(day, counts[date.Format(domain.DateFormat)])
	})

	busy := make([]domain.BusyDate, 0)
	for _, r := range results {
		if r != nil {
			busy = append(busy, *r)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Date.Before(busy[j].Date) })

	s.logger.Info("BusyDates: found %d busy dates for workshop=%d", len(busy), workshopID)
	return models.FromDomainBusyDates(workshopID, startDate, endDate, busy), nil
}

// classifyDay возвращает nil, если день открыт и загружен меньше порога
func classifyDay(day domain.DaySchedule, count int) *domain.BusyDate {
	if !day.IsOpen {
		return &domain.BusyDate{Date: day.Date, Reason: domain.BusyReasonClosed}
	}

	capacity := day.Capacity()
	if capacity <= 0 || count == 0 {
		return nil
	}

	percent := count * 100 / capacity
	switch {
	case percent >= domain.FullyBookedThresholdPercent:
		return &domain.BusyDate{Date: day.Date, Reason: domain.BusyReasonFullyBooked, AppointmentCount: count}
	case percent >= domain.MostlyBookedThresholdPercent:
		return &domain.BusyDate{Date: day.Date, Reason: domain.BusyReasonMostlyBooked, AppointmentCount: count}
	}
	return nil
}

// collectAvailability считает свободные слоты для каждой даты, сохраняя порядок входа
func (s *Service) collectAvailability(ctx context.Context, op string, workshopID int64, dates []time.Time, serviceType domain.ServiceType) []domain.DayAvailability {
	duration := serviceType.StandardDuration()
	results := make([]domain.DayAvailability, len(dates))

	s.forEachDate(ctx, dates, func(ctx context.Context, i int, date time.Time) {
		results[i] = domain.DayAvailability{Date: date, AvailableSlots: []domain.TimeSlot{}}

		starts, err := s.availability.AvailableSlots(ctx, workshopID, date, serviceType)
		if err != nil {
			s.logger.Warn("%s: treating date=%s as unavailable for workshop=%d: %v",
				op, date.Format(domain.DateFormat), workshopID, err)
			return
		}

		slots := make([]domain.TimeSlot, 0, len(starts))
		for _, start := range starts {
			end, err := start.AddMinutes(duration)
			if err != nil {
				continue
			}
			slots = append(slots, domain.TimeSlot{StartTime: start, EndTime: end})
		}

		results[i].AvailableSlots = slots
		results[i].AvailableSlotCount = len(slots)
		results[i].HasAvailability = len(slots) > 0
	})

	return results
}

// forEachDate выполняет fn для каждой даты с ограничением параллельности.
// fn пишет только в свой индекс результата.
func (s *Service) forEachDate(ctx context.Context, dates []time.Time, fn func(ctx context.Context, i int, date time.Time)) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, date := range dates {
		g.Go(func() error {
			fn(gctx, i, date)
			return nil
		})
	}

	_ = g.Wait()
}
