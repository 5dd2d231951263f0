package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/ptr"
)

const workshopID int64 = 7

// 2025-03-10 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func mondaySchedule() *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		ID:                  1,
		WorkshopID:          workshopID,
		DayOfWeek:           domain.Monday,
		OpenTime:            ts("08:00"),
		CloseTime:           ts("18:00"),
		IsOpen:              true,
		BreakStartTime:      ptr.Ptr(ts("12:00")),
		BreakEndTime:        ptr.Ptr(ts("13:00")),
		SlotDurationMinutes: 60,
		IsActive:            true,
	}
}

type fixture struct {
	schedules    *mockScheduleRepo
	appointments *mockAppointmentRepo
	cache        *mockCache
	service      *Service
}

func newFixture() *fixture {
	f := &fixture{
		schedules:    &mockScheduleRepo{},
		appointments: &mockAppointmentRepo{},
		cache:        &mockCache{},
	}
	f.service = NewService(f.schedules, f.appointments, f.cache, nopLogger{})
	return f
}

func (f *fixture) withMonday(exceptions []*domain.ScheduleException) {
	f.schedules.On("FindExceptionsForDate", mock.Anything, workshopID, monday).Return(exceptions, nil)
	f.schedules.On("FindByWorkshopAndDay", mock.Anything, workshopID, domain.Monday).Return(mondaySchedule(), nil)
}

func TestEffectiveSchedule_Resolution(t *testing.T) {
	closedExact := &domain.ScheduleException{ID: 1, Date: monday, IsClosed: true, IsActive: true}
	shortRecurring := &domain.ScheduleException{
		ID:                2,
		Date:              time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC),
		SpecialOpenTime:   ptr.Ptr(ts("10:00")),
		SpecialCloseTime:  ptr.Ptr(ts("14:00")),
		IsRecurringYearly: true,
		IsActive:          true,
	}

	tests := []struct {
		name       string
		exceptions []*domain.ScheduleException
		check      func(t *testing.T, day domain.DaySchedule)
	}{
		{
			name: "weekly row",
			check: func(t *testing.T, day domain.DaySchedule) {
				assert.True(t, day.IsOpen)
				assert.Equal(t, ts("08:00"), day.OpenTime)
				assert.True(t, day.HasBreak())
				assert.Equal(t, domain.ScheduleSourceWeekly, day.Source)
			},
		},
		{
			name:       "exact exception wins over recurring",
			exceptions: []*domain.ScheduleException{shortRecurring, closedExact},
			check: func(t *testing.T, day domain.DaySchedule) {
				assert.False(t, day.IsOpen)
				assert.Equal(t, domain.ScheduleSourceException, day.Source)
			},
		},
		{
			name:       "recurring open exception replaces hours and drops break",
			exceptions: []*domain.ScheduleException{shortRecurring},
			check: func(t *testing.T, day domain.DaySchedule) {
				assert.True(t, day.IsOpen)
				assert.Equal(t, ts("10:00"), day.OpenTime)
				assert.Equal(t, ts("14:00"), day.CloseTime)
				assert.False(t, day.HasBreak())
				assert.Equal(t, 60, day.SlotDurationMinutes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withMonday(tt.exceptions)

			day, err := f.service.EffectiveSchedule(context.Background(), workshopID, monday)
			require.NoError(t, err)
			tt.check(t, day)
		})
	}
}

func TestEffectiveSchedule_NoWeeklyRow(t *testing.T) {
	f := newFixture()
	f.schedules.On("FindExceptionsForDate", mock.Anything, workshopID, monday).Return([]*domain.ScheduleException{}, nil)
	f.schedules.On("FindByWorkshopAndDay", mock.Anything, workshopID, domain.Monday).Return(nil, scheduleRepo.ErrScheduleNotFound)

	open, err := f.service.IsOpen(context.Background(), workshopID, monday)
	require.NoError(t, err)
	assert.False(t, open)

	hours, err := f.service.HoursFor(context.Background(), workshopID, monday)
	require.NoError(t, err)
	assert.Nil(t, hours)
}

func TestEffectiveSchedule_InactiveOrClosedRow(t *testing.T) {
	for _, mutate := range []func(s *domain.WeeklySchedule){
		func(s *domain.WeeklySchedule) { s.IsActive = false },
		func(s *domain.WeeklySchedule) { s.IsOpen = false },
	} {
		f := newFixture()
		row := mondaySchedule()
		mutate(row)
		f.schedules.On("FindExceptionsForDate", mock.Anything, workshopID, monday).Return([]*domain.ScheduleException{}, nil)
		f.schedules.On("FindByWorkshopAndDay", mock.Anything, workshopID, domain.Monday).Return(row, nil)

		open, err := f.service.IsOpen(context.Background(), workshopID, monday)
		require.NoError(t, err)
		assert.False(t, open)
	}
}

func TestEffectiveSchedule_OpenExceptionWithoutWeeklyRow(t *testing.T) {
	f := newFixture()
	f.schedules.On("FindExceptionsForDate", mock.Anything, workshopID, monday).Return([]*domain.ScheduleException{{
		Date:             monday,
		SpecialOpenTime:  ptr.Ptr(ts("09:00")),
		SpecialCloseTime: ptr.Ptr(ts("12:00")),
		IsActive:         true,
	}}, nil)
	f.schedules.On("FindByWorkshopAndDay", mock.Anything, workshopID, domain.Monday).Return(nil, scheduleRepo.ErrScheduleNotFound)

	hours, err := f.service.HoursFor(context.Background(), workshopID, monday)
	require.NoError(t, err)
	require.NotNil(t, hours)
	assert.Equal(t, ts("09:00"), hours.OpenTime)
	assert.Equal(t, ts("12:00"), hours.CloseTime)

	day, err := f.service.EffectiveSchedule(context.Background(), workshopID, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, day.SlotDurationMinutes)
}

func TestEffectiveSchedule_RepositoryError(t *testing.T) {
	f := newFixture()
	f.schedules.On("FindExceptionsForDate", mock.Anything, workshopID, monday).Return(nil, errors.New("db down"))

	_, err := f.service.EffectiveSchedule(context.Background(), workshopID, monday)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCheckAvailability(t *testing.T) {
	confirmed := &domain.Appointment{
		ID:              10,
		StartTime:       ts("09:00"),
		EndTime:         ts("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		IsActive:        true,
	}

	tests := []struct {
		name     string
		start    string
		duration int
		exclude  *int64
		expected bool
	}{
		{name: "overlaps confirmed appointment", start: "09:30", duration: 60, expected: false},
		{name: "ends past close", start: "17:30", duration: 60, expected: false},
		{name: "starts before open", start: "07:30", duration: 60, expected: false},
		{name: "adjacent to existing", start: "10:00", duration: 60, expected: true},
		{name: "last slot of the day", start: "17:00", duration: 60, expected: true},
		{name: "own appointment excluded", start: "09:30", duration: 60, exclude: ptr.Ptr(int64(10)), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withMonday(nil)
			f.appointments.On("FindOccupyingByWorkshopAndDate", mock.Anything, workshopID, monday).
				Return([]*domain.Appointment{confirmed}, nil).Maybe()

			ok, err := f.service.CheckAvailability(context.Background(), workshopID, monday, ts(tt.start), tt.duration, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestCheckAvailability_ClosedDayAlwaysFalse(t *testing.T) {
	sunday := monday.AddDate(0, 0, 6)
	f := newFixture()
	f.schedules.On("FindExceptionsForDate", mock.Anything, workshopID, sunday).Return([]*domain.ScheduleException{}, nil)
	f.schedules.On("FindByWorkshopAndDay", mock.Anything, workshopID, domain.Sunday).Return(nil, scheduleRepo.ErrScheduleNotFound)

	for _, start := range []string{"00:00", "09:00", "12:00", "23:00"} {
		ok, err := f.service.CheckAvailability(context.Background(), workshopID, sunday, ts(start), 30, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	f.appointments.AssertNotCalled(t, "FindOccupyingByWorkshopAndDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckAvailability_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.service.CheckAvailability(context.Background(), workshopID, monday, "25:00", 60, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.CheckAvailability(context.Background(), workshopID, monday, ts("10:00"), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailableSlots(t *testing.T) {
	f := newFixture()
	f.withMonday(nil)
	f.cache.On("Get", mock.Anything, workshopID, monday, domain.ServiceBasicMaintenance).Return(nil, false, nil)
	f.cache.On("Version", mock.Anything, workshopID, monday).Return("0.0", nil)
	f.cache.On("Set", mock.Anything, workshopID, monday, domain.ServiceBasicMaintenance, "0.0", mock.Anything).Return(nil)
	f.appointments.On("FindOccupyingByWorkshopAndDate", mock.Anything, workshopID, monday).Return([]*domain.Appointment{
		{ID: 1, StartTime: ts("09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed, IsActive: true},
		{ID: 2, StartTime: ts("14:00"), DurationMinutes: 120, Status: domain.StatusPending, IsActive: true},
	}, nil)

	first, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceBasicMaintenance)
	require.NoError(t, err)
	assert.Equal(t, tsList("08:00", "10:00", "11:00", "13:00", "16:00", "17:00"), first)

	second, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceBasicMaintenance)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailableSlots_LongServiceOnlyFitsWhereItEnds(t *testing.T) {
	f := newFixture()
	f.withMonday(nil)
	f.cache.On("Get", mock.Anything, workshopID, monday, domain.ServiceMajorRepair).Return(nil, false, nil)
	f.cache.On("Version", mock.Anything, workshopID, monday).Return("0.0", nil)
	f.cache.On("Set", mock.Anything, workshopID, monday, domain.ServiceMajorRepair, "0.0", mock.Anything).Return(nil)
	f.appointments.On("FindOccupyingByWorkshopAndDate", mock.Anything, workshopID, monday).Return([]*domain.Appointment{}, nil)

	slots, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceMajorRepair)
	require.NoError(t, err)
	// 240 минут: последний старт 14:00
	assert.Equal(t, tsList("08:00", "09:00", "10:00", "11:00", "13:00", "14:00"), slots)
}

func TestAvailableSlots_CacheHit(t *testing.T) {
	f := newFixture()
	f.cache.On("Get", mock.Anything, workshopID, monday, domain.ServiceConsultation).Return(tsList("08:00"), true, nil)

	slots, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceConsultation)
	require.NoError(t, err)
	assert.Equal(t, tsList("08:00"), slots)
	f.schedules.AssertNotCalled(t, "FindByWorkshopAndDay", mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailableSlots_CacheFailureFallsBack(t *testing.T) {
	f := newFixture()
	f.withMonday([]*domain.ScheduleException{{Date: monday, IsClosed: true, IsActive: true}})
	f.cache.On("Get", mock.Anything, workshopID, monday, domain.ServiceConsultation).Return(nil, false, errors.New("redis down"))
	f.cache.On("Version", mock.Anything, workshopID, monday).Return("", errors.New("redis down"))

	slots, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceConsultation)
	require.NoError(t, err)
	assert.Empty(t, slots)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailableSlots_UnknownServiceType(t *testing.T) {
	f := newFixture()
	_, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceType("paint"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailableSlots_InvalidationDuringComputeIsNotCached(t *testing.T) {
	schedules := &mockScheduleRepo{}
	appointments := &mockAppointmentRepo{}
	cache := newMemoryCache()
	service := NewService(schedules, appointments, cache, nopLogger{})

	schedules.On("FindExceptionsForDate", mock.Anything, workshopID, monday).Return(nil, nil)
	schedules.On("FindByWorkshopAndDay", mock.Anything, workshopID, domain.Monday).Return(mondaySchedule(), nil)

	booked := []*domain.Appointment{
		{ID: 1, StartTime: ts("08:00"), DurationMinutes: 60, Status: domain.StatusPending, IsActive: true},
	}
	// Первое чтение видит день до коммита, а запись фиксируется до записи результата в кэш
	appointments.On("FindOccupyingByWorkshopAndDate", mock.Anything, workshopID, monday).
		Return([]*domain.Appointment{}, nil).
		Run(func(mock.Arguments) { cache.InvalidateDate(context.Background(), workshopID, monday) }).
		Once()
	appointments.On("FindOccupyingByWorkshopAndDate", mock.Anything, workshopID, monday).Return(booked, nil)

	first, err := service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceDiagnostic)
	require.NoError(t, err)
	assert.Contains(t, first, ts("08:00"))

	second, err := service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceDiagnostic)
	require.NoError(t, err)
	assert.NotContains(t, second, ts("08:00"))

	available, err := service.CheckAvailability(context.Background(), workshopID, monday, ts("08:00"), 60, nil)
	require.NoError(t, err)
	assert.False(t, available)

	third, err := service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceDiagnostic)
	require.NoError(t, err)
	assert.Equal(t, second, third)
	appointments.AssertNumberOfCalls(t, "FindOccupyingByWorkshopAndDate", 3)
}

func TestAvailableSlots_LoadErrorKeepsCause(t *testing.T) {
	f := newFixture()
	f.withMonday(nil)
	cause := errors.New("serialization failure")
	f.cache.On("Get", mock.Anything, workshopID, monday, domain.ServiceDiagnostic).Return(nil, false, nil)
	f.cache.On("Version", mock.Anything, workshopID, monday).Return("0.0", nil)
	f.appointments.On("FindOccupyingByWorkshopAndDate", mock.Anything, workshopID, monday).Return(nil, cause)

	_, err := f.service.AvailableSlots(context.Background(), workshopID, monday, domain.ServiceDiagnostic)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)

	_, err = f.service.CheckAvailability(context.Background(), workshopID, monday, ts("10:00"), 60, nil)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
}
