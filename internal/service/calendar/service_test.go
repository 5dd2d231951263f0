package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/ptr"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) EffectiveSchedule(ctx context.Context, workshopID int64, date time.Time) (domain.DaySchedule, error) {
	args := m.Called(ctx, workshopID, date)
	return args.Get(0).(domain.DaySchedule), args.Error(1)
}

func (m *mockAvailability) AvailableSlots(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, error) {
	args := m.Called(ctx, workshopID, date, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TimeString), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) FindByWorkshopWithFilter(ctx context.Context, filter domain.WorkshopAppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(day int) time.Time {
	return time.Date(2025, 10, day, 0, 0, 0, 0, time.UTC)
}

// openDay 09:00-18:00 с перерывом 13:00-14:00 и шагом 60 минут: вместимость 8
func openDay(d time.Time) domain.DaySchedule {
	return domain.DaySchedule{
		Date:                d,
		IsOpen:              true,
		OpenTime:            "09:00",
		CloseTime:           "18:00",
		BreakStartTime:      ptr.Ptr(types.TimeString("13:00")),
		BreakEndTime:        ptr.Ptr(types.TimeString("14:00")),
		SlotDurationMinutes: 60,
		Source:              domain.ScheduleSourceWeekly,
	}
}

func appointmentsOn(d time.Time, n int) []*domain.Appointment {
	result := make([]*domain.Appointment, n)
	for i := range result {
		result[i] = &domain.Appointment{ID: int64(i + 1), AppointmentDate: d, Status: domain.StatusConfirmed, IsActive: true}
	}
	return result
}

func newTestService() (*Service, *mockAvailability, *mockAppointmentRepo) {
	availability := new(mockAvailability)
	repo := new(mockAppointmentRepo)
	return NewService(availability, repo, 8, nopLogger{}), availability, repo
}

func TestService_CheckMultipleDates_RejectsBadCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"empty", 0},
		{"too many", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, availability, _ := newTestService()
			dates := make([]time.Time, tt.count)
			for i := range dates {
				dates[i] = date(1).AddDate(0, 0, i)
			}

			_, err := svc.CheckMultipleDates(context.Background(), 1, dates, domain.ServiceBasicMaintenance)

			assert.ErrorIs(t, err, ErrInvalidInput)
			availability.AssertNotCalled(t, "AvailableSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_CheckMultipleDates(t *testing.T) {
	svc, availability, _ := newTestService()
	availability.On("AvailableSlots", mock.Anything, int64(1), date(15), domain.ServiceDiagnostic).
		Return([]types.TimeString{"09:00", "10:00"}, nil)
	availability.On("AvailableSlots", mock.Anything, int64(1), date(16), domain.ServiceDiagnostic).
		Return([]types.TimeString{}, nil)

	resp, err := svc.CheckMultipleDates(context.Background(), 1,
		[]time.Time{date(15).Add(10 * time.Hour), date(16)}, domain.ServiceDiagnostic)

	require.NoError(t, err)
	require.Len(t, resp.Dates, 2)
	assert.Equal(t, "2025-10-15", resp.Dates[0].Date)
	assert.True(t, resp.Dates[0].HasAvailability)
	assert.Equal(t, "10:30", resp.Dates[0].AvailableSlots[0].EndTime)
	assert.Equal(t, "2025-10-16", resp.Dates[1].Date)
	assert.False(t, resp.Dates[1].HasAvailability)
	assert.Empty(t, resp.Dates[1].AvailableSlots)
}

func TestService_MonthlyAvailability(t *testing.T) {
	svc, availability, _ := newTestService()
	availability.On("AvailableSlots", mock.Anything, int64(1), date(10), domain.ServiceConsultation).
		Return(nil, errors.New("db timeout"))
	availability.On("AvailableSlots", mock.Anything, int64(1), mock.Anything, domain.ServiceConsultation).
		Return([]types.TimeString{"09:00"}, nil)

	resp, err := svc.MonthlyAvailability(context.Background(), 1, 2025, 10, domain.ServiceConsultation)

	require.NoError(t, err)
	require.Len(t, resp.Days, 31)
	assert.Equal(t, "2025-10-01", resp.Days[0].Date)
	assert.Equal(t, "2025-10-31", resp.Days[30].Date)
	assert.True(t, resp.Days[0].HasAvailability)
	assert.Equal(t, 1, resp.Days[0].AvailableSlotCount)
	assert.False(t, resp.Days[9].HasAvailability)
	assert.Equal(t, 0, resp.Days[9].AvailableSlotCount)
}

func TestService_MonthlyAvailability_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.MonthlyAvailability(context.Background(), 1, 2025, 13, domain.ServiceConsultation)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.MonthlyAvailability(context.Background(), 1, 2025, 10, "tuning")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_BusyDates(t *testing.T) {
	svc, availability, repo := newTestService()

	var appointments []*domain.Appointment
	appointments = append(appointments, appointmentsOn(date(1), 7)...)
	appointments = append(appointments, appointmentsOn(date(2), 8)...)
	appointments = append(appointments, appointmentsOn(date(3), 3)...)
	appointments = append(appointments, appointmentsOn(date(4), 5)...)

	repo.On("FindByWorkshopWithFilter", mock.Anything, mock.MatchedBy(func(f domain.WorkshopAppointmentsFilter) bool {
		return f.WorkshopID == 1 && f.StartDate.Equal(date(1)) && f.EndDate.Equal(date(5)) &&
			assert.ObjectsAreEqual(domain.OccupyingStatuses, f.Statuses)
	})).Return(appointments, nil)

	availability.On("EffectiveSchedule", mock.Anything, int64(1), date(1)).Return(openDay(date(1)), nil)
	availability.On("EffectiveSchedule", mock.Anything, int64(1), date(2)).Return(openDay(date(2)), nil)
	availability.On("EffectiveSchedule", mock.Anything, int64(1), date(3)).Return(openDay(date(3)), nil)
	availability.On("EffectiveSchedule", mock.Anything, int64(1), date(4)).
		Return(domain.ClosedDay(date(4), domain.ScheduleSourceException), nil)
	availability.On("EffectiveSchedule", mock.Anything, int64(1), date(5)).
		Return(domain.DaySchedule{}, errors.New("db timeout"))

	resp, err := svc.BusyDates(context.Background(), 1, date(1), date(5))

	require.NoError(t, err)
	require.Len(t, resp.BusyDates, 3)

	assert.Equal(t, "2025-10-01", resp.BusyDates[0].Date)
	assert.Equal(t, "mostly_booked", resp.BusyDates[0].Reason)
	assert.Equal(t, 7, resp.BusyDates[0].AppointmentCount)

	assert.Equal(t, "2025-10-02", resp.BusyDates[1].Date)
	assert.Equal(t, "fully_booked", resp.BusyDates[1].Reason)
	assert.Equal(t, 8, resp.BusyDates[1].AppointmentCount)

	assert.Equal(t, "2025-10-04", resp.BusyDates[2].Date)
	assert.Equal(t, "closed", resp.BusyDates[2].Reason)
	assert.Equal(t, 0, resp.BusyDates[2].AppointmentCount)
}

func TestService_BusyDates_Validation(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end before start", date(10), date(9)},
		{"range over 90 days", date(1), date(1).AddDate(0, 0, 91)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, repo := newTestService()

			_, err := svc.BusyDates(context.Background(), 1, tt.start, tt.end)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "FindByWorkshopWithFilter", mock.Anything, mock.Anything)
		})
	}
}

func TestService_BusyDates_NinetyDaysAllowed(t *testing.T) {
	svc, availability, repo := newTestService()
	repo.On("FindByWorkshopWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{}, nil)
	availability.On("EffectiveSchedule", mock.Anything, int64(1), mock.Anything).
		Return(domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00", SlotDurationMinutes: 60}, nil)

	resp, err := svc.BusyDates(context.Background(), 1, date(1), date(1).AddDate(0, 0, 90))

	require.NoError(t, err)
	assert.Empty(t, resp.BusyDates)
	availability.AssertNumberOfCalls(t, "EffectiveSchedule", 91)
}

func TestClassifyDay(t *testing.T) {
	tests := []struct {
		name   string
		day    domain.DaySchedule
		count  int
		reason domain.BusyReason
		busy   bool
	}{
		{"closed wins over bookings", domain.ClosedDay(date(1), domain.ScheduleSourceWeekly), 5, domain.BusyReasonClosed, true},
		{"below threshold", openDay(date(1)), 6, "", false},
		{"seven of eight is mostly booked", openDay(date(1)), 7, domain.BusyReasonMostlyBooked, true},
		{"over capacity", openDay(date(1)), 9, domain.BusyReasonFullyBooked, true},
		{"no bookings", openDay(date(1)), 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyDay(tt.day, tt.count)
			if !tt.busy {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.reason, got.Reason)
			if tt.reason == domain.BusyReasonClosed {
				assert.Equal(t, 0, got.AppointmentCount)
			}
		})
	}
}
