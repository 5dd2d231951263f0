package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/ptr"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appointment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeAppointmentID *int64) (bool, error) {
	args := m.Called(ctx, workshopID, date, startTime, durationMinutes, excludeAppointmentID)
	return args.Bool(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) InvalidateDate(ctx context.Context, workshopID int64, date time.Time) error {
	args := m.Called(ctx, workshopID, date)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error {
	args := m.Called(ctx, eventType, appointment)
	return args.Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncSlotConflict(operation string) {
	m.Called(operation)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	oldDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
)

type testDeps struct {
	repo         *mockAppointmentRepo
	availability *mockAvailability
	cache        *mockCache
	publisher    *mockPublisher
	metrics      *mockMetrics
	uc           *UseCase
}

func newTestUseCase() *testDeps {
	d := &testDeps{
		repo:         new(mockAppointmentRepo),
		availability: new(mockAvailability),
		cache:        new(mockCache),
		publisher:    new(mockPublisher),
		metrics:      new(mockMetrics),
	}
	d.uc = NewUseCase(d.repo, d.availability, d.cache, d.publisher, d.metrics, nopLogger{})
	return d
}

func existing(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		WorkshopID:      1,
		AppointmentDate: oldDate,
		StartTime:       "10:00",
		EndTime:         "11:30",
		DurationMinutes: 90,
		ServiceType:     domain.ServiceDiagnostic,
		Status:          status,
		IsActive:        true,
	}
}

func request() *Request {
	return &Request{
		AppointmentID: 42,
		UserID:        5,
		NewDate:       newDate,
		NewStartTime:  "14:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	d := newTestUseCase()
	d.repo.On("GetByID", mock.Anything, int64(42)).Return(existing(domain.StatusConfirmed), nil)
	d.availability.On("CheckAvailability", mock.Anything, int64(1), newDate, types.TimeString("14:00"), 90, ptr.Ptr(int64(42))).
		Return(true, nil)
	d.repo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.Status == domain.StatusRescheduled && a.EndTime == "15:30" && a.DurationMinutes == 90 &&
			a.AppointmentDate.Equal(newDate) && *a.UpdatedBy == 5
	})).Return(func() *domain.Appointment {
		a := existing(domain.StatusRescheduled)
		a.AppointmentDate = newDate
		a.StartTime = "14:00"
		a.EndTime = "15:30"
		return a
	}(), nil)
	d.cache.On("InvalidateDate", mock.Anything, int64(1), oldDate).Return(nil).Once()
	d.cache.On("InvalidateDate", mock.Anything, int64(1), newDate).Return(nil).Once()
	d.publisher.On("Publish", mock.Anything, events.AppointmentRescheduled, mock.Anything).Return(nil)

	resp, err := d.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, "rescheduled", resp.Status)
	assert.Equal(t, "2025-10-16", resp.AppointmentDate)
	assert.Equal(t, "15:30", resp.EndTime)
	d.repo.AssertExpectations(t)
	d.cache.AssertExpectations(t)
	d.publisher.AssertExpectations(t)
}

func TestUseCase_Execute_SameDateInvalidatesOnce(t *testing.T) {
	d := newTestUseCase()
	req := request()
	req.NewDate = oldDate
	updated := existing(domain.StatusRescheduled)
	d.repo.On("GetByID", mock.Anything, int64(42)).Return(existing(domain.StatusPending), nil)
	d.availability.On("CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)
	d.repo.On("Update", mock.Anything, mock.Anything).Return(updated, nil)
	d.cache.On("InvalidateDate", mock.Anything, int64(1), oldDate).Return(nil)
	d.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := d.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	d.cache.AssertNumberOfCalls(t, "InvalidateDate", 1)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *Request
		setup   func(d *testDeps)
		wantErr error
	}{
		{
			name:    "malformed time",
			req:     func() *Request { r := request(); r.NewStartTime = "9:75"; return r },
			setup:   func(d *testDeps) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "not found",
			req:  request,
			setup: func(d *testDeps) {
				d.repo.On("GetByID", mock.Anything, int64(42)).Return(nil, appointmentRepo.ErrAppointmentNotFound)
			},
			wantErr: ErrAppointmentNotFound,
		},
		{
			name: "completed cannot be rescheduled",
			req:  request,
			setup: func(d *testDeps) {
				d.repo.On("GetByID", mock.Anything, int64(42)).Return(existing(domain.StatusCompleted), nil)
			},
			wantErr: ErrInvalidTransition,
		},
		{
			name: "new slot taken",
			req:  request,
			setup: func(d *testDeps) {
				d.repo.On("GetByID", mock.Anything, int64(42)).Return(existing(domain.StatusConfirmed), nil)
				d.availability.On("CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(false, nil)
				d.metrics.On("IncSlotConflict", "reschedule").Return()
			},
			wantErr: ErrNewSlotNotAvailable,
		},
		{
			name: "slot index violation on update",
			req:  request,
			setup: func(d *testDeps) {
				d.repo.On("GetByID", mock.Anything, int64(42)).Return(existing(domain.StatusConfirmed), nil)
				d.availability.On("CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(true, nil)
				d.repo.On("Update", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: Update - exec: duplicate key", appointmentRepo.ErrSlotTaken))
				d.metrics.On("IncSlotConflict", "reschedule").Return()
			},
			wantErr: ErrNewSlotNotAvailable,
		},
		{
			name: "crosses midnight",
			req:  func() *Request { r := request(); r.NewStartTime = "23:00"; return r },
			setup: func(d *testDeps) {
				d.repo.On("GetByID", mock.Anything, int64(42)).Return(existing(domain.StatusConfirmed), nil)
			},
			wantErr: ErrNewSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUseCase()
			tt.setup(d)

			_, err := d.uc.Execute(context.Background(), tt.req())

			assert.ErrorIs(t, err, tt.wantErr)
			d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestErrNewSlotNotAvailable_Message(t *testing.T) {
	assert.Equal(t, "The new time slot is not available", ErrNewSlotNotAvailable.Error())
}
