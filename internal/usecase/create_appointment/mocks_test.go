package create_appointment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appointment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) CheckAvailability(ctx context.Context, workshopID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeAppointmentID *int64) (bool, error) {
	args := m.Called(ctx, workshopID, date, startTime, durationMinutes, excludeAppointmentID)
	return args.Bool(0), args.Error(1)
}

// fakeTxManager выполняет функцию без транзакции, опционально подменяя ошибку фиксации
type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
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

func (m *mockMetrics) IncAppointmentCreated(serviceType string) {
	m.Called(serviceType)
}

func (m *mockMetrics) IncSlotConflict(operation string) {
	m.Called(operation)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
