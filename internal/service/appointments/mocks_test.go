package appointments

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/integrations/reparationorders"
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

func (m *mockAppointmentRepo) FindByWorkshopWithFilter(ctx context.Context, filter domain.WorkshopAppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appointment)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Appointment) *domain.Appointment); ok {
		return fn(ctx, appointment), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) LinkReparationOrder(ctx context.Context, id, orderID int64, updatedBy *int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id, orderID, updatedBy)
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

type mockReparationClient struct {
	mock.Mock
}

func (m *mockReparationClient) CreateOrder(ctx context.Context, req reparationorders.CreateOrderRequest) (*domain.ReparationOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReparationOrder), args.Error(1)
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
