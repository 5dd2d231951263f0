package availability

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) FindByWorkshopAndDay(ctx context.Context, workshopID int64, day domain.DayOfWeek) (*domain.WeeklySchedule, error) {
	args := m.Called(ctx, workshopID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklySchedule), args.Error(1)
}

func (m *mockScheduleRepo) FindExceptionsForDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.ScheduleException, error) {
	args := m.Called(ctx, workshopID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleException), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) FindOccupyingByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, workshopID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, bool, error) {
	args := m.Called(ctx, workshopID, date, serviceType)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]types.TimeString), args.Bool(1), args.Error(2)
}

func (m *mockCache) Version(ctx context.Context, workshopID int64, date time.Time) (string, error) {
	args := m.Called(ctx, workshopID, date)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType, version string, slots []types.TimeString) error {
	args := m.Called(ctx, workshopID, date, serviceType, version, slots)
	return args.Error(0)
}

// memoryCache версионированный кэш в памяти с семантикой RedisCache
type memoryCache struct {
	mu       sync.Mutex
	entries  map[string][]types.TimeString
	versions map[string]int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries:  make(map[string][]types.TimeString),
		versions: make(map[string]int),
	}
}

func dateKey(workshopID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", workshopID, date.Format(domain.DateFormat))
}

func (c *memoryCache) Get(_ context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[dateKey(workshopID, date)+":"+string(serviceType)]
	return slots, ok, nil
}

func (c *memoryCache) Version(_ context.Context, workshopID int64, date time.Time) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.Itoa(c.versions[dateKey(workshopID, date)]), nil
}

func (c *memoryCache) Set(_ context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType, version string, slots []types.TimeString) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strconv.Itoa(c.versions[dateKey(workshopID, date)]) != version {
		return nil
	}
	c.entries[dateKey(workshopID, date)+":"+string(serviceType)] = slots
	return nil
}

func (c *memoryCache) InvalidateDate(_ context.Context, workshopID int64, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := dateKey(workshopID, date) + ":"
	c.versions[dateKey(workshopID, date)]++
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
