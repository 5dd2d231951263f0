package get_busy_dates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) BusyDates(ctx context.Context, workshopID int64, startDate, endDate time.Time) (*models.BusyDatesResponse, error) {
	args := m.Called(ctx, workshopID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusyDatesResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc CalendarService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/workshops/{workshopId}/busy-dates", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_BusyDates(t *testing.T) {
	svc := new(mockService)
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	svc.On("BusyDates", mock.Anything, int64(2), start, end).Return(&models.BusyDatesResponse{
		WorkshopID: 2,
		StartDate:  "2025-10-01",
		EndDate:    "2025-10-07",
		BusyDates:  []models.BusyDateResponse{{Date: "2025-10-05", Reason: "closed"}},
	}, nil)

	rec := serve(svc, "/api/v1/workshops/2/busy-dates?startDate=2025-10-01&endDate=2025-10-07")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BusyDatesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.BusyDates, 1)
	assert.Equal(t, "closed", resp.BusyDates[0].Reason)
}

func TestHandler_RangeRejected(t *testing.T) {
	svc := new(mockService)
	svc.On("BusyDates", mock.Anything, int64(2), mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: range exceeds 90 days", calendar.ErrInvalidInput))

	rec := serve(svc, "/api/v1/workshops/2/busy-dates?startDate=2025-01-01&endDate=2025-12-31")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MissingDates(t *testing.T) {
	svc := new(mockService)

	rec := serve(svc, "/api/v1/workshops/2/busy-dates?startDate=2025-10-01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "BusyDates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
