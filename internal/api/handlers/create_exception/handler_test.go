package create_exception

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExceptionResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc ScheduleService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/workshops/{workshopId}/schedule/exceptions",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workshops/5/schedule/exceptions", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "11")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ClosedByDefault(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateException", mock.Anything, mock.MatchedBy(func(r *models.CreateExceptionRequest) bool {
		return r.WorkshopID == 5 && r.UserID == 11 && r.IsClosed && r.IsRecurringYearly &&
			r.Date.Month() == 12 && r.Date.Day() == 31
	})).Return(&models.ExceptionResponse{ID: 1}, nil)

	rec := serve(svc, `{"date":"2025-12-31","isRecurringYearly":true,"reason":"New Year"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_OpenExceptionWithoutHours(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateException", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: special hours required", schedules.ErrInvalidInput))

	rec := serve(svc, `{"date":"2025-12-30","isClosed":false}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidException)
}

func TestHandler_BadDate(t *testing.T) {
	svc := new(mockService)

	rec := serve(svc, `{"date":"31.12.2025"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateException", mock.Anything, mock.Anything)
}
