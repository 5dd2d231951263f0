package reschedule_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/reschedule_appointment"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *rescheduleAppointment.Request) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc RescheduleUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/appointments/{appointmentId}/reschedule", middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "3")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Rescheduled(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *rescheduleAppointment.Request) bool {
		return r.AppointmentID == 42 && r.UserID == 3 && r.NewStartTime == "14:00" &&
			r.NewDate.Format("2006-01-02") == "2025-10-16"
	})).Return(&models.AppointmentResponse{ID: 42, Status: "rescheduled"}, nil)

	rec := serve(uc, "/api/v1/appointments/42/reschedule", `{"newDate":"2025-10-16","newStartTime":"14:00"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	const body = `{"newDate":"2025-10-16","newStartTime":"14:00"}`

	tests := []struct {
		name       string
		path       string
		body       string
		ucErr      error
		wantStatus int
		wantMsg    string
	}{
		{"bad id", "/api/v1/appointments/abc/reschedule", body, nil, http.StatusBadRequest, msgInvalidAppointmentID},
		{"bad time", "/api/v1/appointments/42/reschedule", `{"newDate":"2025-10-16","newStartTime":"25:00"}`, nil, http.StatusBadRequest, msgInvalidDateTime},
		{"not found", "/api/v1/appointments/42/reschedule", body, rescheduleAppointment.ErrAppointmentNotFound, http.StatusNotFound, msgAppointmentNotFound},
		{"wrong status", "/api/v1/appointments/42/reschedule", body, rescheduleAppointment.ErrInvalidTransition, http.StatusConflict, msgInvalidTransition},
		{"slot taken", "/api/v1/appointments/42/reschedule", body, rescheduleAppointment.ErrNewSlotNotAvailable, http.StatusConflict, "The new time slot is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(uc, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}
