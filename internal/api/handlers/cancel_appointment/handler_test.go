package cancel_appointment

import (
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc AppointmentService, body string, userHeader string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/appointments/{appointmentId}/cancel", middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/9/cancel", strings.NewReader(body))
	if userHeader != "" {
		req.Header.Set(middleware.UserIDHeader, userHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, int64(9), &models.CancelRequest{UserID: 4, Reason: "client called"}).
		Return(&models.AppointmentResponse{ID: 9, Status: "cancelled"}, nil)

	rec := serve(svc, `{"reason":"client called"}`, "4")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "cancelled", resp.Status)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantMsg    string
	}{
		{"empty body", ``, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"unknown field", `{"why":"x"}`, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"empty reason", `{"reason":"  "}`, fmt.Errorf("%w: cancellation reason is required", appointments.ErrInvalidInput), http.StatusBadRequest, msgInvalidReason},
		{"not found", `{"reason":"x"}`, appointments.ErrAppointmentNotFound, http.StatusNotFound, msgAppointmentNotFound},
		{"already completed", `{"reason":"x"}`, appointments.ErrInvalidTransition, http.StatusConflict, msgInvalidTransition},
		{"storage failure", `{"reason":"x"}`, appointments.ErrInternal, http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.svcErr != nil {
				svc.On("Cancel", mock.Anything, int64(9), mock.Anything).Return(nil, tt.svcErr)
			}

			rec := serve(svc, tt.body, "4")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestHandler_Unauthorized(t *testing.T) {
	svc := new(mockService)

	rec := serve(svc, `{"reason":"x"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
