package update_booking_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patch(svc *mockService, path, body, role string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "200")
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_UpdatesStatus(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, int64(42), &models.UpdateStatusRequest{
		Actor:  models.Actor{UserID: 200, Role: domain.RoleStaff},
		Status: "IN_PROGRESS",
	}).Return(&models.BookingResponse{ID: 42, Status: "IN_PROGRESS"}, nil)

	rec := patch(svc, "/api/v1/bookings/42/status", `{"status":"in_progress"}`, "STAFF")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"IN_PROGRESS"`)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{bookings.ErrInvalidInput, http.StatusBadRequest},
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrStaffNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrInvalidTransition, http.StatusConflict},
		{bookings.ErrStatusConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

		rec := patch(svc, "/api/v1/bookings/42/status", `{"status":"COMPLETED"}`, "ADMIN")
		assert.Equal(t, tt.wantStatus, rec.Code, tt.err.Error())
	}
}

func TestHandle_InvalidTransitionBody(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidTransition)

	rec := patch(svc, "/api/v1/bookings/42/status", `{"status":"confirmed"}`, "ADMIN")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"`+msgInvalidTransition+`","details":{"requestedStatus":"CONFIRMED"}}`, rec.Body.String())
}

func TestHandle_BadRequests(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusBadRequest, patch(svc, "/api/v1/bookings/abc/status", `{"status":"COMPLETED"}`, "ADMIN").Code)
	assert.Equal(t, http.StatusBadRequest, patch(svc, "/api/v1/bookings/42/status", `not json`, "ADMIN").Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
