package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(uc *mockUseCase, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil))
	return rec
}

func TestHandle_ReturnsSlotsPerStaff(t *testing.T) {
	day := time.Date(2025, 6, 12, 0, 0, 0, 0, ist)
	slot := time.Date(2025, 6, 12, 10, 0, 0, 0, ist)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool {
		return r.Date.Format("2006-01-02") == "2025-06-12" &&
			assert.ObjectsAreEqual([]int64{1, 2, 3}, r.ServiceIDs) &&
			r.StaffID != nil && *r.StaffID == 7 && r.MatchAll
	})).Return(&getAvailableSlots.Response{
		Date:                 day,
		ServiceIDs:           []int64{1, 2},
		MissingServiceIDs:    []int64{3},
		TotalDurationMinutes: 75,
		TotalPrice:           1550,
		Staff: []getAvailableSlots.StaffSlots{{
			StaffID:   7,
			StaffName: "Anita",
			Slots:     []getAvailableSlots.Slot{{StartTime: slot, EndTime: slot.Add(75 * time.Minute)}},
		}},
	}, nil)

	rec := get(uc, "date=2025-06-12&serviceIds=1,2&serviceIds=3&staffId=7&matchAll=true")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-12", resp.Date)
	assert.Equal(t, []int64{3}, resp.MissingServiceIDs)
	assert.Equal(t, 75, resp.TotalDurationMinutes)
	require.Len(t, resp.Staff, 1)
	require.Len(t, resp.Staff[0].Slots, 1)
	assert.Equal(t, "10:00", resp.Staff[0].Slots[0].StartTime)
	assert.Equal(t, "11:15", resp.Staff[0].Slots[0].EndTime)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyAvailabilityIsSuccess(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{
		Date:  time.Date(2025, 6, 12, 0, 0, 0, 0, ist),
		Staff: []getAvailableSlots.StaffSlots{},
	}, nil)

	rec := get(uc, "date=2025-06-12&serviceIds=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"staff":[]`)
}

func TestHandle_BadQuery(t *testing.T) {
	for _, query := range []string{
		"serviceIds=1",
		"date=12-06-2025&serviceIds=1",
		"date=2025-06-12",
		"date=2025-06-12&serviceIds=1,x",
		"date=2025-06-12&serviceIds=1&staffId=abc",
		"date=2025-06-12&serviceIds=1&matchAll=maybe",
	} {
		uc := &mockUseCase{}
		rec := get(uc, query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

		assert.Equal(t, tt.wantStatus, get(uc, "date=2025-06-12&serviceIds=1").Code, tt.err.Error())
	}
}
