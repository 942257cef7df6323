package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Service), args.Error(1)
}

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.Staff, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Staff), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetActiveByStaffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, staffIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2025, 6, 12, h, m, 0, 0, ist)
}

func haircut() *domain.Service {
	return &domain.Service{ID: 1, Name: "Hair Cut (Male)", DurationMinutes: 60, Price: 250, IsActive: true}
}

func newTestUseCase(t *testing.T, now time.Time) (*UseCase, *mockServiceRepo, *mockStaffRepo, *mockBookingRepo) {
	t.Helper()

	gen, err := scheduling.NewGenerator(domain.BusinessHours{Open: "10:00", Close: "22:00"}, 30*time.Minute)
	require.NoError(t, err)

	services, staff, bookings := &mockServiceRepo{}, &mockStaffRepo{}, &mockBookingRepo{}
	uc := NewUseCase(services, staff, bookings, gen, ist, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc, services, staff, bookings
}

func slotStarts(s StaffSlots) []string {
	out := make([]string, len(s.Slots))
	for i, sl := range s.Slots {
		out[i] = sl.StartTime.Format(domain.TimeFormat)
	}
	return out
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t, at(9, 0))

	_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: at(0, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{0}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NoResolvableServices(t *testing.T) {
	uc, services, _, _ := newTestUseCase(t, at(9, 0))
	services.On("GetActiveByIDs", mock.Anything, []int64{99}).Return([]*domain.Service{}, nil)

	_, err := uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{99}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ExcludesOverlappingSlots(t *testing.T) {
	uc, services, staff, bookings := newTestUseCase(t, time.Date(2025, 6, 1, 9, 0, 0, 0, ist))

	services.On("GetActiveByIDs", mock.Anything, []int64{1}).Return([]*domain.Service{haircut()}, nil)
	staff.On("List", mock.Anything, mock.Anything).Return([]*domain.Staff{
		{ID: 7, Name: "Anita", Position: "Stylist", IsAvailable: true, ServiceIDs: []int64{1}},
	}, nil)
	bookings.On("GetActiveByStaffInRange", mock.Anything, []int64{7}, at(10, 0), at(22, 0)).Return([]*domain.Booking{
		{ID: 1, StaffID: 7, StartTime: at(14, 0), EndTime: at(15, 0), Status: domain.StatusConfirmed},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{1}})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.TotalDurationMinutes)
	assert.Equal(t, int64(250), resp.TotalPrice)
	require.Len(t, resp.Staff, 1)

	starts := slotStarts(resp.Staff[0])
	assert.Len(t, starts, 20)
	assert.Contains(t, starts, "13:00")
	assert.Contains(t, starts, "15:00")
	assert.NotContains(t, starts, "13:30")
	assert.NotContains(t, starts, "14:00")
	assert.NotContains(t, starts, "14:30")
	assert.Equal(t, "21:00", starts[len(starts)-1])

	for _, s := range resp.Staff[0].Slots {
		assert.Equal(t, time.Hour, s.EndTime.Sub(s.StartTime))
	}
}

func TestExecute_DropsSlotsBeforeNow(t *testing.T) {
	uc, services, staff, bookings := newTestUseCase(t, at(16, 10))

	services.On("GetActiveByIDs", mock.Anything, []int64{1}).Return([]*domain.Service{haircut()}, nil)
	staff.On("List", mock.Anything, mock.Anything).Return([]*domain.Staff{
		{ID: 7, Name: "Anita", IsAvailable: true, ServiceIDs: []int64{1}},
	}, nil)
	bookings.On("GetActiveByStaffInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Booking{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{1}})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, "16:30", slotStarts(resp.Staff[0])[0])
}

func TestExecute_FullyBookedStaffKeptWithEmptySlots(t *testing.T) {
	uc, services, staff, bookings := newTestUseCase(t, time.Date(2025, 6, 1, 9, 0, 0, 0, ist))

	services.On("GetActiveByIDs", mock.Anything, []int64{1}).Return([]*domain.Service{haircut()}, nil)
	staff.On("List", mock.Anything, mock.Anything).Return([]*domain.Staff{
		{ID: 7, Name: "Anita", IsAvailable: true, ServiceIDs: []int64{1}},
		{ID: 8, Name: "Ravi", IsAvailable: true, ServiceIDs: []int64{1}},
	}, nil)
	bookings.On("GetActiveByStaffInRange", mock.Anything, []int64{7, 8}, at(10, 0), at(22, 0)).Return([]*domain.Booking{
		{ID: 1, StaffID: 8, StartTime: at(10, 0), EndTime: at(22, 0), Status: domain.StatusConfirmed},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{1}})
	require.NoError(t, err)

	require.Len(t, resp.Staff, 2)
	assert.Equal(t, int64(7), resp.Staff[0].StaffID)
	assert.Len(t, resp.Staff[0].Slots, 23)

	assert.Equal(t, int64(8), resp.Staff[1].StaffID)
	assert.Equal(t, "Ravi", resp.Staff[1].StaffName)
	assert.NotNil(t, resp.Staff[1].Slots)
	assert.Empty(t, resp.Staff[1].Slots)
}

func TestExecute_NoEligibleStaffIsEmptySuccess(t *testing.T) {
	uc, services, staff, bookings := newTestUseCase(t, time.Date(2025, 6, 1, 9, 0, 0, 0, ist))

	services.On("GetActiveByIDs", mock.Anything, []int64{1}).Return([]*domain.Service{haircut()}, nil)
	staff.On("List", mock.Anything, mock.Anything).Return([]*domain.Staff{
		{ID: 7, IsAvailable: false, ServiceIDs: []int64{1}},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{1}})
	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	bookings.AssertNotCalled(t, "GetActiveByStaffInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_MatchAllAndMissingServices(t *testing.T) {
	uc, services, staff, bookings := newTestUseCase(t, time.Date(2025, 6, 1, 9, 0, 0, 0, ist))

	facial := &domain.Service{ID: 2, Name: "Silver Facial", DurationMinutes: 45, Price: 1200, IsActive: true}
	short := &domain.Service{ID: 1, Name: "Hair Cut (Female)", DurationMinutes: 30, Price: 350, IsActive: true}
	services.On("GetActiveByIDs", mock.Anything, []int64{1, 2, 50}).Return([]*domain.Service{short, facial}, nil)
	staff.On("List", mock.Anything, domain.StaffFilter{
		ServiceIDs:    []int64{1, 2},
		MatchAll:      true,
		OnlyAvailable: true,
	}).Return([]*domain.Staff{
		{ID: 7, Name: "Anita", IsAvailable: true, ServiceIDs: []int64{1, 2}},
		{ID: 8, Name: "Ravi", IsAvailable: true, ServiceIDs: []int64{1}},
	}, nil)
	bookings.On("GetActiveByStaffInRange", mock.Anything, []int64{7}, mock.Anything, mock.Anything).
		Return([]*domain.Booking{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       at(0, 0),
		ServiceIDs: []int64{1, 2, 50},
		MatchAll:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 75, resp.TotalDurationMinutes)
	assert.Equal(t, int64(1550), resp.TotalPrice)
	assert.Equal(t, []int64{50}, resp.MissingServiceIDs)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(7), resp.Staff[0].StaffID)

	last := resp.Staff[0].Slots[len(resp.Staff[0].Slots)-1]
	assert.Equal(t, at(20, 30), last.StartTime)
	assert.Equal(t, at(21, 45), last.EndTime)
}

func TestExecute_Idempotent(t *testing.T) {
	uc, services, staff, bookings := newTestUseCase(t, time.Date(2025, 6, 1, 9, 0, 0, 0, ist))

	services.On("GetActiveByIDs", mock.Anything, []int64{1}).Return([]*domain.Service{haircut()}, nil)
	staff.On("List", mock.Anything, mock.Anything).Return([]*domain.Staff{
		{ID: 7, Name: "Anita", IsAvailable: true, ServiceIDs: []int64{1}},
		{ID: 8, Name: "Ravi", IsAvailable: true, ServiceIDs: []int64{1}},
	}, nil)
	bookings.On("GetActiveByStaffInRange", mock.Anything, []int64{7, 8}, mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 1, StaffID: 8, StartTime: at(10, 0), EndTime: at(22, 0), Status: domain.StatusConfirmed},
		{ID: 2, StaffID: 7, StartTime: at(12, 0), EndTime: at(13, 0), Status: domain.StatusCancelled},
	}, nil)

	req := &Request{Date: at(0, 0), ServiceIDs: []int64{1}}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first.Staff, 1, "fully booked staff is omitted")
	assert.Contains(t, slotStarts(first.Staff[0]), "12:00", "cancelled booking does not block")
}

func TestExecute_RepositoryError(t *testing.T) {
	uc, services, _, _ := newTestUseCase(t, at(9, 0))
	services.On("GetActiveByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := uc.Execute(context.Background(), &Request{Date: at(0, 0), ServiceIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrInternal)
}
