package booking

import (
	"context"
	"testing"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUser(ctx context.Context, userID int64) ([]repository.BookingDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) CheckAvailability(ctx context.Context, spaceID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, spaceID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockSpaceRepository struct {
	mock.Mock
}

func (m *MockSpaceRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Space, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Space), args.Error(1)
}

func activeSpace(id int64, price float64) *domain.Space {
	return &domain.Space{
		ID:            id,
		LocationID:    1,
		Name:          "Tower Desk 12",
		Type:          domain.SpaceHotDesk,
		PricePerMonth: price,
		Capacity:      1,
		IsActive:      true,
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockSpaces := new(MockSpaceRepository)

	mockSpaces.On("GetActiveByID", mock.Anything, int64(10)).Return(activeSpace(10, 15000.0), nil)

	start := time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)
	mockBookings.On("CheckAvailability", mock.Anything, int64(10), start, end).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockSpaces)

	req := CreateBookingRequest{
		SpaceID:        10,
		Date:           "2027-03-01",
		StartHour:      9,
		DurationMonths: 3,
		Notes:          "Test booking",
		UserID:         42,
	}

	b, err := service.CreateBooking(context.Background(), req)

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 45000.0, b.TotalAmount)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentStatePending, b.PaymentState)
	assert.Equal(t, end, b.EndTime)
	mockBookings.AssertExpectations(t)
}

// Totals for every offered duration: price per month times months.
func TestService_CreateBooking_TotalPerDuration(t *testing.T) {
	cases := []struct {
		months int
		total  float64
	}{
		{1, 15000.0},
		{3, 45000.0},
		{6, 90000.0},
		{12, 180000.0},
	}

	for _, tc := range cases {
		mockBookings := new(MockBookingRepository)
		mockSpaces := new(MockSpaceRepository)

		mockSpaces.On("GetActiveByID", mock.Anything, int64(10)).Return(activeSpace(10, 15000.0), nil)
		mockBookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(true, nil)
		mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewService(mockBookings, mockSpaces)

		b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
			SpaceID:        10,
			Date:           "2027-03-01",
			StartHour:      9,
			DurationMonths: tc.months,
			UserID:         42,
		})

		assert.NoError(t, err)
		assert.Equal(t, tc.total, b.TotalAmount, "months=%d", tc.months)
		assert.Equal(t, tc.months, b.DurationMonths)
	}
}

// A one-month booking must span a calendar month, not an hour.
func TestService_CreateBooking_MonthWindow(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockSpaces := new(MockSpaceRepository)

	mockSpaces.On("GetActiveByID", mock.Anything, int64(10)).Return(activeSpace(10, 8000.0), nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockSpaces)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		SpaceID:        10,
		Date:           "2027-03-01",
		StartHour:      14,
		DurationMonths: 1,
		UserID:         42,
	})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2027, 3, 1, 14, 0, 0, 0, time.UTC), b.StartTime)
	assert.Equal(t, time.Date(2027, 4, 1, 14, 0, 0, 0, time.UTC), b.EndTime)
}

func TestService_CreateBooking_BadDuration(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockSpaceRepository))

	for _, months := range []int{0, 2, 5, 24, -1} {
		_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
			SpaceID:        10,
			Date:           "2027-03-01",
			StartHour:      9,
			DurationMonths: months,
			UserID:         42,
		})
		assert.ErrorIs(t, err, ErrBadDuration, "months=%d", months)
	}
}

func TestService_CreateBooking_BadDate(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockSpaceRepository))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		SpaceID:        10,
		Date:           "not-a-date",
		StartHour:      9,
		DurationMonths: 3,
		UserID:         42,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateBooking(context.Background(), CreateBookingRequest{
		SpaceID:        10,
		Date:           "2027-03-01",
		StartHour:      25,
		DurationMonths: 3,
		UserID:         42,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_SlotUnavailable(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockSpaces := new(MockSpaceRepository)

	mockSpaces.On("GetActiveByID", mock.Anything, int64(10)).Return(activeSpace(10, 15000.0), nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(false, nil)

	service := NewService(mockBookings, mockSpaces)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		SpaceID:        10,
		Date:           "2027-03-01",
		StartHour:      9,
		DurationMonths: 3,
		UserID:         42,
	})
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_CreateBooking_ConstraintRaceMapsToOverbooking(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockSpaces := new(MockSpaceRepository)

	mockSpaces.On("GetActiveByID", mock.Anything, int64(10)).Return(activeSpace(10, 15000.0), nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23P01"})

	service := NewService(mockBookings, mockSpaces)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		SpaceID:        10,
		Date:           "2027-03-01",
		StartHour:      9,
		DurationMonths: 1,
		UserID:         42,
	})

	assert.ErrorIs(t, err, ErrOverbooking)
}

func TestService_CancelBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockSpaces := new(MockSpaceRepository)

	pending := &domain.Booking{
		ID:           7,
		UserID:       42,
		Status:       domain.BookingPending,
		PaymentState: domain.PaymentStatePending,
	}
	cancelled := &domain.Booking{
		ID:           7,
		UserID:       42,
		Status:       domain.BookingCancelled,
		PaymentState: domain.PaymentStatePending,
	}

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(pending, nil).Once()
	mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingCancelled).Return(nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(cancelled, nil).Once()

	service := NewService(mockBookings, mockSpaces)

	b, err := service.CancelBooking(context.Background(), 7, 42)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_CancelBooking_Forbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		UserID: 42,
		Status: domain.BookingPending,
	}, nil)

	service := NewService(mockBookings, new(MockSpaceRepository))

	_, err := service.CancelBooking(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_CancelBooking_PaidNotCancellable(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:           7,
		UserID:       42,
		Status:       domain.BookingConfirmed,
		PaymentState: domain.PaymentStatePaid,
	}, nil)

	service := NewService(mockBookings, new(MockSpaceRepository))

	_, err := service.CancelBooking(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrNotCancellable)
}
