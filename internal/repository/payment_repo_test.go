package repository

import (
	"context"
	"io"
	"testing"
	"time"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := database.Connect(":memory:", logger)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

type fixtures struct {
	user    *domain.Profile
	space   *domain.Space
	booking *domain.Booking
	payment *domain.Payment
}

func seedBookingWithPayment(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	ctx := context.Background()

	users := NewUserRepository(db)
	locations := NewLocationRepository(db)
	spaces := NewSpaceRepository(db)
	bookings := NewBookingRepository(db)
	payments := NewPaymentRepository(db)

	user := &domain.Profile{
		Email:        "alice@example.com",
		PasswordHash: "x",
		FullName:     "Alice Kumar",
		Role:         domain.RoleUser,
	}
	require.NoError(t, users.Create(ctx, user))

	loc := &domain.Location{Name: "Indiranagar Hub", City: "Bengaluru", Address: "100 Feet Road", IsActive: true}
	require.NoError(t, locations.Create(ctx, loc))

	space := &domain.Space{
		LocationID:    loc.ID,
		Name:          "Tower Desk 12",
		Type:          domain.SpaceHotDesk,
		Capacity:      1,
		PricePerMonth: 15000,
		IsActive:      true,
	}
	require.NoError(t, spaces.Create(ctx, space))

	start := time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		UserID:         user.ID,
		SpaceID:        space.ID,
		StartTime:      start,
		EndTime:        start.AddDate(0, 3, 0),
		DurationMonths: 3,
		TotalAmount:    45000,
		Status:         domain.BookingPending,
		PaymentState:   domain.PaymentStatePending,
	}
	require.NoError(t, bookings.Create(ctx, booking))

	payment := &domain.Payment{
		BookingID:      booking.ID,
		Amount:         45000,
		Currency:       "INR",
		Status:         domain.PaymentCreated,
		GatewayOrderID: "order_abc",
		Receipt:        "booking_1",
	}
	require.NoError(t, payments.Create(ctx, payment))

	return fixtures{user: user, space: space, booking: booking, payment: payment}
}

// Capturing a payment must confirm the booking and mark it paid in the
// same transaction.
func TestPaymentRepository_MarkCaptured_PairsBooking(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBookingWithPayment(t, db)
	ctx := context.Background()

	payments := NewPaymentRepository(db)
	bookings := NewBookingRepository(db)

	changed, err := payments.MarkCaptured(ctx, fx.payment.ID, "pay_xyz", "sig_ok")
	assert.NoError(t, err)
	assert.True(t, changed)

	p, err := payments.GetByID(ctx, fx.payment.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentCaptured, p.Status)
	assert.Equal(t, "pay_xyz", p.GatewayPaymentID)

	b, err := bookings.GetByID(ctx, fx.booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentStatePaid, b.PaymentState)
	assert.Equal(t, "pay_xyz", b.GatewayPayID)
}

func TestPaymentRepository_MarkCaptured_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBookingWithPayment(t, db)
	ctx := context.Background()

	payments := NewPaymentRepository(db)

	changed, err := payments.MarkCaptured(ctx, fx.payment.ID, "pay_xyz", "sig_ok")
	assert.NoError(t, err)
	assert.True(t, changed)

	changed, err = payments.MarkCaptured(ctx, fx.payment.ID, "pay_other", "sig_other")
	assert.NoError(t, err)
	assert.False(t, changed)

	// The original identifiers survive the repeat call.
	p, err := payments.GetByID(ctx, fx.payment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "pay_xyz", p.GatewayPaymentID)
}

// Refunding a payment must flip the parent booking's payment state too.
func TestPaymentRepository_MarkRefunded_PairsBooking(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBookingWithPayment(t, db)
	ctx := context.Background()

	payments := NewPaymentRepository(db)
	bookings := NewBookingRepository(db)

	_, err := payments.MarkCaptured(ctx, fx.payment.ID, "pay_xyz", "sig_ok")
	require.NoError(t, err)

	p, err := payments.MarkRefunded(ctx, fx.payment.ID, "rfnd_123", 45000)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, p.Status)
	assert.Equal(t, "rfnd_123", p.RefundID)
	if assert.NotNil(t, p.RefundAmount) {
		assert.Equal(t, 45000.0, *p.RefundAmount)
	}

	b, err := bookings.GetByID(ctx, fx.booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStateRefunded, b.PaymentState)
}

func TestPaymentRepository_GetByOrderID(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBookingWithPayment(t, db)
	ctx := context.Background()

	payments := NewPaymentRepository(db)

	p, err := payments.GetByOrderID(ctx, "order_abc")
	assert.NoError(t, err)
	assert.Equal(t, fx.payment.ID, p.ID)

	_, err = payments.GetByOrderID(ctx, "order_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingRepository_CheckAvailability(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBookingWithPayment(t, db)
	ctx := context.Background()

	bookings := NewBookingRepository(db)

	// Overlapping window is taken.
	ok, err := bookings.CheckAvailability(ctx, fx.space.ID,
		time.Date(2027, 4, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2027, 5, 1, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.False(t, ok)

	// A window after the booking ends is free.
	ok, err = bookings.CheckAvailability(ctx, fx.space.ID,
		time.Date(2027, 7, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2027, 8, 1, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.True(t, ok)

	// Cancelled bookings release their window.
	require.NoError(t, bookings.UpdateStatus(ctx, fx.booking.ID, domain.BookingCancelled))
	ok, err = bookings.CheckAvailability(ctx, fx.space.ID,
		time.Date(2027, 4, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2027, 5, 1, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.True(t, ok)
}

// Deactivating a location hides its spaces from the active picker but
// keeps historical booking rows renderable.
func TestLocationDeactivation_HistoricalJoinSurvives(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBookingWithPayment(t, db)
	ctx := context.Background()

	locations := NewLocationRepository(db)
	spaces := NewSpaceRepository(db)
	bookings := NewBookingRepository(db)

	require.NoError(t, locations.SetActive(ctx, fx.space.LocationID, false))

	_, err := spaces.GetActiveByID(ctx, fx.space.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	details, err := bookings.GetDetailsByID(ctx, fx.booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Indiranagar Hub", details.LocationName)
	assert.False(t, details.LocationActive)
}
