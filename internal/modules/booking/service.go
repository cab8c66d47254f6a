package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"coworkspace/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// validDurations are the membership terms offered at checkout, in months.
var validDurations = map[int]bool{1: true, 3: true, 6: true, 12: true}

type Service struct {
	bookings BookingRepository
	spaces   SpaceRepository
}

func NewService(bookings BookingRepository, spaces SpaceRepository) *Service {
	return &Service{bookings: bookings, spaces: spaces}
}

// CreateBooking validates the request, prices it on the server and inserts
// the booking with a pending status and pending payment state. The total is
// always price_per_month times the duration in months; the client-supplied
// amount is never trusted.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !validDurations[req.DurationMonths] {
		return nil, ErrBadDuration
	}
	if req.StartHour < 0 || req.StartHour > 23 {
		return nil, ErrValidation
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), req.StartHour, 0, 0, 0, time.UTC)
	// Duration is months, so the window ends a calendar month multiple
	// after the start. A 1-month booking spans a month, not an hour.
	end := start.AddDate(0, req.DurationMonths, 0)

	if start.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return nil, ErrValidation
	}

	space, err := s.spaces.GetActiveByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceInactive
		}
		return nil, err
	}

	ok, err := s.bookings.CheckAvailability(ctx, req.SpaceID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	total := space.PricePerMonth * float64(req.DurationMonths)
	total = math.Round(total*100) / 100

	b := &domain.Booking{
		UserID:         req.UserID,
		SpaceID:        req.SpaceID,
		StartTime:      start,
		EndTime:        end,
		DurationMonths: req.DurationMonths,
		TotalAmount:    total,
		Status:         domain.BookingPending,
		PaymentState:   domain.PaymentStatePending,
		Notes:          req.Notes,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23P01 is raised by the bookings_no_overlap exclusion
			// constraint (migrations/0001); 23505 by unique indexes.
			if pgErr.Code == "23P01" || pgErr.Code == "23505" {
				return nil, ErrOverbooking
			}
		}
		return nil, err
	}

	return b, nil
}

// GetMyBookings returns the caller's bookings, newest first, joined with
// space and location names.
func (s *Service) GetMyBookings(ctx context.Context, userID int64) ([]BookingView, error) {
	rows, err := s.bookings.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BookingView, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingView{
			ID:             r.Booking.ID,
			Status:         r.Booking.Status,
			PaymentState:   r.Booking.PaymentState,
			StartTime:      r.Booking.StartTime,
			EndTime:        r.Booking.EndTime,
			DurationMonths: r.Booking.DurationMonths,
			TotalAmount:    r.Booking.TotalAmount,
			Notes:          r.Booking.Notes,
			GatewayOrderID: r.Booking.GatewayOrderID,
			CreatedAt:      r.Booking.CreatedAt,
			SpaceID:        r.Booking.SpaceID,
			SpaceName:      r.SpaceName,
			SpaceType:      r.SpaceType,
			LocationName:   r.LocationName,
			LocationCity:   r.LocationCity,
		})
	}
	return out, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// CancelBooking lets a member cancel their own booking while it is still
// unpaid. Paid bookings go through the admin refund flow instead.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending || b.PaymentState == domain.PaymentStatePaid {
		return nil, ErrNotCancellable
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}
