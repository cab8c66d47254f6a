package admin

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const filterAll = "all"

type Service struct {
	users     UserRepository
	bookings  BookingRepository
	payments  PaymentRepository
	locations LocationCounter
	spaces    SpaceCounter
	refunder  Refunder
	audit     AuditLog
	tokens    tokenIssuer
	logger    *logrus.Logger
}

func NewService(
	users UserRepository,
	bookings BookingRepository,
	payments PaymentRepository,
	locations LocationCounter,
	spaces SpaceCounter,
	refunder Refunder,
	audit AuditLog,
	tokens tokenIssuer,
	logger *logrus.Logger,
) *Service {
	return &Service{
		users:     users,
		bookings:  bookings,
		payments:  payments,
		locations: locations,
		spaces:    spaces,
		refunder:  refunder,
		audit:     audit,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login authenticates a back-office user. Accounts without the admin role
// are rejected with the same error as a wrong password so the endpoint
// does not leak which addresses belong to admins.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Role != domain.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		Admin: AdminPayload{ID: u.ID, Email: u.Email, FullName: u.FullName},
	}, nil
}

// GetStats issues the dashboard reads concurrently and joins them. Any
// single failure fails the whole call.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)

	fail := func(err error) {
		mu.Lock()
		if first == nil {
			first = err
		}
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		n, err := s.locations.Count(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.Locations = n
	}()
	go func() {
		defer wg.Done()
		n, err := s.spaces.Count(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.Spaces = n
	}()
	go func() {
		defer wg.Done()
		n, err := s.bookings.Count(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.Bookings = n
	}()
	go func() {
		defer wg.Done()
		sum, err := s.bookings.PaidRevenue(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.Revenue = sum
	}()
	go func() {
		defer wg.Done()
		n, err := s.bookings.CountSince(ctx, time.Now().AddDate(0, 0, -30))
		if err != nil {
			fail(err)
			return
		}
		stats.RecentBookings = n
	}()
	wg.Wait()

	if first != nil {
		return nil, first
	}
	return &stats, nil
}

// ListBookings returns every booking joined with payer, space and location,
// narrowed by the given filters in memory.
func (s *Service) ListBookings(ctx context.Context, f BookingFilters) ([]BookingRow, error) {
	details, err := s.bookings.GetAllDetails(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]BookingRow, 0, len(details))
	for _, d := range details {
		if !matchBooking(d, f) {
			continue
		}
		out = append(out, BookingRow{
			ID:             d.Booking.ID,
			Status:         d.Booking.Status,
			PaymentState:   d.Booking.PaymentState,
			StartTime:      d.Booking.StartTime,
			EndTime:        d.Booking.EndTime,
			DurationMonths: d.Booking.DurationMonths,
			TotalAmount:    d.Booking.TotalAmount,
			GatewayOrderID: d.Booking.GatewayOrderID,
			CreatedAt:      d.Booking.CreatedAt,
			UserEmail:      d.UserEmail,
			UserFullName:   d.UserFullName,
			UserPhone:      d.UserPhone,
			SpaceName:      d.SpaceName,
			SpaceType:      d.SpaceType,
			LocationName:   d.LocationName,
			LocationCity:   d.LocationCity,
			LocationActive: d.LocationActive,
		})
	}
	return out, nil
}

func matchBooking(d repository.BookingDetails, f BookingFilters) bool {
	if f.Status != "" && f.Status != filterAll && string(d.Booking.Status) != f.Status {
		return false
	}
	if f.PaymentState != "" && f.PaymentState != filterAll && string(d.Booking.PaymentState) != f.PaymentState {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystacks := []string{d.UserEmail, d.UserFullName, d.SpaceName, d.LocationName}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// UpdateBookingStatus applies a transition-checked status change and
// records who made it.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID, adminID int64, newStatus string) (*domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(newStatus)
	if !ok {
		return nil, ErrInvalidStatus
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.Status.CanTransitionTo(status) {
		return nil, ErrBadTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	if err := s.audit.Log(ctx, &domain.StatusChange{
		AdminID:   adminID,
		Entity:    "booking",
		EntityID:  bookingID,
		OldStatus: string(b.Status),
		NewStatus: string(status),
	}); err != nil {
		s.logger.WithError(err).WithField("booking_id", bookingID).Error("failed to record status change")
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// ListPayments returns every payment joined with its booking and payer,
// narrowed by the filters, plus per-stage amount totals over the full set.
func (s *Service) ListPayments(ctx context.Context, f PaymentFilters) ([]PaymentRow, *PaymentTotals, error) {
	details, err := s.payments.GetAllDetails(ctx)
	if err != nil {
		return nil, nil, err
	}

	totals := &PaymentTotals{}
	out := make([]PaymentRow, 0, len(details))
	for _, d := range details {
		switch d.Payment.Status {
		case domain.PaymentCaptured:
			totals.Captured += d.Payment.Amount
		case domain.PaymentCreated, domain.PaymentAuthorized:
			totals.Pending += d.Payment.Amount
		case domain.PaymentRefunded:
			totals.Refunded += d.Payment.Amount
		}

		if !matchPayment(d, f) {
			continue
		}
		out = append(out, PaymentRow{
			ID:               d.Payment.ID,
			BookingID:        d.Payment.BookingID,
			Amount:           d.Payment.Amount,
			Currency:         d.Payment.Currency,
			Status:           d.Payment.Status,
			GatewayOrderID:   d.Payment.GatewayOrderID,
			GatewayPaymentID: d.Payment.GatewayPaymentID,
			RefundID:         d.Payment.RefundID,
			CreatedAt:        d.Payment.CreatedAt,
			BookingStatus:    d.BookingStatus,
			UserEmail:        d.UserEmail,
			UserFullName:     d.UserFullName,
			SpaceName:        d.SpaceName,
			LocationName:     d.LocationName,
			LocationCity:     d.LocationCity,
		})
	}
	return out, totals, nil
}

func matchPayment(d repository.PaymentDetails, f PaymentFilters) bool {
	if f.Status != "" && f.Status != filterAll && string(d.Payment.Status) != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystacks := []string{d.UserEmail, d.UserFullName, d.SpaceName, d.LocationName, d.Payment.GatewayOrderID}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RefundPayment delegates to the payment service, which refunds at the
// gateway and flips the payment and booking rows together, then records
// the change.
func (s *Service) RefundPayment(ctx context.Context, paymentID, adminID int64) (*domain.Payment, error) {
	p, err := s.refunder.Refund(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Log(ctx, &domain.StatusChange{
		AdminID:   adminID,
		Entity:    "payment",
		EntityID:  p.ID,
		OldStatus: string(domain.PaymentCaptured),
		NewStatus: string(domain.PaymentRefunded),
	}); err != nil {
		s.logger.WithError(err).WithField("payment_id", p.ID).Error("failed to record refund audit entry")
	}

	return p, nil
}

func (s *Service) GetAuditTrail(ctx context.Context, entity string, entityID int64) ([]domain.StatusChange, error) {
	return s.audit.GetByEntity(ctx, entity, entityID)
}
