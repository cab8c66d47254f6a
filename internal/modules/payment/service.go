package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"coworkspace/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	payments PaymentRepository
	bookings BookingRepository
	gateway  Gateway
	logger   *logrus.Logger
	currency string
}

func NewService(payments PaymentRepository, bookings BookingRepository, gateway Gateway, logger *logrus.Logger, currency string) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		gateway:  gateway,
		logger:   logger,
		currency: currency,
	}
}

// Paise converts a rupee amount to minor units.
func Paise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func amountEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// CreateOrder requests a gateway order for a booking. The amount the client
// sends is only a cross-check; the order is always placed for the booking's
// stored total. Repeat calls for the same booking reuse the existing order
// instead of creating duplicates.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != req.UserID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending || b.PaymentState != domain.PaymentStatePending {
		return nil, ErrBookingNotOpen
	}
	if !amountEqual(req.Amount, b.TotalAmount) {
		s.logger.WithFields(logrus.Fields{
			"booking_id":      b.ID,
			"client_amount":   req.Amount,
			"expected_amount": b.TotalAmount,
		}).Warn("payment amount mismatch on create-order")
		return nil, ErrAmountMismatch
	}

	// A dismissed checkout leaves a created payment behind. Hand the same
	// order back so retries stay tied to one booking.
	if existing, err := s.payments.GetByBookingID(ctx, b.ID); err == nil && existing.Status == domain.PaymentCreated {
		return &CreateOrderResponse{
			OrderID:     existing.GatewayOrderID,
			AmountPaise: Paise(existing.Amount),
			Currency:    existing.Currency,
			KeyID:       s.gateway.KeyID(),
			BookingID:   b.ID,
			AmountDue:   existing.Amount,
		}, nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	receipt := fmt.Sprintf("booking_%d", b.ID)
	order, err := s.gateway.CreateOrder(ctx, Paise(b.TotalAmount), s.currency, receipt, map[string]string{
		"booking_id": fmt.Sprintf("%d", b.ID),
	})
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		BookingID:      b.ID,
		Amount:         b.TotalAmount,
		Currency:       s.currency,
		Status:         domain.PaymentCreated,
		GatewayOrderID: order.ID,
		Receipt:        receipt,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.bookings.SetGatewayOrder(ctx, b.ID, order.ID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"booking_id": b.ID,
			"order_id":   order.ID,
		}).WithError(err).Error("failed to persist gateway order on booking")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"order_id":   order.ID,
		"amount":     b.TotalAmount,
	}).Info("gateway order created")

	return &CreateOrderResponse{
		OrderID:     order.ID,
		AmountPaise: Paise(b.TotalAmount),
		Currency:    s.currency,
		KeyID:       s.gateway.KeyID(),
		BookingID:   b.ID,
		AmountDue:   b.TotalAmount,
	}, nil
}

// Verify validates the checkout callback signature and, when valid, marks
// the payment captured and the booking confirmed/paid in one transaction.
// Repeat callbacks for an already captured payment are acknowledged without
// a second write.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	p, err := s.payments.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.BookingID != req.BookingID {
		return nil, ErrNotFound
	}

	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != req.UserID {
		return nil, ErrForbidden
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.logger.WithFields(logrus.Fields{
			"booking_id": p.BookingID,
			"payment_id": p.ID,
			"order_id":   req.RazorpayOrderID,
		}).Warn("invalid payment signature")
		if p.Status == domain.PaymentCreated {
			if uerr := s.payments.UpdateStatus(ctx, p.ID, domain.PaymentFailed); uerr != nil {
				s.logger.WithError(uerr).WithField("payment_id", p.ID).Error("failed to mark payment failed")
			}
		}
		return nil, ErrInvalidSignature
	}

	changed, err := s.payments.MarkCaptured(ctx, p.ID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		return nil, err
	}
	if !changed {
		s.logger.WithFields(logrus.Fields{
			"payment_id": p.ID,
			"order_id":   req.RazorpayOrderID,
		}).Info("repeat verify callback, payment already captured")
	} else {
		s.logger.WithFields(logrus.Fields{
			"booking_id": p.BookingID,
			"payment_id": p.ID,
			"amount":     p.Amount,
		}).Info("payment captured")
	}

	return &VerifyResponse{
		PaymentID:       p.ID,
		BookingID:       p.BookingID,
		Status:          string(domain.PaymentCaptured),
		AlreadyCaptured: !changed,
	}, nil
}

// Refund reverses a captured payment at the gateway and then flips the
// payment and its booking's payment state together. Used by the back
// office.
func (s *Service) Refund(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.Status.CanTransitionTo(domain.PaymentRefunded) {
		return nil, ErrNotRefundable
	}

	refund, err := s.gateway.Refund(ctx, p.GatewayPaymentID, Paise(p.Amount))
	if err != nil {
		return nil, err
	}

	updated, err := s.payments.MarkRefunded(ctx, p.ID, refund.ID, p.Amount)
	if err != nil {
		// The gateway refund went through but the rows did not flip.
		// Log loudly so reconciliation can pick it up.
		s.logger.WithFields(logrus.Fields{
			"payment_id": p.ID,
			"refund_id":  refund.ID,
		}).WithError(err).Error("refund succeeded at gateway but local update failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": p.ID,
		"booking_id": p.BookingID,
		"refund_id":  refund.ID,
		"amount":     p.Amount,
	}).Info("payment refunded")

	return updated, nil
}

func (s *Service) GetByBooking(ctx context.Context, bookingID, userID int64) (*domain.Payment, error) {
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

	p, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
