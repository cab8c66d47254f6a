package payment

import (
	"context"

	"coworkspace/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	MarkCaptured(ctx context.Context, paymentID int64, gatewayPaymentID, signature string) (bool, error)
	MarkRefunded(ctx context.Context, paymentID int64, refundID string, amount float64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetGatewayOrder(ctx context.Context, id int64, orderID string) error
}

// Gateway is the Razorpay surface the service depends on. Tests swap in a
// fake; production uses the HTTP client in gateway.go.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (*Order, error)
	Refund(ctx context.Context, gatewayPaymentID string, amountPaise int64) (*Refund, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}
