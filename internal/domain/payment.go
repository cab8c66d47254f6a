package domain

import "time"

type PaymentStatus string

const (
	PaymentCreated    PaymentStatus = "created"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentCreated:    {PaymentAuthorized, PaymentCaptured, PaymentFailed},
	PaymentAuthorized: {PaymentCaptured, PaymentFailed},
	PaymentCaptured:   {PaymentRefunded},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentCreated, PaymentAuthorized, PaymentCaptured, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), true
	}
	return "", false
}

// BookingPaymentState maps a payment status to the state mirrored onto the
// parent booking. Both rows are written in one transaction so they cannot
// diverge.
func (s PaymentStatus) BookingPaymentState() PaymentState {
	switch s {
	case PaymentCaptured:
		return PaymentStatePaid
	case PaymentFailed:
		return PaymentStateFailed
	case PaymentRefunded:
		return PaymentStateRefunded
	}
	return PaymentStatePending
}

// Payment is a gateway transaction record tied to a Booking. The gateway
// order/payment/signature ids are opaque identifiers persisted for
// reconciliation and display only.
type Payment struct {
	ID               int64         `json:"id"`
	BookingID        int64         `json:"booking_id" validate:"required"`
	Amount           float64       `json:"amount" validate:"required,gte=0"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	GatewayOrderID   string        `json:"razorpay_order_id,omitempty"`
	GatewayPaymentID string        `json:"razorpay_payment_id,omitempty"`
	GatewaySignature string        `json:"razorpay_signature,omitempty"`
	Receipt          string        `json:"receipt,omitempty"`
	RefundID         string        `json:"refund_id,omitempty"`
	RefundAmount     *float64      `json:"refund_amount,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Booking *Booking `json:"booking,omitempty"`
}
