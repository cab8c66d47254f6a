package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// PaymentState is the booking-side mirror of the associated payment.
type PaymentState string

const (
	PaymentStatePending  PaymentState = "pending"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateFailed   PaymentState = "failed"
	PaymentStateRefunded PaymentState = "refunded"
)

// bookingTransitions lists the allowed predecessor -> successor pairs.
// Anything not listed (completed -> pending included) is rejected.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking is the central transactional record: a user's reservation of a
// Space for a period, carrying its own status and payment state.
type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id" validate:"required"`
	SpaceID        int64         `json:"space_id" validate:"required"`
	StartTime      time.Time     `json:"start_time" validate:"required"`
	EndTime        time.Time     `json:"end_time" validate:"required"`
	DurationMonths int           `json:"duration_months"`
	TotalAmount    float64       `json:"total_amount" validate:"gte=0"`
	Status         BookingStatus `json:"status"`
	PaymentState   PaymentState  `json:"payment_status"`
	GatewayOrderID string        `json:"razorpay_order_id,omitempty"`
	GatewayPayID   string        `json:"razorpay_payment_id,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`

	User  *Profile `json:"user,omitempty"`
	Space *Space   `json:"space,omitempty"`
}
