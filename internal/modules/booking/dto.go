package booking

import (
	"time"

	"coworkspace/internal/domain"
)

// CreateBookingRequest is the booking form payload. The date and start hour
// are combined into the booking start; the end is derived from the duration.
type CreateBookingRequest struct {
	SpaceID        int64  `json:"space_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartHour      int    `json:"start_hour"`
	DurationMonths int    `json:"duration_months" binding:"required"`
	Notes          string `json:"notes"`

	UserID int64 `json:"-"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingView is a booking joined with its space and location, shaped for
// the "my bookings" list.
type BookingView struct {
	ID             int64                `json:"id"`
	Status         domain.BookingStatus `json:"status"`
	PaymentState   domain.PaymentState  `json:"payment_status"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	DurationMonths int                  `json:"duration_months"`
	TotalAmount    float64              `json:"total_amount"`
	Notes          string               `json:"notes,omitempty"`
	GatewayOrderID string               `json:"razorpay_order_id,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`

	SpaceID      int64  `json:"space_id"`
	SpaceName    string `json:"space_name"`
	SpaceType    string `json:"space_type"`
	LocationName string `json:"location_name"`
	LocationCity string `json:"location_city"`
}
