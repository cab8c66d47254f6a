package admin

import (
	"time"

	"coworkspace/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminPayload `json:"admin"`
}

type AdminPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Stats is the dashboard counter block. Revenue sums bookings whose
// payment state is paid.
type Stats struct {
	Locations      int64   `json:"locations"`
	Spaces         int64   `json:"spaces"`
	Bookings       int64   `json:"bookings"`
	Revenue        float64 `json:"revenue"`
	RecentBookings int64   `json:"bookings_last_30_days"`
}

// BookingFilters narrow the admin booking list. Query is a case-insensitive
// substring match over payer email, payer name, space name and location
// name. Empty or "all" fields match everything.
type BookingFilters struct {
	Query        string
	Status       string
	PaymentState string
}

type BookingRow struct {
	ID             int64                `json:"id"`
	Status         domain.BookingStatus `json:"status"`
	PaymentState   domain.PaymentState  `json:"payment_status"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	DurationMonths int                  `json:"duration_months"`
	TotalAmount    float64              `json:"total_amount"`
	GatewayOrderID string               `json:"razorpay_order_id,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`

	UserEmail    string `json:"user_email"`
	UserFullName string `json:"user_full_name"`
	UserPhone    string `json:"user_phone,omitempty"`
	SpaceName    string `json:"space_name"`
	SpaceType    string `json:"space_type"`
	LocationName string `json:"location_name"`
	LocationCity string `json:"location_city"`
	// LocationActive distinguishes historical rows whose location has
	// since been deactivated.
	LocationActive bool `json:"location_active"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentFilters struct {
	Query  string
	Status string
}

type PaymentRow struct {
	ID               int64                `json:"id"`
	BookingID        int64                `json:"booking_id"`
	Amount           float64              `json:"amount"`
	Currency         string               `json:"currency"`
	Status           domain.PaymentStatus `json:"status"`
	GatewayOrderID   string               `json:"razorpay_order_id,omitempty"`
	GatewayPaymentID string               `json:"razorpay_payment_id,omitempty"`
	RefundID         string               `json:"refund_id,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`

	BookingStatus string `json:"booking_status"`
	UserEmail     string `json:"user_email"`
	UserFullName  string `json:"user_full_name"`
	SpaceName     string `json:"space_name"`
	LocationName  string `json:"location_name"`
	LocationCity  string `json:"location_city"`
}

// PaymentTotals aggregates the listed payments by lifecycle stage.
type PaymentTotals struct {
	Captured float64 `json:"captured"`
	Pending  float64 `json:"pending"`
	Refunded float64 `json:"refunded"`
}
