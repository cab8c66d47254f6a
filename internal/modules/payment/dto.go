package payment

// CreateOrderRequest mirrors the checkout call that opens the hosted
// widget. Amount is in rupees and is cross-checked against the booking's
// stored total before any gateway call is made.
type CreateOrderRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`

	UserID int64 `json:"-"`
}

// CreateOrderResponse carries everything the hosted checkout widget needs.
// AmountPaise is the order amount in minor units.
type CreateOrderResponse struct {
	OrderID     string  `json:"order_id"`
	AmountPaise int64   `json:"amount"`
	Currency    string  `json:"currency"`
	KeyID       string  `json:"key_id"`
	BookingID   int64   `json:"booking_id"`
	AmountDue   float64 `json:"amount_due"`
}

// VerifyRequest is the widget success callback payload with the three
// gateway-supplied identifiers.
type VerifyRequest struct {
	BookingID         int64  `json:"booking_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`

	UserID int64 `json:"-"`
}

type VerifyResponse struct {
	PaymentID int64  `json:"payment_id"`
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
	// AlreadyCaptured reports that this callback was a repeat of one
	// already processed.
	AlreadyCaptured bool `json:"already_captured"`
}
