package payment

import "errors"

var (
	ErrNotFound         = errors.New("payment: not found")
	ErrForbidden        = errors.New("payment: forbidden")
	ErrAmountMismatch   = errors.New("payment: amount mismatch")
	ErrInvalidSignature = errors.New("payment: invalid signature")
	ErrBookingNotOpen   = errors.New("payment: booking is not payable")
	ErrNotRefundable    = errors.New("payment: not refundable")
	ErrGateway          = errors.New("payment: gateway request failed")
)
