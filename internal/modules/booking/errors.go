package booking

import "errors"

var (
	ErrValidation     = errors.New("booking: validation failed")
	ErrBadDuration    = errors.New("booking: unsupported duration")
	ErrNotAvailable   = errors.New("booking: space not available")
	ErrOverbooking    = errors.New("booking: overlapping booking exists")
	ErrSpaceInactive  = errors.New("booking: space is not bookable")
	ErrNotFound       = errors.New("booking: not found")
	ErrForbidden      = errors.New("booking: forbidden")
	ErrNotCancellable = errors.New("booking: cannot be cancelled")
)
