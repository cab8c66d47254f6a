package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("admin: invalid credentials")
	ErrNotFound           = errors.New("admin: not found")
	ErrInvalidStatus      = errors.New("admin: unknown status value")
	ErrBadTransition      = errors.New("admin: status transition not allowed")
)
