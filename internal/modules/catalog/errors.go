package catalog

import "errors"

var (
	ErrInvalidSpaceType = errors.New("invalid space type")
	ErrLocationInactive = errors.New("location is not active")
)
