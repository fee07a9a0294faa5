package mask

import "errors"

var (
	ErrUnknownRegion = errors.New("mask: unknown region")
	ErrInvalidPhone  = errors.New("mask: invalid phone number")
)
