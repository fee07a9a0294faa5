package scopes

import "errors"

var (
	ErrInvalid    = errors.New("scopes: invalid permission")
	ErrNotAllowed = errors.New("scopes: permission not allowed")
)
