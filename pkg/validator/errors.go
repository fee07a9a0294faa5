package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidRule is returned when a rule is registered with an empty name or nil function.
	ErrInvalidRule = errors.New("rule must have a non-empty name and a non-nil function")

	// ErrUnknownRule is returned when a rule name cannot be resolved in the catalog.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrMalformedRef is returned when a rule reference has an unsupported shape.
	ErrMalformedRef = errors.New("malformed rule reference")

	// ErrInvalidParams is returned when a rule receives parameters it cannot use.
	ErrInvalidParams = errors.New("invalid rule parameters")

	// ErrRulePanicked is returned when a rule function panics.
	ErrRulePanicked = errors.New("rule panicked")

	// ErrUnknownSchema is returned when a schema document references a schema that was not declared.
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrInvalidSchema is returned when a schema document cannot be parsed.
	ErrInvalidSchema = errors.New("invalid schema definition")

	// ErrUnsupportedFormat is returned for schema documents in an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported schema format")
)
