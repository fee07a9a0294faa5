package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes a single failed rule with translation support.
// Path locates the failure inside nested objects and arrays, e.g. "items[1].name".
type ValidationError struct {
	Field              string         `json:"field,omitempty"`
	Property           string         `json:"property,omitempty"`
	TranslatedProperty string         `json:"translatedProperty,omitempty"`
	Path               string         `json:"path,omitempty"`
	Rule               string         `json:"rule"`
	Params             []any          `json:"params,omitempty"`
	Message            string         `json:"message"`
	TranslationKey     string         `json:"translationKey,omitempty"`
	TranslationValues  map[string]any `json:"translationValues,omitempty"`
}

// Location returns the most specific identifier of the failing value.
func (e ValidationError) Location() string {
	switch {
	case e.Path != "":
		return e.Path
	case e.Property != "":
		return e.Property
	default:
		return e.Field
	}
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Location(), err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Location() == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Location() == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Location() == field {
			errs = append(errs, err)
		}
	}
	return errs
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		loc := err.Location()
		if !seen[loc] {
			fields = append(fields, loc)
			seen[loc] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Is reports ErrValidationFailed so callers can use errors.Is without knowing the concrete type.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
