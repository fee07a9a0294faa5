package validator

import "time"

// State is the terminal state of a single property's rule chain.
type State int

const (
	StatePending State = iota
	StateShortCircuitPass
	StatePass
	StateFail
)

func (s State) String() string {
	switch s {
	case StateShortCircuitPass:
		return "short_circuit_pass"
	case StatePass:
		return "pass"
	case StateFail:
		return "fail"
	default:
		return "pending"
	}
}

// Passed reports whether the chain ended successfully.
func (s State) Passed() bool {
	return s == StatePass || s == StateShortCircuitPass
}

// Result is the outcome of a validation call. It is created fresh per call.
//
// In single-value mode a failure carries exactly one Error. In object mode a
// failure carries every failing property in Errors.
type Result struct {
	Success bool `json:"success"`

	// Value is the (possibly coerced) value in single-value mode.
	Value any `json:"value,omitempty"`
	// Data is the (possibly coerced) object in object mode.
	Data map[string]any `json:"data,omitempty"`

	Error   *ValidationError `json:"error,omitempty"`
	Errors  ValidationErrors `json:"errors,omitempty"`
	Message string           `json:"message,omitempty"`

	// States holds the terminal state per property in object mode.
	States map[string]State `json:"-"`

	ValidatedAt time.Time     `json:"validatedAt,omitzero"`
	FailedAt    time.Time     `json:"failedAt,omitzero"`
	Duration    time.Duration `json:"duration"`
}

// Err returns the failures as an error, or nil on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	if len(r.Errors) > 0 {
		return r.Errors
	}
	if r.Error != nil {
		return ValidationErrors{*r.Error}
	}
	return ErrValidationFailed
}

// Details returns every failure regardless of mode.
func (r Result) Details() ValidationErrors {
	if len(r.Errors) > 0 {
		return r.Errors
	}
	if r.Error != nil {
		return ValidationErrors{*r.Error}
	}
	return nil
}
