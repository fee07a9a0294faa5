package validator

import (
	"context"
	"fmt"
	"reflect"
)

// RuleFunc is the contract every rule obeys. A nil return means the value passed;
// any non-nil error is a failure whose message is reported to the caller.
// Rules may replace in.Value to coerce the value seen by later rules and returned
// in the result.
type RuleFunc func(ctx context.Context, in *Input) error

// Context is an opaque key-value bag passed unchanged to every rule invocation,
// including nested validations. Rules must treat it as read-only.
type Context map[string]any

// Input carries everything a rule may inspect.
type Input struct {
	Value      any
	Params     []any
	Context    Context
	Translator Translator
	// Data is the object being validated in object mode, nil otherwise.
	Data     map[string]any
	Field    string
	Property string

	validator *Validator
	path      string
}

// Param returns the i-th parameter or nil when it is absent.
func (in *Input) Param(i int) any {
	if i < 0 || i >= len(in.Params) {
		return nil
	}
	return in.Params[i]
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that is absent, as opposed to explicitly nil.
// Object validation passes it for properties missing from the input data.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNil reports whether v is nil, a typed nil pointer, map, slice, or Undefined.
func IsNil(v any) bool {
	if v == nil || IsUndefined(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// RuleError is a rule failure that carries a translation key and values, so the
// engine can render the message in the caller's locale.
type RuleError struct {
	Key     string
	Values  map[string]any
	Message string
}

func (e *RuleError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if tmpl, ok := defaultMessages[e.Key]; ok {
		return interpolate(tmpl, e.Values)
	}
	return e.Key
}

// Fail returns a failure with a literal message. An empty message falls back
// to the generic "invalid value" message.
func Fail(message string) error {
	return &RuleError{Message: message}
}

// Failf is Fail with fmt.Sprintf formatting.
func Failf(format string, args ...any) error {
	return &RuleError{Message: fmt.Sprintf(format, args...)}
}

// Violation returns a translatable failure. The engine adds the "field" value.
func Violation(key string, values map[string]any) error {
	return &RuleError{Key: key, Values: values}
}

// Async runs fn on its own goroutine and waits for it or for ctx to finish,
// whichever comes first. Panics on the goroutine are converted into failures.
func Async(fn RuleFunc) RuleFunc {
	return func(ctx context.Context, in *Input) error {
		type outcome struct {
			value any
			err   error
		}

		local := *in
		done := make(chan outcome, 1)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					done <- outcome{err: fmt.Errorf("%w: %v", ErrRulePanicked, r)}
				}
			}()
			err := fn(ctx, &local)
			done <- outcome{value: local.Value, err: err}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out := <-done:
			if out.err == nil {
				in.Value = out.value
			}
			return out.err
		}
	}
}
