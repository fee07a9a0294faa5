package validator

import (
	"context"
	"fmt"
	"reflect"
	"sort"
)

// Names of the rules the engine treats specially.
const (
	RuleEmpty          = "Empty"
	RuleNullable       = "Nullable"
	RuleOptional       = "Optional"
	RuleValidateNested = "ValidateNested"
)

// Ref is a normalised rule reference: a catalog name with parameters, or an
// inline function. When Func is set it is used as-is and Name is only a label.
type Ref struct {
	Name   string
	Params []any
	Func   RuleFunc
}

// R references a catalog rule by name.
func R(name string, params ...any) Ref {
	return Ref{Name: name, Params: params}
}

// Fn wraps an inline rule function. The name is used in error details.
func Fn(name string, fn RuleFunc) Ref {
	return Ref{Name: name, Func: fn}
}

// ValidateNested marks a property whose value, or each element of an array
// value, is validated against another schema.
func ValidateNested(schema *Schema) Ref {
	return Ref{Name: RuleValidateNested, Params: []any{schema}}
}

// Sentinel rules short-circuit the rest of the chain when they match.
func Empty() Ref    { return Ref{Name: RuleEmpty} }
func Nullable() Ref { return Ref{Name: RuleNullable} }
func Optional() Ref { return Ref{Name: RuleOptional} }

// String renders the reference the way it would be written in a schema file.
func (r Ref) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return fmt.Sprintf("%s%v", r.Name, r.Params)
}

// sentinelMatches reports whether the reference is a sentinel rule whose
// condition holds for value. Inline functions are never sentinels, whatever
// name they carry.
func (r Ref) sentinelMatches(value any) bool {
	if r.Func != nil {
		return false
	}
	switch r.Name {
	case RuleEmpty:
		s, ok := value.(string)
		return ok && s == ""
	case RuleNullable:
		return IsNil(value)
	case RuleOptional:
		return IsUndefined(value)
	}
	return false
}

// Normalize converts any supported rule reference shape into a Ref:
//   - string: a catalog rule name without parameters
//   - map[string][]any (or map[string]any): exactly one rule name mapped to its parameters
//   - RuleFunc or func(context.Context, *Input) error: an inline rule
//   - Ref or *Ref
//   - *Schema: shorthand for ValidateNested(schema)
func Normalize(ref any) (Ref, error) {
	switch r := ref.(type) {
	case Ref:
		return r, nil
	case *Ref:
		if r == nil {
			return Ref{}, fmt.Errorf("%w: nil reference", ErrMalformedRef)
		}
		return *r, nil
	case string:
		if r == "" {
			return Ref{}, fmt.Errorf("%w: empty rule name", ErrMalformedRef)
		}
		return Ref{Name: r}, nil
	case RuleFunc:
		if r == nil {
			return Ref{}, fmt.Errorf("%w: nil rule function", ErrMalformedRef)
		}
		return Ref{Name: "Custom", Func: r}, nil
	case func(context.Context, *Input) error:
		if r == nil {
			return Ref{}, fmt.Errorf("%w: nil rule function", ErrMalformedRef)
		}
		return Ref{Name: "Custom", Func: r}, nil
	case *Schema:
		if r == nil {
			return Ref{}, fmt.Errorf("%w: nil schema", ErrMalformedRef)
		}
		return ValidateNested(r), nil
	case map[string][]any:
		if len(r) != 1 {
			return Ref{}, fmt.Errorf("%w: expected exactly one rule name, got %d", ErrMalformedRef, len(r))
		}
		for name, params := range r {
			return Ref{Name: name, Params: params}, nil
		}
	case map[string]any:
		return normalizeMap(r)
	}

	return Ref{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedRef, ref)
}

func normalizeMap(m map[string]any) (Ref, error) {
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Ref{}, fmt.Errorf("%w: expected exactly one rule name, got %v", ErrMalformedRef, keys)
	}

	for name, raw := range m {
		if name == "" {
			return Ref{}, fmt.Errorf("%w: empty rule name", ErrMalformedRef)
		}
		if raw == nil {
			return Ref{Name: name}, nil
		}
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			// A single scalar parameter is accepted as a one-element list.
			return Ref{Name: name, Params: []any{raw}}, nil
		}
		params := make([]any, rv.Len())
		for i := range params {
			params[i] = rv.Index(i).Interface()
		}
		return Ref{Name: name, Params: params}, nil
	}

	return Ref{}, ErrMalformedRef
}
