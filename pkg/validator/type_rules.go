package validator

import (
	"context"
	"math"
	"reflect"
)

func isStringRule(_ context.Context, in *Input) error {
	if _, ok := in.Value.(string); !ok {
		return Violation("validation.is_string", nil)
	}
	return nil
}

func isNumberRule(_ context.Context, in *Input) error {
	if !isNumber(in.Value) {
		return Violation("validation.is_number", nil)
	}
	return nil
}

// isIntRule accepts integral floats, since decoded JSON numbers are float64.
func isIntRule(_ context.Context, in *Input) error {
	f, ok := toFloat(in.Value)
	if !isNumber(in.Value) || !ok || math.IsInf(f, 0) || f != math.Trunc(f) {
		return Violation("validation.is_int", nil)
	}
	return nil
}

func isBooleanRule(_ context.Context, in *Input) error {
	if _, ok := in.Value.(bool); !ok {
		return Violation("validation.is_boolean", nil)
	}
	return nil
}

func isArrayRule(_ context.Context, in *Input) error {
	if _, ok := toList(in.Value); !ok {
		return Violation("validation.is_array", nil)
	}
	return nil
}

// isObjectRule accepts maps with string keys and structs.
func isObjectRule(_ context.Context, in *Input) error {
	if IsNil(in.Value) {
		return Violation("validation.is_object", nil)
	}
	rv := reflect.Indirect(reflect.ValueOf(in.Value))
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		return nil
	case rv.Kind() == reflect.Struct:
		return nil
	}
	return Violation("validation.is_object", nil)
}
