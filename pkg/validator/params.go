package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// toFloat converts any Go number, json.Number or numeric string to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// isNumber reports whether v is a Go number (strings do not count).
func isNumber(v any) bool {
	if _, ok := v.(string); ok {
		return false
	}
	f, ok := toFloat(v)
	return ok && !math.IsNaN(f)
}

// toInt converts v to int when it holds an integral number within the int
// range.
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return intFromFloat(f)
}

// intFromFloat rejects NaN, infinities, fractions and values outside the int
// range. -MinInt is a power of two and exact as a float64, unlike MaxInt.
func intFromFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// size measures strings in runes and slices, arrays and maps in elements.
func size(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	if IsNil(v) {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// toList returns the elements of a slice or array value.
func toList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	if IsNil(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// intParam reads the i-th parameter as an int.
func intParam(in *Input, i int, rule string) (int, error) {
	n, ok := toInt(in.Param(i))
	if !ok {
		return 0, fmt.Errorf("%w: %s expects an integer parameter at position %d, got %v", ErrInvalidParams, rule, i, in.Param(i))
	}
	return n, nil
}

// floatParam reads the i-th parameter as a float64.
func floatParam(in *Input, i int, rule string) (float64, error) {
	f, ok := toFloat(in.Param(i))
	if !ok {
		return 0, fmt.Errorf("%w: %s expects a numeric parameter at position %d, got %v", ErrInvalidParams, rule, i, in.Param(i))
	}
	return f, nil
}

// stringParam reads the i-th parameter as a string.
func stringParam(in *Input, i int, rule string) (string, error) {
	s, ok := in.Param(i).(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string parameter at position %d, got %v", ErrInvalidParams, rule, i, in.Param(i))
	}
	return s, nil
}

// listParams flattens parameters so that both In("a", "b") and In(["a", "b"]) work.
func listParams(params []any) []any {
	if len(params) == 1 {
		if list, ok := toList(params[0]); ok {
			return list
		}
	}
	return params
}

// equalValues compares two values, treating numbers of different types as equal
// when their numeric values match.
func equalValues(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}
