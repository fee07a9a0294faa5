package validator

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// Transform rules coerce the value seen by the rest of the chain and returned
// in the result. They fail only when a conversion is impossible.

func trimRule(_ context.Context, in *Input) error {
	if s, ok := in.Value.(string); ok {
		in.Value = strings.TrimSpace(s)
	}
	return nil
}

func toLowerRule(_ context.Context, in *Input) error {
	if s, ok := in.Value.(string); ok {
		in.Value = strings.ToLower(s)
	}
	return nil
}

func toUpperRule(_ context.Context, in *Input) error {
	if s, ok := in.Value.(string); ok {
		in.Value = strings.ToUpper(s)
	}
	return nil
}

func toIntRule(_ context.Context, in *Input) error {
	n, ok := toInt(in.Value)
	if !ok {
		return Violation("validation.coerce", map[string]any{"type": "integer"})
	}
	in.Value = n
	return nil
}

func toFloatRule(_ context.Context, in *Input) error {
	f, ok := toFloat(in.Value)
	if !ok || math.IsNaN(f) {
		return Violation("validation.coerce", map[string]any{"type": "number"})
	}
	in.Value = f
	return nil
}

func toBoolRule(_ context.Context, in *Input) error {
	switch v := in.Value.(type) {
	case bool:
		return nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Violation("validation.coerce", map[string]any{"type": "boolean"})
		}
		in.Value = b
		return nil
	}
	if f, ok := toFloat(in.Value); ok {
		in.Value = f != 0
		return nil
	}
	return Violation("validation.coerce", map[string]any{"type": "boolean"})
}
