package validator

import (
	"context"
)

// number returns the value as float64 when it is a Go number.
// Numeric strings are rejected; use ToFloat or ToInt first to coerce them.
func number(in *Input) (float64, bool) {
	if !isNumber(in.Value) {
		return 0, false
	}
	return toFloat(in.Value)
}

// minRule validates that a numeric value is greater than or equal to the minimum.
func minRule(_ context.Context, in *Input) error {
	min, err := floatParam(in, 0, "Min")
	if err != nil {
		return err
	}
	if n, ok := number(in); !ok || n < min {
		return Violation("validation.min", map[string]any{"min": in.Param(0)})
	}
	return nil
}

// maxRule validates that a numeric value is less than or equal to the maximum.
func maxRule(_ context.Context, in *Input) error {
	max, err := floatParam(in, 0, "Max")
	if err != nil {
		return err
	}
	if n, ok := number(in); !ok || n > max {
		return Violation("validation.max", map[string]any{"max": in.Param(0)})
	}
	return nil
}

func betweenRule(_ context.Context, in *Input) error {
	min, err := floatParam(in, 0, "Between")
	if err != nil {
		return err
	}
	max, err := floatParam(in, 1, "Between")
	if err != nil {
		return err
	}
	if n, ok := number(in); !ok || n < min || n > max {
		return Violation("validation.between", map[string]any{"min": in.Param(0), "max": in.Param(1)})
	}
	return nil
}

func greaterThanRule(_ context.Context, in *Input) error {
	min, err := floatParam(in, 0, "GreaterThan")
	if err != nil {
		return err
	}
	if n, ok := number(in); !ok || n <= min {
		return Violation("validation.greater_than", map[string]any{"min": in.Param(0)})
	}
	return nil
}

func lessThanRule(_ context.Context, in *Input) error {
	max, err := floatParam(in, 0, "LessThan")
	if err != nil {
		return err
	}
	if n, ok := number(in); !ok || n >= max {
		return Violation("validation.less_than", map[string]any{"max": in.Param(0)})
	}
	return nil
}

func positiveRule(_ context.Context, in *Input) error {
	if n, ok := number(in); !ok || n <= 0 {
		return Violation("validation.positive", nil)
	}
	return nil
}

func negativeRule(_ context.Context, in *Input) error {
	if n, ok := number(in); !ok || n >= 0 {
		return Violation("validation.negative", nil)
	}
	return nil
}
