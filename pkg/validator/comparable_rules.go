package validator

import "context"

// equalsRule compares the value with the single parameter. Numbers of
// different Go types compare by numeric value.
func equalsRule(_ context.Context, in *Input) error {
	if len(in.Params) == 0 || !equalValues(in.Value, in.Params[0]) {
		return Violation("validation.equals", map[string]any{"expected": in.Param(0)})
	}
	return nil
}

func notEqualsRule(_ context.Context, in *Input) error {
	if len(in.Params) > 0 && equalValues(in.Value, in.Params[0]) {
		return Violation("validation.not_equals", map[string]any{"expected": in.Param(0)})
	}
	return nil
}
