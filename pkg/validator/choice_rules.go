package validator

import (
	"context"
	"slices"
)

func inRule(_ context.Context, in *Input) error {
	allowed := listParams(in.Params)
	if !slices.ContainsFunc(allowed, func(a any) bool { return equalValues(in.Value, a) }) {
		return Violation("validation.in", map[string]any{"values": allowed})
	}
	return nil
}

func notInRule(_ context.Context, in *Input) error {
	forbidden := listParams(in.Params)
	if slices.ContainsFunc(forbidden, func(f any) bool { return equalValues(in.Value, f) }) {
		return Violation("validation.not_in", map[string]any{"values": forbidden})
	}
	return nil
}
