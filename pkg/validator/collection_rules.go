package validator

import (
	"context"
	"slices"
)

func arrayMinSizeRule(_ context.Context, in *Input) error {
	min, err := intParam(in, 0, "ArrayMinSize")
	if err != nil {
		return err
	}
	list, ok := toList(in.Value)
	if !ok || len(list) < min {
		return Violation("validation.min_items", map[string]any{"min": min})
	}
	return nil
}

func arrayMaxSizeRule(_ context.Context, in *Input) error {
	max, err := intParam(in, 0, "ArrayMaxSize")
	if err != nil {
		return err
	}
	list, ok := toList(in.Value)
	if !ok || len(list) > max {
		return Violation("validation.max_items", map[string]any{"max": max})
	}
	return nil
}

func arrayNotEmptyRule(_ context.Context, in *Input) error {
	list, ok := toList(in.Value)
	if !ok || len(list) == 0 {
		return Violation("validation.array_not_empty", nil)
	}
	return nil
}

// arrayUniqueRule fails when any two elements are equal.
func arrayUniqueRule(_ context.Context, in *Input) error {
	list, ok := toList(in.Value)
	if !ok {
		return Violation("validation.is_array", nil)
	}
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			if equalValues(list[i], list[j]) {
				return Violation("validation.array_unique", nil)
			}
		}
	}
	return nil
}

// arrayContainsRule requires every parameter to be present in the array.
func arrayContainsRule(_ context.Context, in *Input) error {
	required := listParams(in.Params)
	list, ok := toList(in.Value)
	if !ok {
		return Violation("validation.array_contains", map[string]any{"values": required})
	}
	for _, want := range required {
		if !slices.ContainsFunc(list, func(have any) bool { return equalValues(have, want) }) {
			return Violation("validation.array_contains", map[string]any{"values": required})
		}
	}
	return nil
}
