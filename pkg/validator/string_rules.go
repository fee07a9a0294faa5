package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var (
	alphanumericRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex         = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)
)

// requiredRule fails for nil, Undefined, whitespace-only strings and empty
// collections.
func requiredRule(_ context.Context, in *Input) error {
	if IsNil(in.Value) {
		return Violation("validation.required", nil)
	}
	if s, ok := in.Value.(string); ok && strings.TrimSpace(s) == "" {
		return Violation("validation.required", nil)
	}
	if n, ok := size(in.Value); ok && n == 0 {
		return Violation("validation.required", nil)
	}
	return nil
}

// notEmptyRule fails only for the empty string; nil values are left to Required.
func notEmptyRule(_ context.Context, in *Input) error {
	if s, ok := in.Value.(string); ok && s == "" {
		return Violation("validation.not_empty", nil)
	}
	return nil
}

func minLengthRule(_ context.Context, in *Input) error {
	min, err := intParam(in, 0, "MinLength")
	if err != nil {
		return err
	}
	if n, ok := size(in.Value); !ok || n < min {
		return Violation("validation.min_length", map[string]any{"min": min})
	}
	return nil
}

func maxLengthRule(_ context.Context, in *Input) error {
	max, err := intParam(in, 0, "MaxLength")
	if err != nil {
		return err
	}
	if n, ok := size(in.Value); !ok || n > max {
		return Violation("validation.max_length", map[string]any{"max": max})
	}
	return nil
}

// lengthRule takes either an exact length or a [min, max] range.
func lengthRule(_ context.Context, in *Input) error {
	first, err := intParam(in, 0, "Length")
	if err != nil {
		return err
	}
	n, ok := size(in.Value)

	if len(in.Params) < 2 {
		if !ok || n != first {
			return Violation("validation.exact_length", map[string]any{"length": first})
		}
		return nil
	}

	max, err := intParam(in, 1, "Length")
	if err != nil {
		return err
	}
	if !ok || n < first || n > max {
		return Violation("validation.length_between", map[string]any{"min": first, "max": max})
	}
	return nil
}

var regexCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %v", ErrInvalidParams, pattern, err)
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// matchesRule checks a string against a regular expression. An optional second
// parameter describes the expected format in the message.
func matchesRule(_ context.Context, in *Input) error {
	pattern, err := stringParam(in, 0, "Matches")
	if err != nil {
		return err
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	s, ok := in.Value.(string)
	if !ok || !re.MatchString(s) {
		values := map[string]any{"pattern": pattern}
		if desc, ok := in.Param(1).(string); ok {
			values["description"] = desc
		}
		return Violation("validation.matches", values)
	}
	return nil
}

func patternRule(re *regexp.Regexp, key string) RuleFunc {
	return func(_ context.Context, in *Input) error {
		s, ok := in.Value.(string)
		if !ok || !re.MatchString(s) {
			return Violation(key, nil)
		}
		return nil
	}
}

func startsWithRule(_ context.Context, in *Input) error {
	prefix, err := stringParam(in, 0, "StartsWith")
	if err != nil {
		return err
	}
	if s, ok := in.Value.(string); !ok || !strings.HasPrefix(s, prefix) {
		return Violation("validation.starts_with", map[string]any{"prefix": prefix})
	}
	return nil
}

func endsWithRule(_ context.Context, in *Input) error {
	suffix, err := stringParam(in, 0, "EndsWith")
	if err != nil {
		return err
	}
	if s, ok := in.Value.(string); !ok || !strings.HasSuffix(s, suffix) {
		return Violation("validation.ends_with", map[string]any{"suffix": suffix})
	}
	return nil
}

func containsRule(_ context.Context, in *Input) error {
	sub, err := stringParam(in, 0, "Contains")
	if err != nil {
		return err
	}
	if s, ok := in.Value.(string); !ok || !strings.Contains(s, sub) {
		return Violation("validation.contains", map[string]any{"substring": sub})
	}
	return nil
}

// sameAsRule compares the value with another property of the object being
// validated, e.g. a password confirmation.
func sameAsRule(_ context.Context, in *Input) error {
	other, err := stringParam(in, 0, "SameAs")
	if err != nil {
		return err
	}
	otherValue, ok := in.Data[other]
	if !ok || !equalValues(in.Value, otherValue) {
		return Violation("validation.same_as", map[string]any{"other": other})
	}
	return nil
}
