package validator

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Common weak passwords - curated list of frequently compromised passwords
var commonPasswords = map[string]bool{
	"password":    true,
	"123456":      true,
	"password123": true,
	"admin":       true,
	"qwerty":      true,
	"abc123":      true,
	"letmein":     true,
	"welcome":     true,
	"monkey":      true,
	"1234567890":  true,
	"dragon":      true,
	"sunshine":    true,
	"iloveyou":    true,
	"princess":    true,
	"football":    true,
	"password1":   true,
	"qwerty123":   true,
	"12345678":    true,
	"123456789":   true,
	"111111":      true,
	"000000":      true,
	"qwertyuiop":  true,
	"admin123":    true,
	"trustno1":    true,
	"1q2w3e4r":    true,
	"1qaz2wsx":    true,
	"zaq12wsx":    true,
	"abcd1234":    true,
}

// passwordClasses counts the character classes present in s:
// uppercase, lowercase, digits and everything else.
func passwordClasses(s string) int {
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			special = true
		}
	}

	classes := 0
	for _, ok := range []bool{upper, lower, digit, special} {
		if ok {
			classes++
		}
	}
	return classes
}

// strongPasswordRule follows the NIST-style policy: minimum length (default 8,
// overridable by the first parameter), at least three character classes, and
// not a known common password.
func strongPasswordRule(_ context.Context, in *Input) error {
	minLen := 8
	if len(in.Params) > 0 {
		n, err := intParam(in, 0, "StrongPassword")
		if err != nil {
			return err
		}
		minLen = n
	}

	s, ok := in.Value.(string)
	if !ok || utf8.RuneCountInString(s) < minLen || passwordClasses(s) < 3 || commonPasswords[strings.ToLower(s)] {
		return Violation("validation.password_strength", map[string]any{"min": minLen})
	}
	return nil
}

func notCommonPasswordRule(_ context.Context, in *Input) error {
	s, ok := in.Value.(string)
	if !ok || commonPasswords[strings.ToLower(s)] {
		return Violation("validation.password_common", nil)
	}
	return nil
}
