package validator

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

// isEmail validates an address with the RFC 5322 parser plus the stricter
// checks expected for web forms: no display name and a dotted domain.
func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	localPart, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || localPart == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}

func emailRule(_ context.Context, in *Input) error {
	if s, ok := in.Value.(string); !ok || !isEmail(s) {
		return Violation("validation.email", nil)
	}
	return nil
}

// urlRule requires a scheme and host. Optional parameters restrict the scheme.
func urlRule(_ context.Context, in *Input) error {
	s, ok := in.Value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return Violation("validation.url", nil)
	}

	u, err := url.ParseRequestURI(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Violation("validation.url", nil)
	}

	if len(in.Params) > 0 {
		schemes := make([]string, 0, len(in.Params))
		for _, p := range listParams(in.Params) {
			if scheme, ok := p.(string); ok {
				schemes = append(schemes, scheme)
			}
		}
		if !slices.Contains(schemes, u.Scheme) {
			return Violation("validation.url_scheme", map[string]any{"schemes": schemes})
		}
	}
	return nil
}

// phoneRule validates a phone number with the libphonenumber metadata. The
// optional parameter is the default region for numbers without a "+" prefix.
func phoneRule(_ context.Context, in *Input) error {
	s, ok := in.Value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return Violation("validation.phone", nil)
	}

	region := "ZZ"
	if r, ok := in.Param(0).(string); ok && r != "" {
		region = strings.ToUpper(r)
	}

	num, err := phonenumbers.Parse(s, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return Violation("validation.phone", nil)
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// parseDate accepts time.Time values and strings in one of layouts.
func parseDate(v any, layouts []string) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// dateRule checks that the value is a date. An optional parameter sets the
// accepted layout; the default accepts RFC 3339, date-time and date-only.
func dateRule(_ context.Context, in *Input) error {
	layouts := dateLayouts
	if layout, ok := in.Param(0).(string); ok && layout != "" {
		layouts = []string{layout}
	}
	if _, ok := parseDate(in.Value, layouts); !ok {
		return Violation("validation.date", nil)
	}
	return nil
}

func dateAfterRule(_ context.Context, in *Input) error {
	bound, ok := parseDate(in.Param(0), dateLayouts)
	if !ok {
		return invalidDateParam("DateAfter", in.Param(0))
	}
	value, ok := parseDate(in.Value, dateLayouts)
	if !ok || !value.After(bound) {
		return Violation("validation.date_after", map[string]any{"after": bound.Format(time.DateOnly)})
	}
	return nil
}

func dateBeforeRule(_ context.Context, in *Input) error {
	bound, ok := parseDate(in.Param(0), dateLayouts)
	if !ok {
		return invalidDateParam("DateBefore", in.Param(0))
	}
	value, ok := parseDate(in.Value, dateLayouts)
	if !ok || !value.Before(bound) {
		return Violation("validation.date_before", map[string]any{"before": bound.Format(time.DateOnly)})
	}
	return nil
}

func invalidDateParam(rule string, p any) error {
	return fmt.Errorf("%w: %s expects a date parameter, got %v", ErrInvalidParams, rule, p)
}
