package validator

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Translator renders a translation key with named values in the locale carried
// by ctx. ok is false when the key has no translation, in which case the
// built-in English message is used. *i18n.Translator satisfies this interface.
type Translator interface {
	Translate(ctx context.Context, key string, values map[string]any) (string, bool)
}

// TranslatorFunc adapts a plain function to the Translator interface.
type TranslatorFunc func(ctx context.Context, key string, values map[string]any) (string, bool)

func (f TranslatorFunc) Translate(ctx context.Context, key string, values map[string]any) (string, bool) {
	return f(ctx, key, values)
}

// Translation keys used by the built-in rules.
const (
	KeyInvalid     = "validation.invalid"
	KeyUnknownRule = "validation.unknown_rule"
	KeyMalformed   = "validation.malformed_rule"
	KeyNested      = "validation.nested"
	KeyNotObject   = "validation.not_object"
)

// defaultMessages are the English fallbacks for every built-in translation key.
var defaultMessages = map[string]string{
	KeyInvalid:     "%{field} is invalid",
	KeyUnknownRule: "unknown validation rule: %{rule}",
	KeyMalformed:   "malformed validation rule: %{error}",
	KeyNested:      "%{field} contains invalid values",
	KeyNotObject:   "%{field} must be an object",

	"validation.required":       "%{field} is required",
	"validation.not_empty":      "%{field} must not be empty",
	"validation.min_length":     "%{field} must be at least %{min} characters long",
	"validation.max_length":     "%{field} must be at most %{max} characters long",
	"validation.exact_length":   "%{field} must be exactly %{length} characters long",
	"validation.length_between": "%{field} must be between %{min} and %{max} characters long",
	"validation.email":          "%{field} must be a valid email address",
	"validation.url":            "%{field} must be a valid URL",
	"validation.url_scheme":     "%{field} must be a valid URL with scheme: %{schemes}",
	"validation.matches":        "%{field} has an invalid format",
	"validation.alpha":          "%{field} must contain only letters",
	"validation.alphanumeric":   "%{field} must contain only letters and numbers",
	"validation.numeric_string": "%{field} must contain only digits",
	"validation.uuid":           "%{field} must be a valid UUID",
	"validation.uuid_version":   "%{field} must be a valid UUID version %{version}",
	"validation.phone":          "%{field} must be a valid phone number",
	"validation.date":           "%{field} must be a valid date",
	"validation.date_after":     "%{field} must be after %{after}",
	"validation.date_before":    "%{field} must be before %{before}",
	"validation.starts_with":    "%{field} must start with %{prefix}",
	"validation.ends_with":      "%{field} must end with %{suffix}",
	"validation.contains":       "%{field} must contain %{substring}",
	"validation.in":             "%{field} must be one of: %{values}",
	"validation.not_in":         "%{field} must not be one of: %{values}",
	"validation.same_as":        "%{field} must match %{other}",

	"validation.is_string":  "%{field} must be a string",
	"validation.is_number":  "%{field} must be a number",
	"validation.is_int":     "%{field} must be an integer",
	"validation.is_boolean": "%{field} must be a boolean",
	"validation.is_array":   "%{field} must be an array",
	"validation.is_object":  "%{field} must be an object",

	"validation.min":          "%{field} must be at least %{min}",
	"validation.max":          "%{field} must be at most %{max}",
	"validation.between":      "%{field} must be between %{min} and %{max}",
	"validation.positive":     "%{field} must be a positive number",
	"validation.negative":     "%{field} must be a negative number",
	"validation.equals":       "%{field} must be equal to %{expected}",
	"validation.not_equals":   "%{field} must not be equal to %{expected}",
	"validation.greater_than": "%{field} must be greater than %{min}",
	"validation.less_than":    "%{field} must be less than %{max}",

	"validation.min_items":       "%{field} must have at least %{min} items",
	"validation.max_items":       "%{field} must have at most %{max} items",
	"validation.array_not_empty": "%{field} must not be empty",
	"validation.array_unique":    "%{field} must contain unique items",
	"validation.array_contains":  "%{field} must contain %{values}",

	"validation.password_strength": "%{field} must be at least %{min} characters long and mix upper and lower case letters, digits and symbols",
	"validation.password_common":   "%{field} is too common",

	"validation.coerce": "%{field} cannot be converted to %{type}",
}

// DefaultMessages returns a copy of the built-in English messages keyed by
// translation key. Useful for seeding translation files.
func DefaultMessages() map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for k, v := range defaultMessages {
		out[k] = v
	}
	return out
}

var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// interpolate substitutes %{name} placeholders. Unknown placeholders are kept.
func interpolate(tmpl string, values map[string]any) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := values[name]; ok {
			return formatValue(val)
		}
		return match
	})
}

// formatValue renders a message value; slices are comma-joined.
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

// render produces the message for key in the caller's locale, falling back to
// the English default and finally to the key itself.
func render(ctx context.Context, tr Translator, key string, values map[string]any) string {
	if tr != nil {
		if msg, ok := tr.Translate(ctx, key, values); ok && msg != "" {
			return msg
		}
	}
	if tmpl, ok := defaultMessages[key]; ok {
		return interpolate(tmpl, values)
	}
	return interpolate(key, values)
}
