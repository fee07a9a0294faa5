package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/clientkit/pkg/logger"
)

// Translator resolves translation keys for a language. Keys use dot notation
// into nested maps ("validation.required"). Templates use %{name} placeholders.
//
// Lookups try the requested language, then the closest supported language
// ("de-AT" -> "de"), then the default language.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]any
	languages    []string

	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
	adapter       TranslationAdapter
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		adapter:       adapter,
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the translations with a fresh load from the adapter.
// On error the previous translations stay in place.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	for lang, tr := range translations {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if tr == nil {
			return fmt.Errorf("%w: nil translations for %q", ErrInvalidStructure, lang)
		}
	}

	languages := make([]string, 0, len(translations))
	for lang := range translations {
		languages = append(languages, lang)
	}
	slices.Sort(languages)

	t.mu.Lock()
	t.translations = translations
	t.languages = languages
	t.mu.Unlock()

	if len(languages) == 0 {
		t.logger.WarnContext(ctx, "no translations loaded", logger.Component("i18n"))
	} else {
		t.logger.InfoContext(ctx, "translations loaded",
			logger.Component("i18n"),
			slog.Any("languages", languages),
		)
	}
	return nil
}

// SupportedLanguages returns the loaded language tags in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.languages)
}

// DefaultLanguage returns the language used when a key is missing elsewhere.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// ResolveLanguage returns the loaded language used for lang, or "" if none matches.
func (t *Translator) ResolveLanguage(lang string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolve(lang)
}

func (t *Translator) resolve(lang string) string {
	if _, ok := t.translations[lang]; ok {
		return lang
	}
	return MatchLanguage(lang, t.languages, "")
}

// HasTranslation reports whether key exists for lang, without fallbacks.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tr, ok := t.translations[t.resolve(lang)]
	if !ok {
		return false
	}
	_, ok = lookupKey(tr, key)
	return ok
}

// lookupOrder returns the loaded languages tried for lang: its best match,
// then the default language.
func (t *Translator) lookupOrder(lang string) []string {
	order := make([]string, 0, 2)
	if l := t.resolve(lang); l != "" {
		order = append(order, l)
	}
	if def := t.resolve(t.defaultLang); def != "" && (len(order) == 0 || order[0] != def) {
		order = append(order, def)
	}
	return order
}

// findString returns the string stored at key, trying lang and then the
// default language.
func (t *Translator) findString(lang, key string) (string, bool) {
	for _, l := range t.lookupOrder(lang) {
		if s, ok := stringAt(t.translations[l], key); ok {
			return s, true
		}
	}
	return "", false
}

// findPlural picks the plural form of key for n. All forms of one language
// are tried before falling back to the next one.
func (t *Translator) findPlural(lang, key string, n int) (string, bool) {
	for _, l := range t.lookupOrder(lang) {
		for _, category := range pluralCandidates(l, n) {
			if s, ok := stringAt(t.translations[l], key+"."+category); ok {
				return s, true
			}
		}
		if s, ok := stringAt(t.translations[l], key); ok {
			return s, true
		}
	}
	return "", false
}

func stringAt(tr map[string]any, key string) (string, bool) {
	val, ok := lookupKey(tr, key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

func (t *Translator) missing(lang, key string, extra ...any) {
	if !t.logMissing {
		return
	}
	attrs := append([]any{logger.Component("i18n"), logger.Locale(lang), slog.String("key", key)}, extra...)
	t.logger.Warn("translation not found", attrs...)
}

// T translates key for lang. args are name/value pairs for %{name}
// placeholders; an odd trailing argument is ignored.
//
//	tr.T("en", "greeting", "name", "Ada") // "Hello, Ada!"
//
// Missing keys return the key itself, or "" with WithFallbackToKey(false).
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	tmpl, ok := t.findString(lang, key)
	t.mu.RUnlock()

	if !ok {
		t.missing(lang, key)
		if t.fallbackToKey {
			return interpolate(key, pairs(args))
		}
		return ""
	}
	return interpolate(tmpl, pairs(args))
}

// Td is T with an explicit default template instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	tmpl, ok := t.findString(lang, key)
	t.mu.RUnlock()

	if !ok {
		t.missing(lang, key)
		tmpl = defaultValue
	}
	return interpolate(tmpl, pairs(args))
}

// N translates a pluralised key. The form is chosen with the CLDR rule of the
// language: key.one, key.few, key.many, key.other and so on, with key.zero
// tried first for n == 0. %{count} is set to n unless args provide it.
//
//	// items: {zero: "No items", one: "%{count} item", other: "%{count} items"}
//	tr.N("en", "items", 5) // "5 items"
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	tmpl, ok := t.findPlural(lang, key, n)
	t.mu.RUnlock()

	params := pairs(args)
	if _, set := params["count"]; !set {
		params["count"] = strconv.Itoa(n)
	}

	if !ok {
		t.missing(lang, key, slog.Int("n", n))
		if t.fallbackToKey {
			return interpolate(key, params)
		}
		return ""
	}
	return interpolate(tmpl, params)
}

// Tc is T with the language taken from ctx (see SetLocale).
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc is N with the language taken from ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// Translate renders key in the locale carried by ctx with named values of
// any type; slices are joined with ", ". When values has an integer "count"
// and key holds plural forms, the matching form is used. ok is false when no
// translation exists, so callers can supply their own fallback. This is the
// method validators use to localise their messages.
func (t *Translator) Translate(ctx context.Context, key string, values map[string]any) (string, bool) {
	lang := GetLocale(ctx)

	t.mu.RLock()
	var (
		tmpl string
		ok   bool
	)
	if n, isCount := countOf(values); isCount {
		tmpl, ok = t.findPlural(lang, key, n)
	} else {
		tmpl, ok = t.findString(lang, key)
	}
	t.mu.RUnlock()

	if !ok {
		t.missing(lang, key)
		return "", false
	}

	params := make(map[string]string, len(values))
	for k, v := range values {
		params[k] = formatArg(v)
	}
	return interpolate(tmpl, params), true
}

// ExportJSON returns all translations of a language as JSON, e.g. for
// client-side rendering.
func (t *Translator) ExportJSON(lang string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tr, ok := t.translations[t.resolve(lang)]
	if !ok {
		return "", &ErrLanguageNotSupported{Lang: lang}
	}
	raw, err := json.Marshal(tr)
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(raw), nil
}

// Duration renders d as "N days", "N hours" or "N minutes" using the
// datetime.days, datetime.hours and datetime.minutes plural keys. Durations
// under a minute count as zero minutes (datetime.minutes.zero). Without
// translations it returns d.String().
func (t *Translator) Duration(lang string, d time.Duration) string {
	key, n := durationUnit(d)
	return t.durationText(lang, key, n, d.String())
}

// TimeSince is Duration for the time elapsed since tm, using the plural keys
// under datetime.days.ago, datetime.hours.ago and datetime.minutes.ago.
func (t *Translator) TimeSince(lang string, tm time.Time) string {
	d := time.Since(tm)
	key, n := durationUnit(d)
	return t.durationText(lang, key+".ago", n, fmt.Sprintf("%v ago", d.Round(time.Second)))
}

func (t *Translator) durationText(lang, key string, n int, fallback string) string {
	t.mu.RLock()
	tmpl, ok := t.findPlural(lang, key, n)
	t.mu.RUnlock()

	if !ok {
		return fallback
	}
	return interpolate(tmpl, map[string]string{"count": strconv.Itoa(n)})
}

// durationUnit picks the largest unit of d, rounding half units up.
// Durations under a minute report ("datetime.minutes", 0).
func durationUnit(d time.Duration) (string, int) {
	if d < 0 {
		d = -d
	}
	minutes := int((d + 30*time.Second) / time.Minute)
	hours := int((d + 30*time.Minute) / time.Hour)
	days := int((d + 12*time.Hour) / (24 * time.Hour))

	switch {
	case d >= 24*time.Hour || hours >= 24:
		return "datetime.days", days
	case d >= time.Hour || minutes >= 60:
		return "datetime.hours", hours
	case d >= time.Minute:
		return "datetime.minutes", minutes
	default:
		return "datetime.minutes", 0
	}
}

// lookupKey walks a nested map with a dot-separated key.
func lookupKey(m map[string]any, key string) (any, bool) {
	current := m
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		switch next := val.(type) {
		case map[string]any:
			current = next
		case map[any]any:
			current = make(map[string]any, len(next))
			for k, v := range next {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// interpolate substitutes %{name} placeholders; unknown ones are kept.
func interpolate(tmpl string, params map[string]string) string {
	if !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// pairs turns name, value, name, value... into a map.
func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2+1)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

func formatArg(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatArg(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func countOf(values map[string]any) (int, bool) {
	switch n := values["count"].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
