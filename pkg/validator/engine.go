package validator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/clientkit/pkg/i18n"
	"github.com/dmitrymomot/clientkit/pkg/logger"
)

// Validator executes rule chains against values and objects.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	catalog     *Catalog
	translator  Translator
	logger      *slog.Logger
	concurrency int
	humanize    bool
	now         func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithCatalog sets the rule catalog. Defaults to the process-wide catalog.
func WithCatalog(c *Catalog) Option {
	return func(v *Validator) {
		if c != nil {
			v.catalog = c
		}
	}
}

// WithTranslator sets the translator used to render error messages and
// property labels. Without one the built-in English messages are used.
func WithTranslator(tr Translator) Option {
	return func(v *Validator) {
		v.translator = tr
	}
}

// WithLogger provides a logger for diagnostics. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithConcurrency sets how many properties of one object may be validated at
// the same time. Values below 2 keep validation sequential.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithHumanizedLabels turns property names like "firstName" into "First name"
// in error messages when no explicit or translated label exists.
func WithHumanizedLabels(enabled bool) Option {
	return func(v *Validator) {
		v.humanize = enabled
	}
}

// WithClock overrides the time source used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithConfig applies environment-driven settings.
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		WithConcurrency(cfg.Concurrency)(v)
		v.humanize = cfg.HumanizeLabels
	}
}

// New creates a Validator. Without WithCatalog it uses the process-wide
// catalog, initialising the built-in rules if needed.
func New(opts ...Option) *Validator {
	v := &Validator{
		concurrency: 1,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.catalog == nil {
		v.catalog = Default()
	}
	return v
}

// Catalog returns the catalog used to resolve rule names.
func (v *Validator) Catalog() *Catalog {
	return v.catalog
}

// Request describes a single-value validation.
type Request struct {
	Value any

	// Rules accepts every shape Normalize understands.
	Rules                  []any
	Context                Context
	FieldName              string
	PropertyName           string
	TranslatedPropertyName string
}

// chain is one property's rule list plus everything needed to run it.
type chain struct {
	value      any
	refs       []any
	bag        Context
	data       map[string]any
	field      string
	property   string
	translated string
	path       string
}

// outcome is the terminal state of a chain.
type outcome struct {
	state  State
	value  any
	err    *ValidationError
	nested ValidationErrors
}

// Validate runs rules against a single value in declaration order. The first
// failing rule stops the chain; a matching sentinel stops it with success.
// Failures are always returned as data, never as panics or errors.
func (v *Validator) Validate(ctx context.Context, req Request) Result {
	start := v.now()

	out := v.run(ctx, chain{
		value:      req.Value,
		refs:       req.Rules,
		bag:        req.Context,
		field:      req.FieldName,
		property:   req.PropertyName,
		translated: req.TranslatedPropertyName,
		path:       firstNonEmpty(req.PropertyName, req.FieldName),
	})

	end := v.now()
	if out.state.Passed() {
		return Result{
			Success:     true,
			Value:       out.value,
			ValidatedAt: end,
			Duration:    end.Sub(start),
		}
	}

	return Result{
		Success:  false,
		Value:    req.Value,
		Error:    out.err,
		Errors:   out.nested,
		Message:  out.err.Message,
		FailedAt: end,
		Duration: end.Sub(start),
	}
}

func (v *Validator) run(ctx context.Context, c chain) outcome {
	value := c.value

	for _, raw := range c.refs {
		ref, err := Normalize(raw)
		if err != nil {
			v.logger.WarnContext(ctx, "malformed rule reference",
				logger.Component("validator"),
				logger.Property(c.path),
				logger.Error(err),
			)
			ref = malformedRef(err)
		}

		if ref.sentinelMatches(value) {
			return outcome{state: StateShortCircuitPass, value: value}
		}

		fn := ref.Func
		if fn == nil {
			fn, err = v.catalog.Get(ref.Name)
			if err != nil {
				v.logger.WarnContext(ctx, "unknown validation rule",
					logger.Component("validator"),
					logger.Rule(ref.Name),
					logger.Property(c.path),
				)
				verr := v.buildError(ctx, c, ref, Violation(KeyUnknownRule, map[string]any{"rule": ref.Name}))
				return outcome{state: StateFail, value: value, err: &verr}
			}
		}

		in := &Input{
			Value:      value,
			Params:     ref.Params,
			Context:    c.bag,
			Translator: v.translator,
			Data:       c.data,
			Field:      c.field,
			Property:   c.property,
			validator:  v,
			path:       c.path,
		}

		if err := v.invoke(ctx, fn, in); err != nil {
			verr := v.buildError(ctx, c, ref, err)
			v.logger.DebugContext(ctx, "validation rule failed",
				logger.Component("validator"),
				logger.Rule(ref.Name),
				logger.Property(verr.Location()),
				logger.Error(err),
			)

			var nested *NestedError
			if errors.As(err, &nested) {
				return outcome{state: StateFail, value: value, err: &verr, nested: nested.Errors}
			}
			return outcome{state: StateFail, value: value, err: &verr}
		}

		value = in.Value
	}

	return outcome{state: StatePass, value: value}
}

// invoke calls fn and converts panics into failures.
func (v *Validator) invoke(ctx context.Context, fn RuleFunc, in *Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.WarnContext(ctx, "validation rule panicked",
				logger.Component("validator"),
				logger.Property(in.path),
				slog.Any("panic", r),
			)
			err = fmt.Errorf("%w: %v", ErrRulePanicked, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, in)
}

// buildError turns a rule failure into error detail with a rendered message.
func (v *Validator) buildError(ctx context.Context, c chain, ref Ref, err error) ValidationError {
	label, translated := v.label(ctx, c)

	verr := ValidationError{
		Field:              c.field,
		Property:           c.property,
		TranslatedProperty: translated,
		Path:               c.path,
		Rule:               ref.Name,
		Params:             ref.Params,
	}

	var (
		nested  *NestedError
		ruleErr *RuleError
	)
	switch {
	case errors.As(err, &nested):
		verr.TranslationKey = KeyNested
		verr.TranslationValues = map[string]any{"field": label}
		verr.Message = render(ctx, v.translator, KeyNested, verr.TranslationValues)
	case errors.As(err, &ruleErr) && ruleErr.Key != "" && ruleErr.Message == "":
		values := maps.Clone(ruleErr.Values)
		if values == nil {
			values = make(map[string]any, 1)
		}
		if _, ok := values["field"]; !ok {
			values["field"] = label
		}
		verr.TranslationKey = ruleErr.Key
		verr.TranslationValues = values
		verr.Message = render(ctx, v.translator, ruleErr.Key, values)
	default:
		verr.Message = err.Error()
	}

	if verr.Message == "" {
		verr.TranslationKey = KeyInvalid
		verr.TranslationValues = map[string]any{"field": label}
		verr.Message = render(ctx, v.translator, KeyInvalid, verr.TranslationValues)
	}

	return verr
}

// label resolves the name used for the value in messages. The second return
// value is set only when the name differs from the raw property/field name.
func (v *Validator) label(ctx context.Context, c chain) (string, string) {
	if c.translated != "" {
		return c.translated, c.translated
	}

	name := firstNonEmpty(c.property, c.field)
	if name == "" {
		return "value", ""
	}

	if v.translator != nil {
		if msg, ok := v.translator.Translate(ctx, "validation.attributes."+name, nil); ok && msg != "" {
			return msg, msg
		}
	}

	if v.humanize {
		if h := i18n.Humanize(name); h != name {
			return h, h
		}
	}

	return name, ""
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}

var defaultValidator = sync.OnceValue(func() *Validator {
	return New()
})

// Validate runs a single-value validation with the default validator.
func Validate(ctx context.Context, req Request) Result {
	return defaultValidator().Validate(ctx, req)
}

// ValidateObject validates data against schema with the default validator.
func ValidateObject(ctx context.Context, schema *Schema, data map[string]any, opts ...CallOption) Result {
	return defaultValidator().ValidateObject(ctx, schema, data, opts...)
}

// ValidateStruct validates a struct (via its JSON form) with the default validator.
func ValidateStruct(ctx context.Context, schema *Schema, value any, opts ...CallOption) Result {
	return defaultValidator().ValidateStruct(ctx, schema, value, opts...)
}
