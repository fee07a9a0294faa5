package validator_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientkit/pkg/validator"
)

// spy counts its invocations and always passes.
type spy struct {
	calls atomic.Int32
}

func (s *spy) rule(context.Context, *validator.Input) error {
	s.calls.Add(1)
	return nil
}

func newValidator(t *testing.T, opts ...validator.Option) *validator.Validator {
	t.Helper()
	opts = append([]validator.Option{
		validator.WithCatalog(validator.NewCatalog(validator.WithBuiltins())),
	}, opts...)
	return validator.New(opts...)
}

func TestValidate_EmptyChainSucceeds(t *testing.T) {
	v := newValidator(t)

	res := v.Validate(context.Background(), validator.Request{Value: "anything"})

	assert.True(t, res.Success)
	assert.Equal(t, "anything", res.Value)
	assert.Nil(t, res.Error)
	assert.False(t, res.ValidatedAt.IsZero())
	assert.True(t, res.FailedAt.IsZero())
}

func TestValidate_RequiredHello(t *testing.T) {
	v := newValidator(t)

	res := v.Validate(context.Background(), validator.Request{
		Value: "hello",
		Rules: []any{"Required"},
	})

	require.True(t, res.Success)
	assert.Equal(t, "hello", res.Value)
}

func TestValidate_Sentinels(t *testing.T) {
	t.Run("nullable short-circuits on nil", func(t *testing.T) {
		s := &spy{}
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value: nil,
			Rules: []any{validator.Nullable(), validator.Fn("Spy", s.rule)},
		})

		assert.True(t, res.Success)
		assert.Zero(t, s.calls.Load(), "rules after a matching sentinel must not run")
	})

	t.Run("nullable does not match empty string", func(t *testing.T) {
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value: "",
			Rules: []any{"Nullable", "Required"},
		})

		require.False(t, res.Success)
		assert.Equal(t, "Required", res.Error.Rule)
	})

	t.Run("inline function named like a sentinel still runs", func(t *testing.T) {
		s := &spy{}
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value: validator.Undefined,
			Rules: []any{validator.Fn("Optional", s.rule)},
		})

		assert.True(t, res.Success)
		assert.EqualValues(t, 1, s.calls.Load())
	})

	t.Run("empty short-circuits on empty string only", func(t *testing.T) {
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value: "",
			Rules: []any{"Empty", "Email"},
		})
		assert.True(t, res.Success)

		res = v.Validate(context.Background(), validator.Request{
			Value: nil,
			Rules: []any{"Empty", "Required"},
		})
		assert.False(t, res.Success)
	})

	t.Run("optional matches undefined but not nil", func(t *testing.T) {
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value: validator.Undefined,
			Rules: []any{"Optional", "Required"},
		})
		assert.True(t, res.Success)

		res = v.Validate(context.Background(), validator.Request{
			Value: nil,
			Rules: []any{"Optional", "Required"},
		})
		assert.False(t, res.Success)
	})

	t.Run("sentinel only acts at its position", func(t *testing.T) {
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value: nil,
			Rules: []any{"Required", "Nullable"},
		})
		assert.False(t, res.Success)
	})
}

func TestValidate_FirstFailureWins(t *testing.T) {
	before, after := &spy{}, &spy{}
	v := newValidator(t)

	res := v.Validate(context.Background(), validator.Request{
		Value: "ab",
		Rules: []any{
			validator.Fn("Before", before.rule),
			validator.R("MinLength", 3),
			validator.Fn("After", after.rule),
		},
	})

	require.False(t, res.Success)
	assert.Equal(t, int32(1), before.calls.Load())
	assert.Zero(t, after.calls.Load())
	assert.Equal(t, "MinLength", res.Error.Rule)
	assert.Equal(t, []any{3}, res.Error.Params)
	assert.Equal(t, "validation.min_length", res.Error.TranslationKey)
	assert.Equal(t, "value must be at least 3 characters long", res.Message)
	assert.Equal(t, "ab", res.Value)
	assert.False(t, res.FailedAt.IsZero())
}

func TestValidate_LengthBoundaries(t *testing.T) {
	v := newValidator(t)
	rules := []any{validator.R("MinLength", 3), validator.R("MaxLength", 5)}

	tests := []struct {
		value string
		ok    bool
	}{
		{"ab", false},
		{"abc", true},
		{"abcde", true},
		{"abcdef", false},
		{"héllo", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res := v.Validate(context.Background(), validator.Request{Value: tt.value, Rules: rules})
			assert.Equal(t, tt.ok, res.Success)
		})
	}
}

func TestValidate_InlineRuleMessages(t *testing.T) {
	v := newValidator(t)

	t.Run("literal message", func(t *testing.T) {
		res := v.Validate(context.Background(), validator.Request{
			Value: 3,
			Rules: []any{func(_ context.Context, in *validator.Input) error {
				if in.Value.(int)%2 != 0 {
					return validator.Fail("must be even")
				}
				return nil
			}},
		})

		require.False(t, res.Success)
		assert.Equal(t, "must be even", res.Message)
		assert.Equal(t, "Custom", res.Error.Rule)
	})

	t.Run("empty message falls back to generic message", func(t *testing.T) {
		res := v.Validate(context.Background(), validator.Request{
			Value:        "x",
			PropertyName: "code",
			Rules:        []any{validator.Fn("Nope", func(context.Context, *validator.Input) error { return validator.Fail("") })},
		})

		require.False(t, res.Success)
		assert.Equal(t, validator.KeyInvalid, res.Error.TranslationKey)
		assert.Equal(t, "code is invalid", res.Message)
	})

	t.Run("plain errors keep their text", func(t *testing.T) {
		res := v.Validate(context.Background(), validator.Request{
			Value: "x",
			Rules: []any{validator.Fn("Plain", func(context.Context, *validator.Input) error {
				return errors.New("lookup failed")
			})},
		})

		require.False(t, res.Success)
		assert.Equal(t, "lookup failed", res.Message)
	})
}

func TestValidate_UnknownRule(t *testing.T) {
	v := newValidator(t)

	assert.NotPanics(t, func() {
		res := v.Validate(context.Background(), validator.Request{
			Value: "x",
			Rules: []any{"DoesNotExist"},
		})

		require.False(t, res.Success)
		assert.Equal(t, validator.KeyUnknownRule, res.Error.TranslationKey)
		assert.Equal(t, "unknown validation rule: DoesNotExist", res.Message)
	})
}

func TestValidate_MalformedReference(t *testing.T) {
	v := newValidator(t)

	res := v.Validate(context.Background(), validator.Request{
		Value: "x",
		Rules: []any{42},
	})

	require.False(t, res.Success)
	assert.Equal(t, validator.KeyMalformed, res.Error.TranslationKey)
	assert.Contains(t, res.Message, "malformed validation rule")
}

func TestValidate_PanickingRule(t *testing.T) {
	v := newValidator(t)

	assert.NotPanics(t, func() {
		res := v.Validate(context.Background(), validator.Request{
			Value: "x",
			Rules: []any{validator.Fn("Boom", func(context.Context, *validator.Input) error {
				panic("kaboom")
			})},
		})

		require.False(t, res.Success)
		assert.Equal(t, "Boom", res.Error.Rule)
		assert.Contains(t, res.Message, "kaboom")
	})
}

func TestValidate_AsyncRule(t *testing.T) {
	v := newValidator(t)

	t.Run("failure is reported with its message", func(t *testing.T) {
		slow := validator.Async(func(context.Context, *validator.Input) error {
			time.Sleep(5 * time.Millisecond)
			return validator.Fail("username is taken")
		})

		res := v.Validate(context.Background(), validator.Request{
			Value: "alice",
			Rules: []any{validator.Fn("Unique", slow)},
		})

		require.False(t, res.Success)
		assert.Equal(t, "username is taken", res.Message)
	})

	t.Run("coercion is applied", func(t *testing.T) {
		upper := validator.Async(func(_ context.Context, in *validator.Input) error {
			in.Value = fmt.Sprintf("%v!", in.Value)
			return nil
		})

		res := v.Validate(context.Background(), validator.Request{
			Value: "hi",
			Rules: []any{validator.Fn("Shout", upper)},
		})

		require.True(t, res.Success)
		assert.Equal(t, "hi!", res.Value)
	})

	t.Run("panic on the goroutine becomes a failure", func(t *testing.T) {
		boom := validator.Async(func(context.Context, *validator.Input) error {
			panic("async kaboom")
		})

		res := v.Validate(context.Background(), validator.Request{
			Value: "x",
			Rules: []any{validator.Fn("Boom", boom)},
		})

		require.False(t, res.Success)
		assert.Contains(t, res.Message, "async kaboom")
	})

	t.Run("context deadline stops waiting", func(t *testing.T) {
		block := validator.Async(func(ctx context.Context, _ *validator.Input) error {
			<-ctx.Done()
			time.Sleep(10 * time.Millisecond)
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()

		res := v.Validate(ctx, validator.Request{
			Value: "x",
			Rules: []any{validator.Fn("Block", block)},
		})

		require.False(t, res.Success)
		assert.Equal(t, context.DeadlineExceeded.Error(), res.Message)
	})
}

func TestValidate_CanceledContext(t *testing.T) {
	s := &spy{}
	v := newValidator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := v.Validate(ctx, validator.Request{
		Value: "x",
		Rules: []any{validator.Fn("Spy", s.rule)},
	})

	assert.False(t, res.Success)
	assert.Zero(t, s.calls.Load())
}

func TestValidate_Coercion(t *testing.T) {
	v := newValidator(t)

	res := v.Validate(context.Background(), validator.Request{
		Value: "  Hello@Example.COM ",
		Rules: []any{"Trim", "ToLower", "Email"},
	})

	require.True(t, res.Success)
	assert.Equal(t, "hello@example.com", res.Value)

	res = v.Validate(context.Background(), validator.Request{
		Value: "42",
		Rules: []any{"ToInt", validator.R("Min", 18)},
	})

	require.True(t, res.Success)
	assert.Equal(t, 42, res.Value)
}

func TestValidate_ContextBag(t *testing.T) {
	v := newValidator(t)

	var seen any
	res := v.Validate(context.Background(), validator.Request{
		Value:   "x",
		Context: validator.Context{"tenant": "acme"},
		Rules: []any{validator.Fn("Tenant", func(_ context.Context, in *validator.Input) error {
			seen = in.Context["tenant"]
			return nil
		})},
	})

	require.True(t, res.Success)
	assert.Equal(t, "acme", seen)
}

func TestValidate_Labels(t *testing.T) {
	t.Run("explicit translated name", func(t *testing.T) {
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value:                  "",
			PropertyName:           "email",
			TranslatedPropertyName: "E-mail address",
			Rules:                  []any{"Required"},
		})

		require.False(t, res.Success)
		assert.Equal(t, "E-mail address is required", res.Message)
		assert.Equal(t, "email", res.Error.Property)
		assert.Equal(t, "E-mail address", res.Error.TranslatedProperty)
	})

	t.Run("field name", func(t *testing.T) {
		v := newValidator(t)

		res := v.Validate(context.Background(), validator.Request{
			Value:     "",
			FieldName: "email",
			Rules:     []any{"Required"},
		})

		require.False(t, res.Success)
		assert.Equal(t, "email is required", res.Message)
		assert.Equal(t, "email", res.Error.Location())
	})

	t.Run("humanized property name", func(t *testing.T) {
		v := newValidator(t, validator.WithHumanizedLabels(true))

		res := v.Validate(context.Background(), validator.Request{
			Value:        "",
			PropertyName: "firstName",
			Rules:        []any{"Required"},
		})

		require.False(t, res.Success)
		assert.Equal(t, "First name is required", res.Message)
	})
}

func TestValidate_Translator(t *testing.T) {
	tr := validator.TranslatorFunc(func(_ context.Context, key string, values map[string]any) (string, bool) {
		switch key {
		case "validation.attributes.email":
			return "courriel", true
		case "validation.required":
			return fmt.Sprintf("%v est obligatoire", values["field"]), true
		}
		return "", false
	})
	v := newValidator(t, validator.WithTranslator(tr))

	res := v.Validate(context.Background(), validator.Request{
		Value:        "",
		PropertyName: "email",
		Rules:        []any{"Required"},
	})

	require.False(t, res.Success)
	assert.Equal(t, "courriel est obligatoire", res.Message)
	assert.Equal(t, "courriel", res.Error.TranslatedProperty)

	// Keys without a translation fall back to the English messages.
	res = v.Validate(context.Background(), validator.Request{
		Value:        "nope",
		PropertyName: "email",
		Rules:        []any{"Email"},
	})

	require.False(t, res.Success)
	assert.Equal(t, "courriel must be a valid email address", res.Message)
}

func TestValidate_PackageLevel(t *testing.T) {
	res := validator.Validate(context.Background(), validator.Request{
		Value: "user@example.com",
		Rules: []any{"Required", "Email"},
	})
	assert.True(t, res.Success)
}

func TestResult_Err(t *testing.T) {
	v := newValidator(t)

	ok := v.Validate(context.Background(), validator.Request{Value: "x", Rules: []any{"Required"}})
	assert.NoError(t, ok.Err())
	assert.Empty(t, ok.Details())

	failed := v.Validate(context.Background(), validator.Request{Value: "", FieldName: "name", Rules: []any{"Required"}})
	err := failed.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.True(t, validator.IsValidationError(err))
	assert.Equal(t, []string{"name is required"}, validator.ExtractValidationErrors(err).Get("name"))
	assert.Len(t, failed.Details(), 1)
}
