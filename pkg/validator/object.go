package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// CallOption configures a single object validation call.
type CallOption func(*callConfig)

type callConfig struct {
	bag  Context
	path string
}

// WithValues passes a context bag to every rule of the call, including
// nested validations.
func WithValues(bag Context) CallOption {
	return func(c *callConfig) {
		c.bag = bag
	}
}

// WithPath prefixes every error path, e.g. when the object is itself part of
// a larger document.
func WithPath(prefix string) CallOption {
	return func(c *callConfig) {
		c.path = prefix
	}
}

// NestedError is returned by the nested-validation rule. It carries the
// failures of the nested object(s) with their full paths.
type NestedError struct {
	Errors ValidationErrors
}

func (e *NestedError) Error() string {
	return e.Errors.Error()
}

func (e *NestedError) Unwrap() error {
	return e.Errors
}

// ValidateObject validates every bound property of schema against data.
// Properties are independent: a failure in one never stops the others, and
// every failure is reported. Properties missing from data are validated as
// Undefined.
func (v *Validator) ValidateObject(ctx context.Context, schema *Schema, data map[string]any, opts ...CallOption) Result {
	start := v.now()

	cfg := callConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	out, errs, states := v.validateObject(ctx, schema, data, cfg.bag, cfg.path)

	end := v.now()
	if len(errs) == 0 {
		return Result{
			Success:     true,
			Data:        out,
			States:      states,
			ValidatedAt: end,
			Duration:    end.Sub(start),
		}
	}

	return Result{
		Success:  false,
		Data:     data,
		Errors:   errs,
		Message:  errs.Error(),
		States:   states,
		FailedAt: end,
		Duration: end.Sub(start),
	}
}

// ValidateStruct converts value to an object through its JSON encoding and
// validates it against schema.
func (v *Validator) ValidateStruct(ctx context.Context, schema *Schema, value any, opts ...CallOption) Result {
	data, ok := toObject(value)
	if !ok {
		start := v.now()
		label, _ := v.label(ctx, chain{})
		verr := ValidationError{
			Rule:              RuleValidateNested,
			TranslationKey:    KeyNotObject,
			TranslationValues: map[string]any{"field": label},
		}
		verr.Message = render(ctx, v.translator, KeyNotObject, verr.TranslationValues)
		end := v.now()
		return Result{
			Success:  false,
			Value:    value,
			Error:    &verr,
			Errors:   ValidationErrors{verr},
			Message:  verr.Message,
			FailedAt: end,
			Duration: end.Sub(start),
		}
	}
	return v.ValidateObject(ctx, schema, data, opts...)
}

func (v *Validator) validateObject(ctx context.Context, schema *Schema, data map[string]any, bag Context, prefix string) (map[string]any, ValidationErrors, map[string]State) {
	if schema == nil {
		return maps.Clone(data), nil, map[string]State{}
	}
	props := schema.Properties()
	outcomes := make([]outcome, len(props))

	runProp := func(i int) {
		prop := props[i]
		value, present := data[prop]
		if !present {
			value = Undefined
		}

		refs := schema.RulesFor(prop)
		raw := make([]any, len(refs))
		for j := range refs {
			raw[j] = refs[j]
		}

		outcomes[i] = v.run(ctx, chain{
			value:      value,
			refs:       raw,
			bag:        bag,
			data:       data,
			property:   prop,
			translated: schema.label(prop),
			path:       joinPath(prefix, prop),
		})
	}

	if v.concurrency > 1 && len(props) > 1 {
		var g errgroup.Group
		g.SetLimit(v.concurrency)
		for i := range props {
			g.Go(func() error {
				runProp(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range props {
			runProp(i)
		}
	}

	out := maps.Clone(data)
	if out == nil {
		out = make(map[string]any, len(props))
	}

	var errs ValidationErrors
	states := make(map[string]State, len(props))

	for i, prop := range props {
		o := outcomes[i]
		states[prop] = o.state

		if o.state.Passed() {
			if !IsUndefined(o.value) {
				out[prop] = o.value
			}
			continue
		}

		if len(o.nested) > 0 {
			errs = append(errs, o.nested...)
			continue
		}
		if o.err != nil {
			errs = append(errs, *o.err)
		}
	}

	return out, errs, states
}

// nestedRule validates a map against the schema in Params[0], or every
// element of a slice against it. Nil and Undefined values pass; presence is
// the job of Required.
func nestedRule(ctx context.Context, in *Input) error {
	schema, ok := in.Param(0).(*Schema)
	if !ok || schema == nil {
		return fmt.Errorf("%w: ValidateNested expects a schema", ErrInvalidParams)
	}
	v := in.validator
	if v == nil {
		v = New()
	}

	if IsNil(in.Value) {
		return nil
	}

	if obj, ok := toObject(in.Value); ok {
		out, errs, _ := v.validateObject(ctx, schema, obj, in.Context, in.path)
		if len(errs) > 0 {
			return &NestedError{Errors: errs}
		}
		if _, isMap := in.Value.(map[string]any); isMap {
			in.Value = out
		}
		return nil
	}

	rv := reflect.ValueOf(in.Value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return Violation(KeyNotObject, nil)
	}

	var all ValidationErrors
	coerced := make([]any, rv.Len())
	for i := range rv.Len() {
		elemPath := in.path + "[" + strconv.Itoa(i) + "]"
		elem := rv.Index(i).Interface()

		obj, ok := toObject(elem)
		if !ok {
			label := elemPath
			all = append(all, ValidationError{
				Property:          in.Property,
				Path:              elemPath,
				Rule:              RuleValidateNested,
				TranslationKey:    KeyNotObject,
				TranslationValues: map[string]any{"field": label},
				Message:           render(ctx, v.translator, KeyNotObject, map[string]any{"field": label}),
			})
			continue
		}

		out, errs, _ := v.validateObject(ctx, schema, obj, in.Context, elemPath)
		all = append(all, errs...)
		coerced[i] = out
	}

	if len(all) > 0 {
		return &NestedError{Errors: all}
	}
	if _, isList := in.Value.([]any); isList {
		in.Value = coerced
	}
	return nil
}

// toObject returns v as map[string]any. Maps with string keys are copied;
// structs and pointers to structs go through their JSON encoding.
func toObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		raw, err := json.Marshal(rv.Interface())
		if err != nil {
			return nil, false
		}
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

func joinPath(base, prop string) string {
	if base == "" {
		return prop
	}
	return base + "." + prop
}
