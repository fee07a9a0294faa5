package validator

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Schema binds ordered rule lists to named properties of an object.
//
// Rules run in the order they were bound: the first Bind call for a property
// contributes the first rule of its chain, and within one call the references
// keep their argument order.
type Schema struct {
	name string

	mu         sync.RWMutex
	properties []string
	rules      map[string][]Ref
	labels     map[string]string
	bindErrs   []error
}

// NewSchema creates an empty schema. The name is used in diagnostics and by
// the schema loader to resolve nested references.
func NewSchema(name string) *Schema {
	return &Schema{
		name:   name,
		rules:  make(map[string][]Ref),
		labels: make(map[string]string),
	}
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Bind appends rule references to a property's chain. References are accepted
// in any shape Normalize understands; malformed ones are kept and reported as
// failures at validation time.
func (s *Schema) Bind(property string, refs ...any) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[property]; !ok {
		s.properties = append(s.properties, property)
		s.rules[property] = nil
	}

	for _, raw := range refs {
		ref, err := Normalize(raw)
		if err != nil {
			s.bindErrs = append(s.bindErrs, fmt.Errorf("%s.%s: %w", s.name, property, err))
			ref = malformedRef(err)
		}
		s.rules[property] = append(s.rules[property], ref)
	}
	return s
}

// Nested binds a nested-schema rule to property.
func (s *Schema) Nested(property string, nested *Schema) *Schema {
	return s.Bind(property, ValidateNested(nested))
}

// Label sets the human-readable (usually translated) name of a property used
// in error messages.
func (s *Schema) Label(property, label string) *Schema {
	s.mu.Lock()
	s.labels[property] = label
	s.mu.Unlock()
	return s
}

// Properties returns the bound property names in first-bind order.
func (s *Schema) Properties() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.properties)
}

// Rules returns a copy of the property -> rule chain mapping.
func (s *Schema) Rules() map[string][]Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]Ref, len(s.rules))
	for prop, refs := range s.rules {
		out[prop] = slices.Clone(refs)
	}
	return out
}

// RulesFor returns a copy of the chain bound to property.
func (s *Schema) RulesFor(property string) []Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rules[property])
}

// Labels returns a copy of the property labels.
func (s *Schema) Labels() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.labels)
}

// BindErrors returns the errors collected from malformed references passed to Bind.
func (s *Schema) BindErrors() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bindErrs)
}

func (s *Schema) label(property string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labels[property]
}

// malformedRef keeps a bad reference in the chain so validation reports it.
func malformedRef(err error) Ref {
	return Ref{Name: "Malformed", Params: []any{err.Error()}, Func: func(_ context.Context, _ *Input) error {
		return Violation(KeyMalformed, map[string]any{"error": err.Error()})
	}}
}
