package validator

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Catalog is a named registry of rule functions. Names are case-sensitive.
// It is safe for concurrent use; in practice it is written during startup and
// only read while validating.
type Catalog struct {
	mu    sync.RWMutex
	rules map[string]RuleFunc
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithBuiltins registers every built-in rule into the new catalog.
func WithBuiltins() CatalogOption {
	return func(c *Catalog) {
		registerBuiltins(c)
	}
}

// WithRule registers a single rule into the new catalog.
// Invalid rules are ignored.
func WithRule(name string, fn RuleFunc) CatalogOption {
	return func(c *Catalog) {
		_ = c.Register(name, fn)
	}
}

// NewCatalog creates an empty catalog configured by the given options.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{rules: make(map[string]RuleFunc)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a rule or overwrites an existing one with the same name.
func (c *Catalog) Register(name string, fn RuleFunc) error {
	if name == "" || fn == nil {
		return ErrInvalidRule
	}

	c.mu.Lock()
	c.rules[name] = fn
	c.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on invalid input.
func (c *Catalog) MustRegister(name string, fn RuleFunc) {
	if err := c.Register(name, fn); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", name, err))
	}
}

// Get returns the rule registered under name.
func (c *Catalog) Get(name string) (RuleFunc, error) {
	c.mu.RLock()
	fn, ok := c.rules[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return fn, nil
}

// Has reports whether a rule is registered under name.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rules[name]
	return ok
}

// All returns a copy of the full name -> rule mapping.
func (c *Catalog) All() map[string]RuleFunc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.rules)
}

// Names returns the registered rule names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.rules))
}

var (
	defaultCatalog     = NewCatalog()
	defaultRulesLoaded sync.Once
)

// InitializeDefaultRules registers the built-in rules into the process-wide
// catalog. It runs at most once no matter how many times it is called.
func InitializeDefaultRules() {
	defaultRulesLoaded.Do(func() {
		registerBuiltins(defaultCatalog)
	})
}

// Default returns the process-wide catalog with the built-in rules registered.
func Default() *Catalog {
	InitializeDefaultRules()
	return defaultCatalog
}

// Register adds a rule to the process-wide catalog.
func Register(name string, fn RuleFunc) error {
	return Default().Register(name, fn)
}

// Lookup returns a rule from the process-wide catalog.
func Lookup(name string) (RuleFunc, error) {
	return Default().Get(name)
}

// Rules returns a copy of the process-wide catalog mapping.
func Rules() map[string]RuleFunc {
	return Default().All()
}
