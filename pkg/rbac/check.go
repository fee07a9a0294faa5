package rbac

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/clientkit/pkg/scopes"
)

// CheckKind identifies the variant of a Check.
type CheckKind uint8

const (
	KindTuple CheckKind = iota + 1
	KindObject
	KindFunc
	KindBool
)

func (k CheckKind) String() string {
	switch k {
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	case KindFunc:
		return "func"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Check is one permission requirement. The variants are built with Tuple,
// Object, Func and Bool; the set is closed.
type Check interface {
	Kind() CheckKind
	allows(granted []string) bool
	fmt.Stringer
}

// Resource is implemented by domain types that name the resource they
// represent, e.g. an Invoice returning "invoices".
type Resource interface {
	ResourceName() string
}

type tupleCheck struct {
	resource, action string
}

// Tuple requires the permission "resource.action".
func Tuple(resource, action string) Check {
	return tupleCheck{resource: resource, action: action}
}

func (c tupleCheck) Kind() CheckKind { return KindTuple }
func (c tupleCheck) String() string  { return scopes.Build(c.resource, c.action) }
func (c tupleCheck) allows(granted []string) bool {
	return scopes.Has(granted, c.String())
}

type objectCheck struct {
	name   string
	action string
}

// Object requires action on the resource named by r. A nil resource, typed
// nil pointers included, or an empty resource name is never allowed.
func Object(r Resource, action string) Check {
	return objectCheck{name: resourceName(r), action: action}
}

func (c objectCheck) Kind() CheckKind { return KindObject }
func (c objectCheck) String() string {
	if c.name == "" {
		return c.action
	}
	return scopes.Build(c.name, c.action)
}
func (c objectCheck) allows(granted []string) bool {
	return c.name != "" && scopes.Has(granted, c.String())
}

// resourceName returns "" for nil resources and for ResourceName methods
// that panic.
func resourceName(r Resource) (name string) {
	if r == nil {
		return ""
	}
	switch v := reflect.ValueOf(r); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return ""
		}
	}
	defer func() {
		if recover() != nil {
			name = ""
		}
	}()
	return r.ResourceName()
}

type funcCheck struct {
	fn func(granted []string) bool
}

// Func delegates the decision to fn, which receives the granted permissions.
// A nil fn is never allowed.
func Func(fn func(granted []string) bool) Check {
	return funcCheck{fn: fn}
}

func (c funcCheck) Kind() CheckKind { return KindFunc }
func (c funcCheck) String() string  { return "func" }
func (c funcCheck) allows(granted []string) bool {
	return c.fn != nil && c.fn(granted)
}

type boolCheck bool

// Bool is a constant decision, for feature flags and ownership checks
// computed by the caller.
func Bool(v bool) Check {
	return boolCheck(v)
}

func (c boolCheck) Kind() CheckKind { return KindBool }
func (c boolCheck) String() string  { return fmt.Sprintf("%t", bool(c)) }
func (c boolCheck) allows([]string) bool {
	return bool(c)
}

// Allows evaluates check against a list of granted permissions.
// A nil check is not allowed.
func Allows(granted []string, check Check) bool {
	if check == nil {
		return false
	}
	return check.allows(granted)
}
