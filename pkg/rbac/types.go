package rbac

import "github.com/dmitrymomot/clientkit/pkg/scopes"

// MaxInheritanceDepth bounds the length of an inheritance chain.
const MaxInheritanceDepth = 10

// Role is a set of permissions plus the roles it inherits from.
type Role struct {
	Permissions []string `yaml:"permissions" json:"permissions"`
	Inherits    []string `yaml:"inherits,omitempty" json:"inherits,omitempty"`
}

// Can reports whether the role grants permission directly, ignoring
// inherited roles.
func (r Role) Can(permission string) bool {
	return scopes.Has(r.Permissions, permission)
}
