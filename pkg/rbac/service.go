package rbac

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/clientkit/pkg/logger"
	"github.com/dmitrymomot/clientkit/pkg/scopes"
)

// Authorizer answers permission questions for roles. Permissions of
// inherited roles are resolved once, at construction, so checks are lock-free
// lookups and the Authorizer is safe for concurrent use.
type Authorizer struct {
	permissions map[string][]string
	sorted      []string
	logger      *slog.Logger
}

// Option configures an Authorizer.
type Option func(*Authorizer)

// WithLogger logs denied checks at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authorizer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthorizer loads roles from source and resolves inheritance. Cycles,
// chains longer than MaxInheritanceDepth and references to unknown roles are
// rejected.
func NewAuthorizer(ctx context.Context, source RoleSource, opts ...Option) (*Authorizer, error) {
	if source == nil {
		return nil, ErrInvalidRoleSource
	}
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		roles: roles,
		perms: make(map[string][]string, len(roles)),
		depth: make(map[string]int, len(roles)),
		state: make(map[string]uint8, len(roles)),
	}
	for name := range roles {
		if err := r.visit(name, nil); err != nil {
			return nil, err
		}
	}

	sorted := make([]string, 0, len(roles))
	for name := range roles {
		sorted = append(sorted, name)
	}
	slices.SortFunc(sorted, func(a, b string) int {
		return cmp.Or(cmp.Compare(r.depth[a], r.depth[b]), cmp.Compare(a, b))
	})

	a := &Authorizer{
		permissions: r.perms,
		sorted:      sorted,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

const (
	unvisited uint8 = iota
	visiting
	resolved
)

type resolver struct {
	roles map[string]Role
	perms map[string][]string
	depth map[string]int
	state map[string]uint8
}

func (r *resolver) visit(name string, path []string) error {
	switch r.state[name] {
	case resolved:
		return nil
	case visiting:
		return fmt.Errorf("%w: circular inheritance detected: %s -> %s", ErrCircularInheritance, path[len(path)-1], name)
	}

	role, ok := r.roles[name]
	if !ok {
		return fmt.Errorf("%w: %s inherits unknown role %q", ErrInvalidRole, path[len(path)-1], name)
	}

	r.state[name] = visiting
	path = append(path, name)

	perms := slices.Clone(role.Permissions)
	depth := 0
	for _, parent := range role.Inherits {
		if err := r.visit(parent, path); err != nil {
			return err
		}
		perms = append(perms, r.perms[parent]...)
		depth = max(depth, r.depth[parent]+1)
	}
	if depth > MaxInheritanceDepth {
		return fmt.Errorf("%w: role %s has depth %d, maximum is %d", ErrInheritanceTooDeep, name, depth, MaxInheritanceDepth)
	}

	r.perms[name] = scopes.Normalize(perms)
	r.depth[name] = depth
	r.state[name] = resolved
	return nil
}

func (a *Authorizer) granted(role string) ([]string, error) {
	perms, ok := a.permissions[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	return perms, nil
}

func (a *Authorizer) deny(role string, what fmt.Stringer) error {
	a.logger.Debug("permission denied",
		logger.Component("rbac"),
		logger.Role(role),
		logger.Permission(what.String()),
	)
	return ErrInsufficientPermissions
}

type permString string

func (p permString) String() string { return string(p) }

// Can returns nil if role has permission, directly or through inheritance.
func (a *Authorizer) Can(role, permission string) error {
	perms, err := a.granted(role)
	if err != nil {
		return err
	}
	if !scopes.Has(perms, permission) {
		return a.deny(role, permString(permission))
	}
	return nil
}

// CanAny returns nil if role has at least one of permissions.
func (a *Authorizer) CanAny(role string, permissions ...string) error {
	perms, err := a.granted(role)
	if err != nil {
		return err
	}
	if !scopes.HasAny(perms, permissions) {
		return a.deny(role, permString(scopes.Join(permissions)))
	}
	return nil
}

// CanAll returns nil if role has every one of permissions.
func (a *Authorizer) CanAll(role string, permissions ...string) error {
	perms, err := a.granted(role)
	if err != nil {
		return err
	}
	if !scopes.HasAll(perms, permissions) {
		return a.deny(role, permString(scopes.Join(permissions)))
	}
	return nil
}

// Allows returns nil if every check passes for role.
//
//	err := auth.Allows("editor",
//		rbac.Tuple("posts", "write"),
//		rbac.Object(invoice, "read"),
//		rbac.Bool(post.AuthorID == userID),
//	)
func (a *Authorizer) Allows(role string, checks ...Check) error {
	perms, err := a.granted(role)
	if err != nil {
		return err
	}
	for _, c := range checks {
		if !Allows(perms, c) {
			if c == nil {
				return a.deny(role, permString("<nil>"))
			}
			return a.deny(role, c)
		}
	}
	return nil
}

func roleFrom(ctx context.Context) (string, error) {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return "", errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}
	return role, nil
}

// CanFromContext is Can for the role stored in ctx.
func (a *Authorizer) CanFromContext(ctx context.Context, permission string) error {
	role, err := roleFrom(ctx)
	if err != nil {
		return err
	}
	return a.Can(role, permission)
}

// CanAnyFromContext is CanAny for the role stored in ctx.
func (a *Authorizer) CanAnyFromContext(ctx context.Context, permissions ...string) error {
	role, err := roleFrom(ctx)
	if err != nil {
		return err
	}
	return a.CanAny(role, permissions...)
}

// CanAllFromContext is CanAll for the role stored in ctx.
func (a *Authorizer) CanAllFromContext(ctx context.Context, permissions ...string) error {
	role, err := roleFrom(ctx)
	if err != nil {
		return err
	}
	return a.CanAll(role, permissions...)
}

// AllowsFromContext is Allows for the role stored in ctx.
func (a *Authorizer) AllowsFromContext(ctx context.Context, checks ...Check) error {
	role, err := roleFrom(ctx)
	if err != nil {
		return err
	}
	return a.Allows(role, checks...)
}

// VerifyRole returns ErrInvalidRole if role is not defined.
func (a *Authorizer) VerifyRole(role string) error {
	_, err := a.granted(role)
	return err
}

// Permissions returns the resolved permissions of role, sorted.
func (a *Authorizer) Permissions(role string) ([]string, error) {
	perms, err := a.granted(role)
	if err != nil {
		return nil, err
	}
	return slices.Clone(perms), nil
}

// Roles returns role names ordered by inheritance depth (base roles first),
// then by name.
func (a *Authorizer) Roles() []string {
	return slices.Clone(a.sorted)
}
