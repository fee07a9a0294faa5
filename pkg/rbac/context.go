package rbac

import "context"

type roleCtxKey struct{}

// SetRoleToContext stores the caller's role in ctx.
func SetRoleToContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext returns the role stored by SetRoleToContext.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok && role != ""
}

// RoleKey returns the context key used by SetRoleToContext, for
// logger.WithContextValue.
func RoleKey() any {
	return roleCtxKey{}
}
