// Package rbac resolves roles to permissions and evaluates permission checks.
//
// Roles grant permission strings ("posts.write", "billing.*") and may inherit
// other roles. Inheritance is resolved once when the Authorizer is built:
//
//	src := rbac.NewInMemRoleSource(map[string]rbac.Role{
//		"viewer": {Permissions: []string{"posts.read"}},
//		"editor": {Permissions: []string{"posts.write"}, Inherits: []string{"viewer"}},
//	})
//	auth, err := rbac.NewAuthorizer(ctx, src)
//
//	auth.Can("editor", "posts.read") // nil
//
// Roles can also be read from YAML with ParseRoles or NewFileRoleSource.
//
// # Checks
//
// A Check is one requirement, built from a closed set of variants:
//
//	rbac.Tuple("posts", "write")    // permission "posts.write"
//	rbac.Object(invoice, "read")    // invoice.ResourceName() + ".read"
//	rbac.Func(func(p []string) bool { ... })
//	rbac.Bool(post.AuthorID == uid)
//
// Authorizer.Allows requires every check to pass; the package-level Allows
// evaluates one check against a plain list of permissions.
package rbac
