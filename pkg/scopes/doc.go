// Package scopes matches permission strings.
//
// A permission names an action on a resource, joined with a dot:
// "users.read", "billing.invoices.export". Lists of permissions travel as a
// single space separated string, as in the OAuth 2.0 scope parameter.
//
// # Overview
//
// Three syntactic conventions are understood:
//
//   - Separator (" ") between permissions in a list string.
//   - Delimiter (".") between the resource path and the action.
//   - Wildcard ("*") matching everything on its own, or everything below a
//     prefix when used as the last segment ("users.*").
//
// A wildcard anywhere else ("*.read", "users.*.read") is matched literally.
//
// # Usage
//
//	granted := scopes.Parse("users.* posts.read")
//
//	scopes.Has(granted, "users.delete")                           // true
//	scopes.HasAll(granted, []string{"posts.read", "posts.write"}) // false
//	scopes.HasAny(granted, []string{"posts.read", "posts.write"}) // true
//
//	perm := scopes.Build("invoices", "export") // "invoices.export"
//	resource, action := scopes.Split("billing.invoices.export")
//	// resource == "billing.invoices", action == "export"
//
// Join is the inverse of Parse. Normalize sorts and deduplicates a list, and
// Equal compares two lists regardless of order and duplicates.
//
// # Validation
//
// Limit user supplied permissions to an allow-list, which may itself use
// wildcards:
//
//	if err := scopes.Validate(requested, []string{"users.*", "posts.read"}); err != nil {
//		return err
//	}
//
// # Error Handling
//
//   - ErrInvalid: an empty list, or a permission that is empty or contains
//     white space.
//   - ErrNotAllowed: a permission outside the allow-list.
//
// Both are matched with errors.Is. Package rbac builds on these helpers for
// role based checks.
package scopes
