package scopes

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// Separator separates permissions in a list string ("users.read posts.*").
	Separator = " "

	// Wildcard matches everything, or everything below a prefix ("users.*").
	Wildcard = "*"

	// Delimiter separates the parts of a permission ("users.read").
	Delimiter = "."
)

// Parse splits a space separated permission list. Blank entries are dropped
// and an empty list returns nil.
func Parse(list string) []string {
	fields := strings.Fields(list)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Join is the inverse of Parse.
func Join(perms []string) string {
	return strings.Join(perms, Separator)
}

// Build returns the permission for an action on a resource: "users.read".
func Build(resource, action string) string {
	switch {
	case resource == "":
		return action
	case action == "":
		return resource
	}
	return resource + Delimiter + action
}

// Split is the inverse of Build. The action is the part after the last
// delimiter, so "admin.users.read" splits into "admin.users" and "read".
func Split(perm string) (resource, action string) {
	i := strings.LastIndex(perm, Delimiter)
	if i < 0 {
		return "", perm
	}
	return perm[:i], perm[i+1:]
}

// Match reports whether a granted pattern covers perm.
//
//	Match("*", "users.read")          // true
//	Match("users.*", "users.read")    // true
//	Match("users.*", "users")         // false
//	Match("users.read", "users.read") // true
func Match(pattern, perm string) bool {
	if pattern == perm || pattern == Wildcard {
		return true
	}
	prefix, ok := strings.CutSuffix(pattern, Delimiter+Wildcard)
	if !ok || strings.Contains(prefix, Wildcard) {
		return false
	}
	return strings.HasPrefix(perm, prefix+Delimiter)
}

// Has reports whether any granted pattern covers perm.
func Has(granted []string, perm string) bool {
	return slices.ContainsFunc(granted, func(p string) bool {
		return Match(p, perm)
	})
}

// HasAll reports whether every required permission is granted.
// An empty requirement is always satisfied.
func HasAll(granted, required []string) bool {
	for _, req := range required {
		if !Has(granted, req) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one required permission is granted.
// An empty requirement is always satisfied.
func HasAny(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	return slices.ContainsFunc(required, func(req string) bool {
		return Has(granted, req)
	})
}

// Equal reports whether two lists hold the same permissions in any order,
// ignoring duplicates.
func Equal(a, b []string) bool {
	return slices.Equal(Normalize(a), Normalize(b))
}

// Validate checks every permission against an allow-list of patterns and
// returns ErrNotAllowed naming the first one outside it. Permissions that
// are empty or contain blanks return ErrInvalid.
func Validate(perms, allowed []string) error {
	for _, p := range perms {
		if p == "" || strings.ContainsAny(p, " \t\n") {
			return fmt.Errorf("%w: %q", ErrInvalid, p)
		}
		if !Has(allowed, p) {
			return fmt.Errorf("%w: %s", ErrNotAllowed, p)
		}
	}
	return nil
}

// Normalize returns the sorted list without duplicates, or nil when empty.
func Normalize(perms []string) []string {
	if len(perms) == 0 {
		return nil
	}
	out := slices.Clone(perms)
	slices.Sort(out)
	return slices.Compact(out)
}
