package rbac

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RoleSource provides the role definitions.
type RoleSource interface {
	Load(ctx context.Context) (map[string]Role, error)
}

type memorySource struct {
	roles map[string]Role
}

// NewInMemRoleSource serves a copy of roles taken at construction time.
func NewInMemRoleSource(roles map[string]Role) RoleSource {
	return &memorySource{roles: cloneRoles(roles)}
}

func (s *memorySource) Load(context.Context) (map[string]Role, error) {
	return cloneRoles(s.roles), nil
}

func cloneRoles(roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(roles))
	for name, r := range roles {
		out[name] = Role{
			Permissions: slices.Clone(r.Permissions),
			Inherits:    slices.Clone(r.Inherits),
		}
	}
	return out
}

// ParseRoles reads role definitions from YAML (or JSON, which YAML accepts):
//
//	viewer:
//	  permissions: [posts.read]
//	editor:
//	  permissions: [posts.write]
//	  inherits: [viewer]
func ParseRoles(r io.Reader) (map[string]Role, error) {
	roles := map[string]Role{}
	if err := yaml.NewDecoder(r).Decode(&roles); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidRoleSource, err)
	}
	return roles, nil
}

type fileSource struct {
	path string
}

// NewFileRoleSource reads roles from a YAML or JSON file on every Load.
func NewFileRoleSource(path string) RoleSource {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (map[string]Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Join(ErrInvalidRoleSource, err)
	}
	defer f.Close()

	return ParseRoles(f)
}
