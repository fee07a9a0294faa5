package scopes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/clientkit/pkg/scopes"
)

func TestParseJoin(t *testing.T) {
	t.Parallel()

	assert.Nil(t, scopes.Parse(""))
	assert.Nil(t, scopes.Parse("   "))
	assert.Equal(t, []string{"users.read", "posts.*"}, scopes.Parse("  users.read \t posts.*  "))
	assert.Equal(t, "users.read posts.*", scopes.Join([]string{"users.read", "posts.*"}))
	assert.Empty(t, scopes.Join(nil))
}

func TestBuildSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		resource, action, perm string
	}{
		{"users", "read", "users.read"},
		{"admin.users", "read", "admin.users.read"},
		{"", "read", "read"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.perm, scopes.Build(tt.resource, tt.action))
		resource, action := scopes.Split(tt.perm)
		assert.Equal(t, tt.resource, resource)
		assert.Equal(t, tt.action, action)
	}

	assert.Equal(t, "users", scopes.Build("users", ""))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		perm    string
		want    bool
	}{
		{"exact", "users.read", "users.read", true},
		{"global wildcard", "*", "anything.at.all", true},
		{"prefix wildcard", "users.*", "users.read", true},
		{"deep prefix wildcard", "admin.*", "admin.users.read", true},
		{"prefix itself", "users.*", "users", false},
		{"other resource", "users.*", "posts.read", false},
		{"partial word", "user.*", "users.read", false},
		{"different action", "users.read", "users.write", false},
		{"wildcard in the middle", "users.*.read", "users.x.read", false},
		{"double wildcard", "*.*", "users.read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scopes.Match(tt.pattern, tt.perm))
		})
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	granted := []string{"users.*", "posts.read"}

	assert.True(t, scopes.Has(granted, "users.delete"))
	assert.True(t, scopes.Has(granted, "posts.read"))
	assert.False(t, scopes.Has(granted, "posts.write"))
	assert.False(t, scopes.Has(nil, "posts.read"))

	assert.True(t, scopes.HasAll(granted, nil))
	assert.True(t, scopes.HasAll(granted, []string{"users.read", "posts.read"}))
	assert.False(t, scopes.HasAll(granted, []string{"users.read", "posts.write"}))
	assert.True(t, scopes.HasAll([]string{"*"}, []string{"a.b", "c.d"}))

	assert.True(t, scopes.HasAny(granted, nil))
	assert.True(t, scopes.HasAny(granted, []string{"posts.write", "users.read"}))
	assert.False(t, scopes.HasAny(granted, []string{"posts.write", "billing.read"}))
	assert.False(t, scopes.HasAny(nil, []string{"posts.read"}))
}

func TestEqualNormalize(t *testing.T) {
	t.Parallel()

	assert.True(t, scopes.Equal([]string{"b", "a"}, []string{"a", "b", "a"}))
	assert.False(t, scopes.Equal([]string{"a"}, []string{"a", "b"}))
	assert.True(t, scopes.Equal(nil, []string{}))

	assert.Nil(t, scopes.Normalize(nil))
	assert.Equal(t, []string{"admin.*", "read", "write"}, scopes.Normalize([]string{"write", "read", "read", "admin.*"}))

	in := []string{"b", "a"}
	scopes.Normalize(in)
	assert.Equal(t, []string{"b", "a"}, in, "input is not modified")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	allowed := []string{"users.*", "posts.read"}

	assert.NoError(t, scopes.Validate(nil, allowed))
	assert.NoError(t, scopes.Validate([]string{"users.read", "posts.read"}, allowed))
	assert.ErrorIs(t, scopes.Validate([]string{"posts.write"}, allowed), scopes.ErrNotAllowed)
	assert.ErrorIs(t, scopes.Validate([]string{""}, allowed), scopes.ErrInvalid)
	assert.ErrorIs(t, scopes.Validate([]string{"users.read posts.read"}, allowed), scopes.ErrInvalid)
	assert.ErrorIs(t, scopes.Validate([]string{"a"}, nil), scopes.ErrNotAllowed)
	assert.NoError(t, scopes.Validate([]string{"anything"}, []string{"*"}))
}
