package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("rule", logger.Rule("Min"), slog.Int("param", 3))
	require.Equal(t, "rule", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())

	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "rule", g[0].Key)
	assert.Equal(t, "param", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Component("validator"), "component", "validator"},
		{logger.Rule("Email"), "rule", "Email"},
		{logger.Property("items[0].name"), "property", "items[0].name"},
		{logger.Schema("user"), "schema", "user"},
		{logger.Locale("de-AT"), "locale", "de-AT"},
		{logger.Role("admin"), "role", "admin"},
		{logger.Permission("posts:write"), "permission", "posts:write"},
		{logger.Count(3), "count", int64(3)},
		{logger.Duration(time.Second), "duration", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestEmptyAttrs(t *testing.T) {
	assert.True(t, logger.Property("").Equal(slog.Attr{}))
	assert.True(t, logger.Locale("").Equal(slog.Attr{}))
	assert.True(t, logger.Role(nil).Equal(slog.Attr{}))
}
