package i18n_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientkit/pkg/i18n"
)

func TestMapAdapter(t *testing.T) {
	out, err := (&i18n.MapAdapter{}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFileAdapter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en:\n  hello: Hello\nde:\n  hello: Hallo\n"), 0o600))

	adapter := i18n.NewFileAdapter(nil, path)
	require.NotNil(t, adapter)

	out, err := adapter.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hallo", out["de"]["hello"])

	t.Run("unknown extension", func(t *testing.T) {
		assert.Nil(t, i18n.NewFileAdapter(nil, filepath.Join(dir, "messages.ini")))
		assert.Nil(t, i18n.NewFileAdapter(nil, ""))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(nil, filepath.Join(dir, "nope.json")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := adapter.Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestFSAdapter(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/a_validation.yml": {Data: []byte("en:\n  validation:\n    required: \"%{field} is required\"\n")},
		"locales/b_common.json":    {Data: []byte(`{"en": {"validation": {"email": "bad email"}, "hello": "Hello"}, "fr": {"hello": "Bonjour"}}`)},
		"locales/broken.yaml":      {Data: []byte("en: [unclosed")},
		"locales/empty.json":       {Data: []byte("  ")},
		"locales/readme.txt":       {Data: []byte("ignored")},
		"locales/nested/x.yaml":    {Data: []byte("en:\n  x: y\n")},
	}

	var logs bytes.Buffer
	adapter := i18n.NewFSAdapter(nil, fsys, "locales").WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	out, err := adapter.Load(context.Background())
	require.NoError(t, err)

	validation, ok := out["en"]["validation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "%{field} is required", validation["required"])
	assert.Equal(t, "bad email", validation["email"], "sections from different files are merged")
	assert.Equal(t, "Bonjour", out["fr"]["hello"])
	assert.NotContains(t, out["en"], "x", "subdirectories are not read")

	assert.Contains(t, logs.String(), "broken.yaml")
	assert.Contains(t, logs.String(), "empty.json")

	t.Run("translator on top", func(t *testing.T) {
		tr, err := i18n.NewTranslator(context.Background(), adapter)
		require.NoError(t, err)
		assert.Equal(t, "Bonjour", tr.T("fr-CA", "hello"))
	})

	t.Run("no translations", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(nil, fstest.MapFS{"l/readme.md": {Data: []byte("x")}}, "l").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(nil, fsys, "missing").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})

	t.Run("nil file system", func(t *testing.T) {
		assert.Nil(t, i18n.NewFSAdapter(nil, nil, "x"))
	})
}

func TestDirectoryAdapter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("en:\n  hi: Hi\n"), 0o600))

	out, err := i18n.NewDirectoryAdapter(nil, dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hi", out["en"]["hi"])

	assert.Nil(t, i18n.NewDirectoryAdapter(nil, ""))
}
