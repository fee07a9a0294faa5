package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientkit/pkg/config"
)

type engineConfig struct {
	Concurrency int    `env:"CFGTEST_CONCURRENCY" envDefault:"1"`
	Locale      string `env:"CFGTEST_LOCALE" envDefault:"en"`
	Humanize    bool   `env:"CFGTEST_HUMANIZE" envDefault:"true"`
}

type schemaConfig struct {
	Path string `env:"CFGTEST_SCHEMAS" envDefault:"schemas.yaml"`
}

type i18nConfig struct {
	Dir string `env:"CFGTEST_I18N_DIR" envDefault:"translations"`
}

type cachedConfig struct {
	Service string `env:"CFGTEST_SERVICE"`
}

type reloadConfig struct {
	Value string `env:"TEST_RELOAD_VALUE"`
}

type envFileConfig struct {
	Concurrency int `env:"TEST_ENVFILE_CONCURRENCY"`
}

type requiredConfig struct {
	Secret string `env:"CFGTEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("environment overrides defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_CONCURRENCY", "4")
		t.Setenv("CFGTEST_LOCALE", "fr")
		t.Setenv("CFGTEST_HUMANIZE", "false")

		var cfg engineConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, engineConfig{Concurrency: 4, Locale: "fr", Humanize: false}, cfg)
	})

	t.Run("defaults apply when unset", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("CFGTEST_CONCURRENCY")
		os.Unsetenv("CFGTEST_LOCALE")
		os.Unsetenv("CFGTEST_HUMANIZE")

		var cfg engineConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, engineConfig{Concurrency: 1, Locale: "en", Humanize: true}, cfg)
	})

	t.Run("each type is cached separately", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_SCHEMAS", "/etc/schemas.json")
		t.Setenv("CFGTEST_I18N_DIR", "/etc/i18n")

		var schemas schemaConfig
		var tr i18nConfig
		require.NoError(t, config.Load(&schemas))
		require.NoError(t, config.Load(&tr))
		assert.Equal(t, "/etc/schemas.json", schemas.Path)
		assert.Equal(t, "/etc/i18n", tr.Dir)
	})

	t.Run("second load serves the cached copy", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_SERVICE", "validate")
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFGTEST_SERVICE", "changed")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "validate", second.Service)
	})

	t.Run("missing required value", func(t *testing.T) {
		os.Unsetenv("CFGTEST_REQUIRED_SECRET")

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrParsingConfig))
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *engineConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestReload(t *testing.T) {
	t.Setenv("TEST_RELOAD_VALUE", "first")

	var cfg reloadConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Value)

	t.Setenv("TEST_RELOAD_VALUE", "second")

	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Value, "Load should serve the cached copy")

	require.NoError(t, config.Reload(&cfg))
	assert.Equal(t, "second", cfg.Value, "Reload should parse the environment again")
}

func TestReload_NilPointer(t *testing.T) {
	var cfg *reloadConfig
	assert.ErrorIs(t, config.Reload(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("TEST_ENVFILE_CONCURRENCY")
	t.Cleanup(func() { os.Unsetenv("TEST_ENVFILE_CONCURRENCY") })
	config.ResetCache()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_ENVFILE_CONCURRENCY=8\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() {
		config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	})
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("CFGTEST_REQUIRED_SECRET")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
