package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("rule failed", logger.Rule("Email"), logger.Property("user.email"))

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "rule failed", entry["msg"])
		assert.Equal(t, "Email", entry["rule"])
		assert.Equal(t, "user.email", entry["property"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("loaded", logger.Schema("user"))

		assert.Contains(t, buf.String(), "schema=user")
	})

	t.Run("last format option wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())
		log.Info("hello")

		assert.Equal(t, "hello", decode(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "validate")))
		log.Info("msg")

		assert.Equal(t, "validate", decode(t, buf)["svc"])
	})

	t.Run("context value", func(t *testing.T) {
		type localeKey struct{}
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("locale", localeKey{}))

		log.InfoContext(context.WithValue(context.Background(), localeKey{}, "de"), "msg")
		assert.Equal(t, "de", decode(t, buf)["locale"])

		buf.Reset()
		log.InfoContext(context.Background(), "msg")
		assert.NotContains(t, decode(t, buf), "locale")
	})

	t.Run("context extractors survive WithAttrs and WithGroup", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(context.Context) (slog.Attr, bool) {
				return slog.String("trace", "t1"), true
			}),
		)

		log.With(logger.Component("validator")).InfoContext(context.Background(), "msg")
		entry := decode(t, buf)
		assert.Equal(t, "t1", entry["trace"])
		assert.Equal(t, "validator", entry["component"])

		buf.Reset()
		log.WithGroup("g").InfoContext(context.Background(), "msg", slog.Int("n", 1))
		entry = decode(t, buf)
		assert.Contains(t, entry, "g")
	})
}

func TestEnvironmentPresets(t *testing.T) {
	t.Run("development logs debug as text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithDevelopment("svc"), logger.WithOutput(buf))
		log.Debug("msg")

		out := buf.String()
		assert.Contains(t, out, "DEBUG")
		assert.Contains(t, out, "service=svc")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production logs json without debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("PROD", "svc"), logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("msg")
		entry := decode(t, buf)
		assert.Equal(t, "svc", entry["service"])
		assert.Equal(t, logger.EnvProduction, entry["env"])
	})

	t.Run("staging", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("stage", "svc"), logger.WithOutput(buf))
		log.Info("msg")

		assert.Equal(t, logger.EnvStaging, decode(t, buf)["env"])
	})
}

func TestWithConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithConfig(logger.Config{Level: "warn", Format: "JSON", Env: "development", Service: "validate"}),
		logger.WithOutput(buf),
	)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	entry := decode(t, buf)
	assert.Equal(t, "validate", entry["service"])

	assert.Panics(t, func() {
		logger.New(logger.WithConfig(logger.Config{Format: "xml"}))
	})
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")

	assert.Equal(t, "default", decode(t, buf)["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestLevelOptions(t *testing.T) {
	t.Run("WithLevel", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelError))
		log.Warn("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("WithHandlerOptions overrides level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithLevel(slog.LevelError),
			logger.WithHandlerOptions(&slog.HandlerOptions{Level: slog.LevelDebug}),
		)
		log.Debug("shown")
		assert.Equal(t, "shown", decode(t, buf)["msg"])
	})

	t.Run("named presets", func(t *testing.T) {
		for _, tt := range []struct {
			opt logger.Option
			env string
		}{
			{logger.WithStaging("svc"), logger.EnvStaging},
			{logger.WithProduction("svc"), logger.EnvProduction},
			{logger.WithEnvironment("unknown", "svc"), logger.EnvDevelopment},
		} {
			buf := &bytes.Buffer{}
			logger.New(tt.opt, logger.WithJSONFormatter(), logger.WithOutput(buf)).Info("msg")
			assert.Equal(t, tt.env, decode(t, buf)["env"])
		}
	})

	t.Run("empty service leaves defaults", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger.New(logger.WithProduction(""), logger.WithOutput(buf)).Info("msg")
		assert.NotContains(t, decode(t, buf), "service")
	})
}
