// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers with consistent key names.
//
// New picks a text or JSON handler and, when context extractors are set,
// wraps it so every record also carries attributes pulled from its context:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "validate"),
//		logger.WithContextValue("locale", localeKey{}),
//	)
//	log.DebugContext(ctx, "validation rule failed",
//		logger.Component("validator"),
//		logger.Rule("Email"),
//		logger.Property("user.email"),
//	)
//
// Presets:
//
//   - WithDevelopment: text output, debug level.
//   - WithStaging and WithProduction: JSON output, info level.
//   - WithConfig: a preset chosen by APP_ENV, with LOG_LEVEL and LOG_FORMAT overrides.
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
