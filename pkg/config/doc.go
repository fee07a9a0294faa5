// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Each
// configuration struct is parsed once per process and cached by type, so
// packages can call Load from their constructors without re-reading the
// environment:
//
//	var cfg validator.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// LoadEnv reads extra .env files before the first Load. ResetCache and Reload
// exist for tests that change the environment.
//
// Errors can be checked with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
