package validator

import "github.com/dmitrymomot/clientkit/pkg/config"

// Config holds the environment-driven validator settings.
type Config struct {
	// Concurrency is the number of properties of one object validated in parallel.
	Concurrency int `env:"VALIDATOR_CONCURRENCY" envDefault:"1"`
	// HumanizeLabels enables "firstName" -> "First name" labels in messages.
	HumanizeLabels bool `env:"VALIDATOR_HUMANIZE_LABELS" envDefault:"false"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
