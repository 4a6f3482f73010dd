package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`

	// HTTP server
	Port int `env:"PORT" envDefault:"8080"`

	// Settlement policy: penalty total (toman) at which a challenge owner is
	// asked to donate and confirm payment
	SettlementThreshold int64 `env:"SETTLEMENT_THRESHOLD" envDefault:"500000"`

	// Environment: "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.SettlementThreshold <= 0 {
		return nil, fmt.Errorf("SETTLEMENT_THRESHOLD must be positive, got %d", config.SettlementThreshold)
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
