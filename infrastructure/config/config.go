package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// demoKey is NASA's shared evaluation key (30 requests/hour).
const demoKey = "DEMO_KEY"

// Config holds all configuration for the Space Tools service
type Config struct {
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8092"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"json"` // json or console
	NASAAPIKey        string        `env:"NASA_API_KEY" envDefault:"DEMO_KEY"`
	NASABaseURL       string        `env:"NASA_BASE_URL" envDefault:"https://api.nasa.gov"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	RateLimitInterval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"3600ms"`
	RetryMaxAttempts  int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKeyMode reports whether a personal key is configured or the service is
// running on NASA's shared demo key.
func (c *Config) APIKeyMode() string {
	if c.NASAAPIKey == demoKey || c.NASAAPIKey == "" {
		return "demo"
	}
	return "configured"
}
