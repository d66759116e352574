package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the admin service.
type Config struct {
	Port      string `env:"PORT" envDefault:"4000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Backend   BackendConfig
	Session   SessionConfig
	Cache     CacheConfig
	Refresher RefresherConfig
	Metrics   MetricsConfig
	Tracing   TracingConfig
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory. Variables already set win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()
	return parse()
}

func parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.applyFallbacks()
	if err := cfg.Session.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFallbacks replaces non-positive durations with defaults.
func (c *Config) applyFallbacks() {
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = defaultBackendTimeout
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}
	if c.Refresher.Interval <= 0 {
		c.Refresher.Interval = defaultRefreshInterval
	}
}
