package config

import (
	"fmt"
	"strings"
	"time"
)

// BackendConfig controls how we talk to the Book & Play REST API.
type BackendConfig struct {
	BaseURL string        `env:"BOOKPLAY_API_BASE_URL" envDefault:"http://localhost:3000"`
	Timeout time.Duration `env:"BOOKPLAY_HTTP_TIMEOUT" envDefault:"10s"`
}

// APIURL returns the REST root; the backend mounts every resource under /api.
func (b BackendConfig) APIURL() string {
	return fmt.Sprintf("%s/api", strings.TrimRight(b.BaseURL, "/"))
}

// SessionConfig controls where the access token is persisted.
type SessionConfig struct {
	Store string `env:"SESSION_STORE" envDefault:"file"`
	Path  string `env:"SESSION_PATH" envDefault:"data/session.json"`
}

func (s SessionConfig) validate() error {
	switch s.Store {
	case SessionStoreFile, SessionStoreSQLite:
		return nil
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q (expected %q or %q)", s.Store, SessionStoreFile, SessionStoreSQLite)
	}
}

// CacheConfig controls the query cache.
type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

// RefresherConfig controls background cache warming.
type RefresherConfig struct {
	Enabled  bool          `env:"REFRESH_ENABLED" envDefault:"true"`
	Interval time.Duration `env:"REFRESH_INTERVAL" envDefault:"2m"`
}
