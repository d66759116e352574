package config

import "time"

const (
	defaultBackendTimeout = 10 * time.Second
	// Matches the query-cache staleness window the admin UI tolerates.
	defaultCacheTTL        = 30 * time.Second
	defaultRefreshInterval = 2 * time.Minute

	SessionStoreFile   = "file"
	SessionStoreSQLite = "sqlite"
)
