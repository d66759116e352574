package session

import (
	"context"
	"errors"
	"fmt"
)

// TokenKey is the fixed key the access token is persisted under.
const TokenKey = "access_token"

// ErrNoToken is returned by a TokenStore holding no token.
var ErrNoToken = errors.New("session: no stored token")

// TokenStore persists the access token across restarts.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Close() error
}

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// OpenStore opens the token store of the given kind at path.
func OpenStore(kind, path string) (TokenStore, error) {
	switch kind {
	case StoreFile, "":
		return NewFileStore(path), nil
	case StoreSQLite:
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("session: unknown store %q", kind)
	}
}
