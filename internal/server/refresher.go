package server

import (
	"context"

	"github.com/preston-bernstein/bookplay-admin/internal/refresher"
)

// Refresher defines the background cache warming needed by the server.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresher.Status
}
