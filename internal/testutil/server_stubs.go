package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/refresher"
)

// StubRefresher implements the server's refresher dependency for tests.
type StubRefresher struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  refresher.Status
}

func (p *StubRefresher) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls++
}

func (p *StubRefresher) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls++
	return p.Err
}

func (p *StubRefresher) Status() refresher.Status {
	return p.StatusVal
}

// StubHTTPServer implements httpServer for tests. ListenAndServe returns
// ListenErr immediately; use http.ErrServerClosed to mimic a clean stop.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// BlockingHTTPServer allows simulating a shutdown that waits on an unblock channel.
type BlockingHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ShutdownCalls int
	Unblock       chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error {
	return nil
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

func (b *BlockingHTTPServer) Addr() string {
	return b.AddrVal
}

func (b *BlockingHTTPServer) Handler() http.Handler {
	return b.HandlerVal
}
