package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

// State is the coarse session state.
type State string

const (
	// StateAnonymous holds no token.
	StateAnonymous State = "anonymous"
	// StateLoading holds a token whose profile has not been fetched yet.
	StateLoading State = "loading"
	// StateAuthenticated holds a token and a fetched profile.
	StateAuthenticated State = "authenticated"
)

var (
	ErrUnauthenticated = errors.New("session: not authenticated")
	ErrLoading         = errors.New("session: profile still loading")
	ErrNoBusiness      = errors.New("session: no business yet")
	ErrHasBusiness     = errors.New("session: business already exists")
	ErrNoBackend       = errors.New("session: backend not configured")
)

// Backend is the slice of the REST client the session needs.
type Backend interface {
	Login(ctx context.Context, in domain.LoginRequest) (domain.LoginResponse, error)
	Register(ctx context.Context, in domain.RegisterRequest) (domain.RegisterResponse, error)
	Me(ctx context.Context) (domain.User, error)
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State       State            `json:"state"`
	User        *domain.User     `json:"user,omitempty"`
	Business    *domain.Business `json:"business,omitempty"`
	HasBusiness bool             `json:"hasBusiness"`
}

// IsAuthenticated is true as soon as a token is held, before the profile
// resolves.
func (s Snapshot) IsAuthenticated() bool {
	return s.State != StateAnonymous
}

// Config wires a Manager.
type Config struct {
	Store  TokenStore
	Logger *slog.Logger
	// OnSignOut runs after every transition to anonymous.
	OnSignOut func()
}

// Manager owns the operator's session and is the token source of the
// backend client.
type Manager struct {
	mu        sync.RWMutex
	store     TokenStore
	backend   Backend
	logger    *slog.Logger
	onSignOut func()
	now       func() time.Time

	token    string
	state    State
	user     *domain.User
	business *domain.Business
}

// NewManager constructs an anonymous Manager.
func NewManager(cfg Config) *Manager {
	return &Manager{
		store:     cfg.Store,
		logger:    cfg.Logger,
		onSignOut: cfg.OnSignOut,
		now:       time.Now,
		state:     StateAnonymous,
	}
}

// SetBackend binds the REST client. The client itself reads tokens from the
// Manager, so the two are wired after construction.
func (m *Manager) SetBackend(b Backend) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backend = b
}

// Token implements the backend client's token source.
func (m *Manager) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{State: m.state, HasBusiness: m.business != nil}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	if m.business != nil {
		b := *m.business
		snap.Business = &b
	}
	return snap
}

// Restore loads a persisted token and resolves its profile. A missing or
// already expired token leaves the session anonymous without a network call.
func (m *Manager) Restore(ctx context.Context) (Snapshot, error) {
	if m.store == nil {
		return m.Snapshot(), nil
	}
	token, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return m.Snapshot(), nil
	}
	if err != nil {
		return m.Snapshot(), err
	}
	if TokenExpired(token, m.now()) {
		logging.Info(m.logger, "stored token expired")
		m.signOut(ctx)
		return m.Snapshot(), nil
	}

	m.mu.Lock()
	m.token = token
	m.state = StateLoading
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// Login exchanges credentials for a token, persists it and resolves the profile.
func (m *Manager) Login(ctx context.Context, in domain.LoginRequest) (Snapshot, error) {
	if err := validation.Struct(in); err != nil {
		return m.Snapshot(), err
	}
	backend, err := m.requireBackend()
	if err != nil {
		return m.Snapshot(), err
	}
	resp, err := backend.Login(ctx, in)
	if err != nil {
		return m.Snapshot(), err
	}
	if err := m.adopt(ctx, resp.AccessToken); err != nil {
		return m.Snapshot(), err
	}
	return m.Refresh(ctx)
}

// Register creates an account and signs in with the token it returns.
func (m *Manager) Register(ctx context.Context, in domain.RegisterRequest) (Snapshot, error) {
	if err := validation.Struct(in); err != nil {
		return m.Snapshot(), err
	}
	backend, err := m.requireBackend()
	if err != nil {
		return m.Snapshot(), err
	}
	resp, err := backend.Register(ctx, in)
	if err != nil {
		return m.Snapshot(), err
	}
	if err := m.adopt(ctx, resp.AccessToken); err != nil {
		return m.Snapshot(), err
	}
	return m.Refresh(ctx)
}

// Refresh fetches the profile and the business list for the held token. Any
// failure signs the session out and clears the stored token.
func (m *Manager) Refresh(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	token := m.token
	backend := m.backend
	if token == "" {
		m.mu.Unlock()
		return m.Snapshot(), nil
	}
	if backend == nil {
		m.mu.Unlock()
		return m.Snapshot(), ErrNoBackend
	}
	if m.state == StateAnonymous {
		m.state = StateLoading
	}
	m.mu.Unlock()

	user, businesses, err := m.fetchProfile(ctx, backend)
	if err != nil {
		logging.Warn(m.logger, "session refresh failed", "error", err)
		if m.tokenIs(token) {
			m.signOut(ctx)
		}
		return m.Snapshot(), fmt.Errorf("session: refresh: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != token {
		return m.snapshotLocked(), nil
	}
	m.user = &user
	m.business = nil
	if len(businesses) > 0 {
		b := businesses[0]
		m.business = &b
	}
	m.state = StateAuthenticated
	logging.Info(m.logger, "session authenticated",
		logging.FieldState, string(m.state),
		logging.FieldCount, len(businesses),
	)
	return m.snapshotLocked(), nil
}

// Logout drops the token from memory and storage.
func (m *Manager) Logout(ctx context.Context) Snapshot {
	m.signOut(ctx)
	return m.Snapshot()
}

// Invalidate is called when the backend rejected the token mid-session.
func (m *Manager) Invalidate(ctx context.Context) {
	logging.Warn(m.logger, "backend rejected session token")
	m.signOut(ctx)
}

// SetBusiness marks a business as active, typically right after creating it.
func (m *Manager) SetBusiness(b domain.Business) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAnonymous {
		return
	}
	m.business = &b
}

// RequireAuthenticated fails with ErrUnauthenticated when no token is held and
// with ErrLoading while the profile is unresolved.
func (m *Manager) RequireAuthenticated() (Snapshot, error) {
	snap := m.Snapshot()
	switch snap.State {
	case StateAnonymous:
		return snap, ErrUnauthenticated
	case StateLoading:
		return snap, ErrLoading
	}
	return snap, nil
}

// RequireBusiness returns the active business of an authenticated session.
func (m *Manager) RequireBusiness() (domain.Business, error) {
	snap, err := m.RequireAuthenticated()
	if err != nil {
		return domain.Business{}, err
	}
	if snap.Business == nil {
		return domain.Business{}, ErrNoBusiness
	}
	return *snap.Business, nil
}

// RequireNoBusiness guards business onboarding.
func (m *Manager) RequireNoBusiness() error {
	snap, err := m.RequireAuthenticated()
	if err != nil {
		return err
	}
	if snap.HasBusiness {
		return ErrHasBusiness
	}
	return nil
}

func (m *Manager) fetchProfile(ctx context.Context, backend Backend) (domain.User, []domain.Business, error) {
	user, err := backend.Me(ctx)
	if err != nil {
		return domain.User{}, nil, err
	}
	businesses, err := backend.ListBusinesses(ctx)
	if err != nil {
		return domain.User{}, nil, err
	}
	return user, businesses, nil
}

func (m *Manager) adopt(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("session: backend returned an empty token")
	}
	if m.store != nil {
		if err := m.store.Save(ctx, token); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.token = token
	m.state = StateLoading
	m.user = nil
	m.business = nil
	m.mu.Unlock()
	return nil
}

func (m *Manager) signOut(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.state = StateAnonymous
	m.user = nil
	m.business = nil
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
			logging.Error(m.logger, "failed to clear stored token", err)
		}
	}
	if m.onSignOut != nil {
		m.onSignOut()
	}
}

func (m *Manager) tokenIs(token string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token == token
}

func (m *Manager) requireBackend() (Backend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.backend == nil {
		return nil, ErrNoBackend
	}
	return m.backend, nil
}
