package refresher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/metrics"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
)

const (
	defaultInterval = time.Minute
	maxConcurrency  = 4
)

// ErrIdle marks a cycle skipped because no business is active.
var ErrIdle = errors.New("refresher: no active business")

// SessionSource exposes the current session.
type SessionSource interface {
	Snapshot() session.Snapshot
}

// Target is one business-scoped query kept warm in the cache.
type Target struct {
	Name string
	Key  func(businessID string) string
	Load func(ctx context.Context, businessID string) (any, error)
}

// TargetFor adapts a typed loader to a Target.
func TargetFor[T any](name string, key func(string) string, load func(context.Context, string) (T, error)) Target {
	return Target{
		Name: name,
		Key:  key,
		Load: func(ctx context.Context, businessID string) (any, error) {
			return load(ctx, businessID)
		},
	}
}

// Refresher reloads the active business's queries on an interval so reads
// are served from a warm cache.
type Refresher struct {
	session  SessionSource
	cache    *querycache.Cache
	targets  []Target
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	BusinessID          string    `json:"businessId,omitempty"`
}

// IsReady reports whether the loop has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher.
func New(sess SessionSource, cache *querycache.Cache, targets []Target, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		session:  sess,
		cache:    cache,
		targets:  targets,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		logging.Info(r.logger, "refresher started", logging.FieldDurationMS, r.interval.Milliseconds())
		r.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.ticker.C:
				r.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

// RefreshNow runs a single cycle synchronously.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	return r.runOnce(ctx)
}

func (r *Refresher) runOnce(ctx context.Context) error {
	snap := r.session.Snapshot()
	if snap.State != session.StateAuthenticated || !snap.HasBusiness {
		logging.Debug(r.logger, "refresher idle", logging.FieldState, string(snap.State))
		return ErrIdle
	}
	businessID := snap.Business.ID

	start := r.now()
	r.recordAttempt(start, businessID)
	err := r.refresh(ctx, businessID)
	elapsed := time.Since(start)
	r.metrics.RecordRefreshCycle(elapsed, err)
	if err != nil {
		logging.Error(r.logger, "refresh cycle failed", err,
			logging.FieldBusinessID, businessID,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		r.recordFailure(err, start)
		return err
	}

	r.recordSuccess(start)
	logging.Info(r.logger, "refresh cycle complete",
		logging.FieldBusinessID, businessID,
		logging.FieldCount, len(r.targets),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return nil
}

func (r *Refresher) refresh(ctx context.Context, businessID string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for _, target := range r.targets {
		g.Go(func() error {
			gen := r.cache.Generation()
			value, err := target.Load(gctx, businessID)
			if err != nil {
				return fmt.Errorf("%s: %w", target.Name, err)
			}
			// A sign-out or business switch during the cycle must not
			// repopulate the cache with the previous business's data.
			if current := r.session.Snapshot(); !current.HasBusiness || current.Business.ID != businessID {
				return nil
			}
			// A mutation that invalidated the key mid-load wins over this result.
			if !r.cache.SetIfUnchanged(target.Key(businessID), gen, value) {
				logging.Debug(r.logger, "refresh result superseded",
					logging.FieldBusinessID, businessID,
					"target", target.Name,
				)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) recordAttempt(at time.Time, businessID string) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
	r.status.BusinessID = businessID
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
