package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/app/bookings"
	"github.com/preston-bernstein/bookplay-admin/internal/app/businesses"
	"github.com/preston-bernstein/bookplay-admin/internal/app/courts"
	"github.com/preston-bernstein/bookplay-admin/internal/assignment"
	"github.com/preston-bernstein/bookplay-admin/internal/bookplay"
	"github.com/preston-bernstein/bookplay-admin/internal/config"
	httpserver "github.com/preston-bernstein/bookplay-admin/internal/http"
	"github.com/preston-bernstein/bookplay-admin/internal/http/handlers"
	"github.com/preston-bernstein/bookplay-admin/internal/http/middleware"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/metrics"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/refresher"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
	"github.com/preston-bernstein/bookplay-admin/internal/tracing"
)

var (
	metricsSetup = metrics.Setup
	tracingSetup = tracing.Setup
	openStore    = session.OpenStore
)

// sessionRestorer resumes a persisted session at startup.
type sessionRestorer interface {
	Restore(ctx context.Context) (session.Snapshot, error)
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         *querycache.Cache
	session       sessionRestorer
	store         io.Closer
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	metricsStop   func(context.Context) error
	tracingStop   func(context.Context) error
}

// services groups the application services behind the handlers.
type services struct {
	bookings   *bookings.Service
	courts     *courts.Service
	businesses *businesses.Service
	assignment *assignment.Service
}

// New wires the session, backend client, cache, services and refresher.
// It fails only when the session store cannot be opened.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	tracingStop := buildTracing(ctx, cfg, logger)

	store, err := openStore(cfg.Session.Store, cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	cache := querycache.New(cfg.Cache.TTL, recorder)
	mgr := session.NewManager(session.Config{
		Store:     store,
		Logger:    logger,
		OnSignOut: cache.Clear,
	})
	client := bookplay.NewClient(bookplay.Config{
		BaseURL:    cfg.Backend.APIURL(),
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Tokens:     mgr,
		Metrics:    recorder,
		Logger:     logger,
	})
	mgr.SetBackend(client)

	svcs := buildServices(client, cache, logger)

	var ref Refresher
	if cfg.Refresher.Enabled {
		ref = buildRefresher(cfg, mgr, client, cache, logger, recorder)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		cache:         cache,
		session:       mgr,
		store:         store,
		httpServer:    buildHTTPServer(cfg, mgr, svcs, ref, logger, recorder),
		metricsServer: metricsSrv,
		refresher:     ref,
		metricsStop:   metricsShutdown,
		tracingStop:   tracingStop,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, sess sessionRestorer, httpSrv httpServer, ref Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		session:    sess,
		httpServer: httpSrv,
		refresher:  ref,
	}
}

func buildServices(client *bookplay.Client, cache *querycache.Cache, logger *slog.Logger) services {
	return services{
		bookings:   bookings.NewService(client, cache, logger),
		courts:     courts.NewService(client, cache, logger),
		businesses: businesses.NewService(client, cache, logger),
		assignment: assignment.NewService(client, cache, logger),
	}
}

// refreshTargets lists the business-scoped queries the admin screens open with.
func refreshTargets(client *bookplay.Client) []refresher.Target {
	return []refresher.Target{
		refresher.TargetFor("business", querycache.BusinessProfileKey, client.GetBusiness),
		refresher.TargetFor("bookings", querycache.BookingsKey, client.ListBookings),
		refresher.TargetFor("courts", querycache.CourtsKey, client.ListCourts),
		refresher.TargetFor("availability_rules", querycache.AvailabilityRulesKey, client.ListAvailabilityRules),
		refresher.TargetFor("exception_rules", querycache.ExceptionRulesKey, client.ListExceptionRules),
	}
}

func buildRefresher(cfg config.Config, mgr *session.Manager, client *bookplay.Client, cache *querycache.Cache, logger *slog.Logger, recorder *metrics.Recorder) *refresher.Refresher {
	return refresher.New(mgr, cache, refreshTargets(client), logger, recorder, cfg.Refresher.Interval)
}

func buildHTTPServer(cfg config.Config, mgr *session.Manager, svcs services, ref Refresher, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() refresher.Status
	if ref != nil {
		statusFn = ref.Status
	}

	handler := handlers.NewHandler(handlers.Deps{
		Session:    mgr,
		Bookings:   svcs.bookings,
		Courts:     svcs.courts,
		Businesses: svcs.businesses,
		Assignment: svcs.assignment,
		Status:     statusFn,
		Logger:     logger,
	})
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(":"+cfg.Port, wrapped)
}

// Run restores the session, starts the refresher and HTTP server, then waits
// for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.restoreSession(ctx)
	s.startServer(stop)
	if s.refresher != nil {
		s.refresher.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// restoreSession resumes a persisted token. Failures leave the session
// anonymous and never block startup.
func (s *Server) restoreSession(ctx context.Context) {
	if s.session == nil {
		return
	}
	snap, err := s.session.Restore(ctx)
	if err != nil {
		logging.Warn(s.logger, "session restore failed", "error", err)
		return
	}
	logging.Info(s.logger, "session restored", logging.FieldState, string(snap.State))
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.refresher != nil {
		if err := s.refresher.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop refresher", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.tracingStop != nil {
		if err := s.tracingStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "tracing shutdown failed", "error", err)
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "session store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// buildTracing installs span export for backend calls. Failures only disable tracing.
func buildTracing(ctx context.Context, cfg config.Config, logger *slog.Logger) func(context.Context) error {
	shutdown, err := tracingSetup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(logger, "tracing setup failed, continuing without spans", "error", err)
		return nil
	}
	return shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
