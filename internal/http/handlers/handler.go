package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/app/bookings"
	"github.com/preston-bernstein/bookplay-admin/internal/app/businesses"
	"github.com/preston-bernstein/bookplay-admin/internal/app/courts"
	"github.com/preston-bernstein/bookplay-admin/internal/assignment"
	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/refresher"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
)

type nowFunc func() time.Time

// Deps are the services behind the admin API.
type Deps struct {
	Session    *session.Manager
	Bookings   *bookings.Service
	Courts     *courts.Service
	Businesses *businesses.Service
	Assignment *assignment.Service
	Status     func() refresher.Status
	Logger     *slog.Logger
}

// Handler wires HTTP routes to the application services.
type Handler struct {
	session    *session.Manager
	bookings   *bookings.Service
	courts     *courts.Service
	businesses *businesses.Service
	assignment *assignment.Service
	statusFn   func() refresher.Status
	logger     *slog.Logger
	now        nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(d Deps) *Handler {
	return &Handler{
		session:    d.Session,
		bookings:   d.Bookings,
		courts:     d.Courts,
		businesses: d.Businesses,
		assignment: d.Assignment,
		statusFn:   d.Status,
		logger:     d.Logger,
		now:        time.Now,
	}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready fails while the session profile is loading or the refresher keeps failing.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.session.Snapshot().State == session.StateLoading {
		writeError(w, r, http.StatusServiceUnavailable, "session is loading", h.logger)
		return
	}
	if h.statusFn != nil {
		status := h.statusFn()
		if !status.LastAttempt.IsZero() && !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// activeBusiness resolves the session's business or answers with the guard error.
func (h *Handler) activeBusiness(w http.ResponseWriter, r *http.Request) (domain.Business, bool) {
	business, err := h.session.RequireBusiness()
	if err != nil {
		h.fail(w, r, err)
		return domain.Business{}, false
	}
	return business, true
}
