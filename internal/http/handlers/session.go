package handlers

import (
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/bookplay"
	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
)

// Session returns the current session state.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Snapshot(), h.logger)
}

// Login exchanges credentials for a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginRequest
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	snap, err := h.session.Login(r.Context(), in)
	if err != nil {
		if apiErr, ok := bookplay.AsAPIError(err); ok && apiErr.StatusCode == http.StatusUnauthorized {
			logging.Info(loggerFromContext(r, h.logger), "login rejected")
			writeError(w, r, http.StatusUnauthorized, "invalid email or password", h.logger)
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap, h.logger)
}

// Register creates an account and signs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterRequest
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	snap, err := h.session.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap, h.logger)
}

// Logout ends the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Logout(r.Context()), h.logger)
}

// RefreshSession re-resolves the profile for the held token.
func (h *Handler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	if h.session.Snapshot().State == session.StateAnonymous {
		h.fail(w, r, session.ErrUnauthenticated)
		return
	}
	snap, err := h.session.Refresh(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap, h.logger)
}
