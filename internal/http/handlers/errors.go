package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/bookplay-admin/internal/assignment"
	"github.com/preston-bernstein/bookplay-admin/internal/bookplay"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

const upstreamFallback = "the booking backend did not complete the request"

type partialDetails struct {
	Step   string `json:"step"`
	RuleID string `json:"ruleId"`
}

// fail maps a service error onto a response. An upstream 401/403 signs the
// session out before answering.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFromContext(r, h.logger)

	// The orphaned rule id must reach the caller whatever the cause was.
	if pErr, ok := assignment.AsPartialFailure(err); ok {
		logging.Warn(logger, "rule created but not assigned",
			logging.FieldRuleID, pErr.RuleID,
			"error", pErr.Err,
		)
		details := partialDetails{Step: pErr.Step, RuleID: pErr.RuleID}
		if bookplay.IsUnauthorized(pErr.Err) {
			h.session.Invalidate(r.Context())
			writeErrorDetails(w, r, http.StatusUnauthorized, "session expired", details, logger)
			return
		}
		writeErrorDetails(w, r, http.StatusBadGateway, "rule was created but could not be assigned to the court", details, logger)
		return
	}

	if vErr, ok := validation.AsError(err); ok {
		writeErrorDetails(w, r, http.StatusBadRequest, "validation failed", vErr.Fields, logger)
		return
	}
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "not authenticated", logger)
		return
	case errors.Is(err, session.ErrLoading):
		writeError(w, r, http.StatusServiceUnavailable, "session is loading", logger)
		return
	case errors.Is(err, session.ErrNoBusiness):
		writeErrorDetails(w, r, http.StatusConflict, "no business has been created yet", map[string]string{"next": "new-account"}, logger)
		return
	case errors.Is(err, session.ErrHasBusiness):
		writeError(w, r, http.StatusConflict, "a business already exists for this account", logger)
		return
	case errors.Is(err, session.ErrNoBackend):
		writeError(w, r, http.StatusServiceUnavailable, "backend not configured", logger)
		return
	case errors.Is(err, assignment.ErrRuleNotFound):
		writeError(w, r, http.StatusNotFound, "rule not found", logger)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "request cancelled", logger)
		return
	}

	if bookplay.IsUnauthorized(err) {
		h.session.Invalidate(r.Context())
		writeError(w, r, http.StatusUnauthorized, "session expired", logger)
		return
	}
	if rlErr, ok := bookplay.AsRateLimitError(err); ok {
		if rlErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
		}
		writeError(w, r, http.StatusBadGateway, "the booking backend is rate limiting requests", logger)
		return
	}
	if apiErr, ok := bookplay.AsAPIError(err); ok {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			writeError(w, r, http.StatusNotFound, messageOr(apiErr.Message, "not found"), logger)
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			writeError(w, r, apiErr.StatusCode, messageOr(apiErr.Message, upstreamFallback), logger)
		default:
			logging.Error(logger, "backend request failed", err)
			writeError(w, r, http.StatusBadGateway, messageOr(apiErr.Message, upstreamFallback), logger)
		}
		return
	}

	logging.Error(logger, "request failed", err)
	writeError(w, r, http.StatusBadGateway, upstreamFallback, logger)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, message, loggerFromContext(r, h.logger))
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
