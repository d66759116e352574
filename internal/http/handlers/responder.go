package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/http/middleware"
	"github.com/preston-bernstein/bookplay-admin/internal/http/requestutil"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorDetails(w, r, status, message, nil, logger)
}

func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, message string, details any, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = requestutil.Incoming(r)
	}
	writeJSON(w, status, errorBody{Error: message, RequestID: reqID, Details: details}, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// decodeJSON reads a bounded JSON body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
