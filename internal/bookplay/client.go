package bookplay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/metrics"
)

// Config controls how the client reaches the Book & Play REST API.
type Config struct {
	// BaseURL is the API root including the /api prefix.
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Metrics    *metrics.Recorder
	Logger     *slog.Logger
}

// Client is a typed REST client for the Book & Play backend.
type Client struct {
	baseURL    string
	httpClient httpDoer
	tokens     TokenSource
	metrics    *metrics.Recorder
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		tokens:     cfg.Tokens,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		tracer:     otel.Tracer(tracerName),
		now:        time.Now,
	}
}

// call describes one backend request. route is the path template used to
// label metrics and spans, path the concrete request path.
type call struct {
	method string
	route  string
	path   string
	body   any
}

func (c call) endpoint() string {
	return c.method + " " + c.route
}

func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	endpoint := cl.endpoint()
	ctx, span := c.tracer.Start(ctx, endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("http.route", cl.route),
		),
	)
	start := c.now()
	defer func() {
		duration := c.now().Sub(start)
		c.metrics.RecordBackendCall(endpoint, duration, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logging.Debug(c.logger, "backend call failed",
				logging.FieldEndpoint, endpoint,
				logging.FieldDurationMS, duration.Milliseconds(),
				"error", err,
			)
		}
		span.End()
	}()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bookplay: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusTooManyRequests {
		rlErr := &RateLimitError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header, c.now()),
			Message:    readErrorMessage(resp.Body),
		}
		c.metrics.RecordRateLimit(endpoint, rlErr.RetryAfter)
		return rlErr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     cl.method,
			Path:       cl.path,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("bookplay: decode %s: %w", endpoint, decodeErr)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("bookplay: encode %s: %w", cl.endpoint(), err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.resolveToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("bookplay: token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func (c *Client) resolveToken(ctx context.Context) (string, error) {
	if token, ok := tokenFromContext(ctx); ok {
		return token, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token(ctx)
}
