package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// ListCourtAvailabilityRules returns the weekly rules attached to a court.
func (c *Client) ListCourtAvailabilityRules(ctx context.Context, courtID string) ([]domain.AvailabilityRule, error) {
	var out []domain.AvailabilityRule
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/courts/:courtId/availability-rules",
		path:   pathf("/courts/%s/availability-rules", courtID),
	}, &out)
	return out, err
}

func (c *Client) AddCourtAvailability(ctx context.Context, courtID string, in domain.AddCourtAvailabilityInput) (domain.CourtAvailability, error) {
	var out domain.CourtAvailability
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/courts/:courtId/availability-rules",
		path:   pathf("/courts/%s/availability-rules", courtID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) RemoveCourtAvailability(ctx context.Context, courtID, ruleID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/courts/:courtId/availability-rules/:ruleId",
		path:   pathf("/courts/%s/availability-rules/%s", courtID, ruleID),
	}, nil)
}

// ListCourtExceptions returns the exception join rows of a court.
func (c *Client) ListCourtExceptions(ctx context.Context, courtID string) ([]domain.CourtException, error) {
	var out []domain.CourtException
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/courts/:courtId/exception-rules",
		path:   pathf("/courts/%s/exception-rules", courtID),
	}, &out)
	return out, err
}

func (c *Client) AddCourtException(ctx context.Context, courtID string, in domain.AddCourtExceptionInput) (domain.CourtException, error) {
	var out domain.CourtException
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/courts/:courtId/exception-rules",
		path:   pathf("/courts/%s/exception-rules", courtID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) RemoveCourtException(ctx context.Context, courtID, ruleID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/courts/:courtId/exception-rules/:ruleId",
		path:   pathf("/courts/%s/exception-rules/%s", courtID, ruleID),
	}, nil)
}
