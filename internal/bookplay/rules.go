package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

func (c *Client) ListAvailabilityRules(ctx context.Context, businessID string) ([]domain.AvailabilityRule, error) {
	var out []domain.AvailabilityRule
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/availability-rules",
		path:   pathf("/businesses/%s/availability-rules", businessID),
	}, &out)
	return out, err
}

func (c *Client) GetAvailabilityRule(ctx context.Context, businessID, ruleID string) (domain.AvailabilityRule, error) {
	var out domain.AvailabilityRule
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/availability-rules/:ruleId",
		path:   pathf("/businesses/%s/availability-rules/%s", businessID, ruleID),
	}, &out)
	return out, err
}

func (c *Client) CreateAvailabilityRule(ctx context.Context, businessID string, in domain.CreateAvailabilityRuleInput) (domain.AvailabilityRule, error) {
	var out domain.AvailabilityRule
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/businesses/:id/availability-rules",
		path:   pathf("/businesses/%s/availability-rules", businessID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) UpdateAvailabilityRule(ctx context.Context, businessID, ruleID string, in domain.UpdateAvailabilityRuleInput) (domain.AvailabilityRule, error) {
	var out domain.AvailabilityRule
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/businesses/:id/availability-rules/:ruleId",
		path:   pathf("/businesses/%s/availability-rules/%s", businessID, ruleID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) DeleteAvailabilityRule(ctx context.Context, businessID, ruleID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/businesses/:id/availability-rules/:ruleId",
		path:   pathf("/businesses/%s/availability-rules/%s", businessID, ruleID),
	}, nil)
}

func (c *Client) ListExceptionRules(ctx context.Context, businessID string) ([]domain.ExceptionRule, error) {
	var out []domain.ExceptionRule
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/exception-rules",
		path:   pathf("/businesses/%s/exception-rules", businessID),
	}, &out)
	return out, err
}

func (c *Client) GetExceptionRule(ctx context.Context, businessID, ruleID string) (domain.ExceptionRule, error) {
	var out domain.ExceptionRule
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/exception-rules/:ruleId",
		path:   pathf("/businesses/%s/exception-rules/%s", businessID, ruleID),
	}, &out)
	return out, err
}

func (c *Client) CreateExceptionRule(ctx context.Context, businessID string, in domain.CreateExceptionRuleInput) (domain.ExceptionRule, error) {
	var out domain.ExceptionRule
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/businesses/:id/exception-rules",
		path:   pathf("/businesses/%s/exception-rules", businessID),
		body:   in,
	}, &out)
	return out, err
}

// UpdateExceptionRule submits a partial update. A non-nil CourtIDs replaces
// the rule's whole court list; concurrent writers race and the last one wins.
func (c *Client) UpdateExceptionRule(ctx context.Context, businessID, ruleID string, in domain.UpdateExceptionRuleInput) (domain.ExceptionRule, error) {
	var out domain.ExceptionRule
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/businesses/:id/exception-rules/:ruleId",
		path:   pathf("/businesses/%s/exception-rules/%s", businessID, ruleID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) DeleteExceptionRule(ctx context.Context, businessID, ruleID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/businesses/:id/exception-rules/:ruleId",
		path:   pathf("/businesses/%s/exception-rules/%s", businessID, ruleID),
	}, nil)
}
