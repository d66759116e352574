package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

func (c *Client) ListCourts(ctx context.Context, businessID string) ([]domain.Court, error) {
	var out []domain.Court
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/courts",
		path:   pathf("/businesses/%s/courts", businessID),
	}, &out)
	return out, err
}

func (c *Client) GetCourt(ctx context.Context, businessID, courtID string) (domain.Court, error) {
	var out domain.Court
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/courts/:courtId",
		path:   pathf("/businesses/%s/courts/%s", businessID, courtID),
	}, &out)
	return out, err
}

func (c *Client) CreateCourt(ctx context.Context, businessID string, in domain.CreateCourtInput) (domain.Court, error) {
	var out domain.Court
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/businesses/:id/courts",
		path:   pathf("/businesses/%s/courts", businessID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) UpdateCourt(ctx context.Context, businessID, courtID string, in domain.UpdateCourtInput) (domain.Court, error) {
	var out domain.Court
	err := c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/businesses/:id/courts/:courtId",
		path:   pathf("/businesses/%s/courts/%s", businessID, courtID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) DeleteCourt(ctx context.Context, businessID, courtID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/businesses/:id/courts/:courtId",
		path:   pathf("/businesses/%s/courts/%s", businessID, courtID),
	}, nil)
}
