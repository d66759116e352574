package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

func (c *Client) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	var out []domain.Business
	err := c.do(ctx, call{method: http.MethodGet, route: "/businesses", path: "/businesses"}, &out)
	return out, err
}

func (c *Client) GetBusiness(ctx context.Context, businessID string) (domain.Business, error) {
	var out domain.Business
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id",
		path:   pathf("/businesses/%s", businessID),
	}, &out)
	return out, err
}

func (c *Client) CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (domain.Business, error) {
	var out domain.Business
	err := c.do(ctx, call{method: http.MethodPost, route: "/businesses", path: "/businesses", body: in}, &out)
	return out, err
}

func (c *Client) UpdateBusiness(ctx context.Context, businessID string, in domain.UpdateBusinessInput) (domain.Business, error) {
	var out domain.Business
	err := c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/businesses/:id",
		path:   pathf("/businesses/%s", businessID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) DeleteBusiness(ctx context.Context, businessID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/businesses/:id",
		path:   pathf("/businesses/%s", businessID),
	}, nil)
}
