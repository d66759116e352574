package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, call{method: http.MethodGet, route: "/users", path: "/users"}, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{method: http.MethodGet, route: "/users/:id", path: pathf("/users/%s", userID)}, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, userID string, in domain.UpdateUserInput) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{method: http.MethodPatch, route: "/users/:id", path: pathf("/users/%s", userID), body: in}, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, call{method: http.MethodDelete, route: "/users/:id", path: pathf("/users/%s", userID)}, nil)
}

func (c *Client) ListBusinessUsers(ctx context.Context, businessID string) ([]domain.BusinessUser, error) {
	var out []domain.BusinessUser
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/users",
		path:   pathf("/businesses/%s/users", businessID),
	}, &out)
	return out, err
}

func (c *Client) AddBusinessUser(ctx context.Context, businessID string, in domain.CreateBusinessUserInput) (domain.BusinessUser, error) {
	var out domain.BusinessUser
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/businesses/:id/users",
		path:   pathf("/businesses/%s/users", businessID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) UpdateBusinessUser(ctx context.Context, businessID, userID string, in domain.UpdateBusinessUserInput) (domain.BusinessUser, error) {
	var out domain.BusinessUser
	err := c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/businesses/:id/users/:userId",
		path:   pathf("/businesses/%s/users/%s", businessID, userID),
		body:   in,
	}, &out)
	return out, err
}

func (c *Client) RemoveBusinessUser(ctx context.Context, businessID, userID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/businesses/:id/users/:userId",
		path:   pathf("/businesses/%s/users/%s", businessID, userID),
	}, nil)
}
