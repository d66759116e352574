package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// Register creates an account and returns it with its first access token.
func (c *Client) Register(ctx context.Context, in domain.RegisterRequest) (domain.RegisterResponse, error) {
	var out domain.RegisterResponse
	err := c.do(WithToken(ctx, ""), call{method: http.MethodPost, route: "/auth/register", path: "/auth/register", body: in}, &out)
	return out, err
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, in domain.LoginRequest) (domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := c.do(WithToken(ctx, ""), call{method: http.MethodPost, route: "/auth/login", path: "/auth/login", body: in}, &out)
	return out, err
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{method: http.MethodGet, route: "/auth/me", path: "/auth/me"}, &out)
	return out, err
}
