package bookplay

import "context"

// TokenSource yields the bearer token for outgoing requests. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken always yields the same token.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

type tokenKey struct{}

type tokenOverride struct {
	token string
}

// WithToken pins the token used for requests made with ctx, taking precedence
// over the client's TokenSource. An empty token forces an anonymous request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, tokenOverride{token: token})
}

func tokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	o, ok := ctx.Value(tokenKey{}).(tokenOverride)
	return o.token, ok
}
