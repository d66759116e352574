package bookplay

import "time"

const (
	defaultBaseURL     = "http://localhost:3000/api"
	defaultHTTPTimeout = 10 * time.Second
	errorSnippetLimit  = 512
	tracerName         = "github.com/preston-bernstein/bookplay-admin/internal/bookplay"
)
