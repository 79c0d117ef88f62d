package middleware

import (
	"go-mini-sites/internal/config"
	"net/http"

	"github.com/go-chi/httprate"
)

// RateLimit limits requests per client IP. A disabled config returns a
// pass-through middleware.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
