package middleware

import (
	"lifehub-assistant/config"
	"lifehub-assistant/pkg/log"
)

// Middleware bundles the cross-cutting gin middlewares of the service.
type Middleware struct {
	l         log.Logger
	rateLimit config.RateLimitConfig
	limiter   *rateLimiter
}

// New creates the middleware bundle.
func New(l log.Logger, rateLimit config.RateLimitConfig) Middleware {
	return Middleware{
		l:         l,
		rateLimit: rateLimit,
		limiter:   newRateLimiter(rateLimit.RequestsPerMin),
	}
}
