package middleware

import (
	"time"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	// Per client IP on the credential endpoints.
	authRate  = rate.Limit(5)
	authBurst = 10
)

// ErrRateLimited is returned once a client exceeds its allowance.
var ErrRateLimited = errs.NewTooManyRequestsError("Too many requests, try again later")

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// AuthLimiter throttles /auth per client IP with a token bucket.
func (r *RateLimitMiddleware) AuthLimiter() echo.MiddlewareFunc {
	return r.limiter("/auth", authRate, authBurst)
}

func (r *RateLimitMiddleware) limiter(endpoint string, limit rate.Limit, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(endpoint)
			GetLogger(c).Warn().
				Str("endpoint", endpoint).
				Str("ip", identifier).
				Msg("rate limit exceeded")
			return ErrRateLimited
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
