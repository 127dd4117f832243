package middleware

import (
	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/logger"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	ClaimsKey   = "claims"
	LoggerKey   = "logger"

	roleAdmin = "admin"
	roleUser  = "user"
)

// ContextEnhancer attaches a request-scoped logger carrying request id,
// route, client ip, trace ids and the authenticated user.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext must run after RequestID and Authenticate to see their values.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			if userRole, ok := c.Get(UserRoleKey).(string); ok && userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			// Code below the handlers reads it back with zerolog.Ctx.
			ctx := contextLogger.WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func setUser(c echo.Context, claims *token.Claims) {
	role := roleUser
	if claims.IsAdmin {
		role = roleAdmin
	}

	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.Username)
	c.Set(UserRoleKey, role)
}

// GetClaims returns the verified token claims, or nil for anonymous requests.
func GetClaims(c echo.Context) *token.Claims {
	if claims, ok := c.Get(ClaimsKey).(*token.Claims); ok {
		return claims
	}
	return nil
}

// GetUserID returns the authenticated username, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
