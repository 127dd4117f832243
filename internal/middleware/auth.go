package middleware

import (
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned by every guard. Insufficient privileges are
// reported as 401 as well, not 403.
var ErrUnauthorized = errs.NewUnauthorizedError("Unauthorized", false)

// AuthMiddleware verifies bearer tokens and guards routes by role.
type AuthMiddleware struct {
	server *server.Server
	tokens *token.Manager
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: token.NewManager(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTL),
	}
}

// Authenticate stores the claims of a valid bearer token in the Echo
// context. A missing or invalid token is not an error: the request
// continues anonymous and the route guards decide.
func (auth *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return next(c)
		}

		claims, err := auth.tokens.Verify(raw)
		if err != nil {
			auth.server.Logger.Debug().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("ignoring invalid bearer token")
			return next(c)
		}

		setUser(c, claims)
		return next(c)
	}
}

// RequireAuth admits any logged-in user.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetClaims(c) == nil {
			return ErrUnauthorized
		}
		return next(c)
	}
}

// RequireAdmin admits admins only.
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin {
			return ErrUnauthorized
		}
		return next(c)
	}
}

// RequireAdminOrSelf admits admins and the user named by the path
// parameter param.
func (auth *AuthMiddleware) RequireAdminOrSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return ErrUnauthorized
			}
			if !claims.IsAdmin && claims.Username != c.Param(param) {
				return ErrUnauthorized
			}
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
