package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/token"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Auth: config.AuthConfig{SecretKey: testSecret, TokenTTL: time.Hour},
		},
		Logger: &logger,
	}
}

func issue(t *testing.T, secret, username string, isAdmin bool) string {
	t.Helper()
	signed, err := token.NewManager(secret, time.Hour).Issue(username, isAdmin)
	require.NoError(t, err)
	return signed
}

// run sends a request through Authenticate and guard to a handler that
// answers 200, and returns the error the chain produced.
func run(t *testing.T, guard echo.MiddlewareFunc, authHeader, username string) error {
	t.Helper()

	auth := NewAuthMiddleware(newTestServer())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/users/"+username, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues(username)

	h := auth.Authenticate(guard(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	return h(c)
}

func TestAuthenticateStoresClaims(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "u1", true))
	c := e.NewContext(req, httptest.NewRecorder())

	var claims *token.Claims
	err := auth.Authenticate(func(c echo.Context) error {
		claims = GetClaims(c)
		return nil
	})(c)

	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "u1", GetUserID(c))
	assert.Equal(t, "admin", c.Get(UserRoleKey))
}

func TestAuthenticateIgnoresBadTokens(t *testing.T) {
	for name, header := range map[string]string{
		"none":         "",
		"wrong secret": "Bearer " + issue(t, "other-secret", "u1", true),
		"garbage":      "Bearer not-a-token",
		"basic scheme": "Basic dTE6cGFzc3dvcmQ=",
	} {
		t.Run(name, func(t *testing.T) {
			auth := NewAuthMiddleware(newTestServer())
			e := echo.New()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			err := auth.Authenticate(func(c echo.Context) error {
				called = true
				assert.Nil(t, GetClaims(c))
				return nil
			})(c)

			require.NoError(t, err)
			assert.True(t, called)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	assert.NoError(t, run(t, auth.RequireAuth, "Bearer "+issue(t, testSecret, "u1", false), "u1"))
	assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(run(t, auth.RequireAuth, "", "u1")))
}

func TestRequireAdmin(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	assert.NoError(t, run(t, auth.RequireAdmin, "Bearer "+issue(t, testSecret, "admin", true), "u1"))
	assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(run(t, auth.RequireAdmin, "Bearer "+issue(t, testSecret, "u1", false), "u1")))
	assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(run(t, auth.RequireAdmin, "", "u1")))
}

func TestRequireAdminOrSelf(t *testing.T) {
	guard := NewAuthMiddleware(newTestServer()).RequireAdminOrSelf("username")

	t.Run("admin", func(t *testing.T) {
		assert.NoError(t, run(t, guard, "Bearer "+issue(t, testSecret, "admin", true), "u1"))
	})

	t.Run("same user", func(t *testing.T) {
		assert.NoError(t, run(t, guard, "Bearer "+issue(t, testSecret, "u1", false), "u1"))
	})

	t.Run("other user", func(t *testing.T) {
		err := run(t, guard, "Bearer "+issue(t, testSecret, "u2", false), "u1")
		assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(err))
	})

	t.Run("anonymous", func(t *testing.T) {
		err := run(t, guard, "", "u1")
		assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(err))
	})
}

func TestBearerToken(t *testing.T) {
	raw, ok := bearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", raw)

	raw, ok = bearerToken("bearer   abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", raw)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)

	_, ok = bearerToken("abc")
	assert.False(t, ok)
}
