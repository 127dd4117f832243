// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the request id, the transaction and the user must be
	// known before the request logger is built.
	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Auth.Authenticate,
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerAuthRoutes(router, h, m)
	registerCompanyRoutes(router, h, m)
	registerJobRoutes(router, h, m)
	registerUserRoutes(router, h, m)

	return router
}
