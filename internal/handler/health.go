package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]healthCheck `json:"checks"`
}

// CheckHealth pings the database and Redis. Only the database decides the
// overall status: without Redis the API still serves, minus welcome emails.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]healthCheck),
	}

	ctx := c.Request().Context()

	dbCheck := h.check(ctx, &logger, "database", h.server.DB.Pool.Ping)
	response.Checks["database"] = dbCheck

	if h.server.Redis != nil {
		response.Checks["redis"] = h.check(ctx, &logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if dbCheck.Status != "healthy" {
		response.Status = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) check(ctx context.Context, logger *zerolog.Logger, name string, ping func(context.Context) error) healthCheck {
	timeout := defaultHealthCheckTimeout
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err == nil {
		return healthCheck{Status: "healthy", ResponseTime: elapsed.String()}
	}

	logger.Error().
		Err(err).
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent(
			"HealthCheckError",
			map[string]any{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			},
		)
	}

	return healthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
