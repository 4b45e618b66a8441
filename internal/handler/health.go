package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/go-items/internal/config"
	"github.com/deppfellow/go-items/internal/middleware"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

type checkResult struct {
	Status       string `json:"status"`
	Driver       string `json:"driver,omitempty"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise. With health checks disabled it only reports the process is up.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	report := healthReport{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	cfg := h.server.Config.Observability.HealthChecks
	if cfg.Enabled && slices.Contains(cfg.Checks, config.CheckDatabase) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		defer cancel()

		result := h.checkDatabase(ctx, logger)
		report.Checks[config.CheckDatabase] = result
		if result.Status != statusHealthy {
			report.Status = statusUnhealthy
		}
	}

	if report.Status != statusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, report)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger zerolog.Logger) checkResult {
	start := time.Now()
	err := h.server.DB.Ping(ctx)
	elapsed := time.Since(start)

	result := checkResult{
		Status:       statusHealthy,
		Driver:       h.server.DB.Driver,
		ResponseTime: elapsed.String(),
	}
	if err == nil {
		logger.Debug().Dur("response_time", elapsed).Msg("database health check passed")
		return result
	}

	result.Status = statusUnhealthy
	result.Error = err.Error()
	logger.Error().Err(err).Dur("response_time", elapsed).Msg("database health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       config.CheckDatabase,
			"driver":           h.server.DB.Driver,
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
	return result
}
