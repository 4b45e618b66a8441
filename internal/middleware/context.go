package middleware

import (
	"github.com/deppfellow/go-items/internal/logger"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// ContextEnhancer attaches a request-scoped logger to the request context.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext tags the logger with request_id, method, route and client
// ip, plus trace.id and span.id inside a New Relic transaction. It must run
// after RequestID and NewRelicMiddleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(req.Context()); txn != nil {
				requestLogger = logger.WithTraceContext(requestLogger, txn)
			}

			c.SetRequest(req.WithContext(requestLogger.WithContext(req.Context())))
			return next(c)
		}
	}
}

// GetLogger returns the request-scoped logger, or a disabled logger when
// EnhanceContext did not run. Code holding only a context.Context uses
// zerolog.Ctx for the same logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	return zerolog.Ctx(c.Request().Context())
}
