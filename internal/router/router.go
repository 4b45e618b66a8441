// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/go-items/internal/handler"
	"github.com/deppfellow/go-items/internal/middleware"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/deppfellow/go-items/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the error handler and every route.
//
// Middleware order matters: the request ID must exist before tracing and
// the context logger read it, and the request logger and rate limiter use
// the context logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.JSONSerializer = validation.JSONSerializer{}

	router.Pre(middlewares.Global.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, s.Config.Server.StaticDir)
	registerItemRoutes(router, h)

	return router
}
