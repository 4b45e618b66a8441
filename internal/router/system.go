package router

import (
	"github.com/deppfellow/go-items/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the item API:
// the landing page, static assets, health status, docs and the API root probe.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, staticDir string) {
	r.GET("/", h.System.Index)

	// index.html, openapi.html and openapi.json.
	r.Static("/static", staticDir)

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.GET("/api-root", h.System.APIRoot)
}
