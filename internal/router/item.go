package router

import (
	"github.com/deppfellow/go-items/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerItemRoutes mounts the item collection under /items. Trailing
// slashes are stripped before routing, so "/items/" and "/items/1/" match too.
func registerItemRoutes(r *echo.Echo, h *handler.Handlers) {
	items := r.Group("/items")

	items.POST("", h.Item.CreateItem)
	items.GET("", h.Item.ListItems)

	items.GET("/:id", h.Item.GetItem)
	items.PUT("/:id", h.Item.UpdateItem)
	items.DELETE("/:id", h.Item.DeleteItem)
}
