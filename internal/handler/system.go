package handler

import (
	"net/http"
	"path/filepath"

	"github.com/deppfellow/go-items/internal/model"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/labstack/echo/v4"
)

// SystemHandler serves the landing page and the API root probe.
type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

// APIRoot confirms the API is reachable without touching the database.
func (h *SystemHandler) APIRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "API root is working"})
}

// Index serves index.html from the static directory.
func (h *SystemHandler) Index(c echo.Context) error {
	return c.File(filepath.Join(h.server.Config.Server.StaticDir, "index.html"))
}
