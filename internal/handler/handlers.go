package handler

import (
	"github.com/deppfellow/go-items/internal/server"
	"github.com/deppfellow/go-items/internal/service"
)

// Handlers groups every HTTP handler so router setup receives a single value.
type Handlers struct {
	Item    *ItemHandler
	System  *SystemHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Item:    NewItemHandler(s, services.Item),
		System:  NewSystemHandler(s),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
