// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/go-items/internal/repository"
	"github.com/deppfellow/go-items/internal/server"
)

type Services struct {
	Item *ItemService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	itemService := NewItemService(s, repos.Item)

	return &Services{
		Item: itemService,
	}, nil
}
