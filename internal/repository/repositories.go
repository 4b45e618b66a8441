package repository

import (
	"fmt"

	"github.com/deppfellow/go-items/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Item ItemRepository
}

// NewRepositories picks the item repository matching the opened database.
func NewRepositories(s *server.Server) (*Repositories, error) {
	switch {
	case s.DB.Pool != nil:
		return &Repositories{Item: NewPostgresItemRepository(s.DB.Pool)}, nil
	case s.DB.SQL != nil:
		return &Repositories{Item: NewSQLiteItemRepository(s.DB.SQL)}, nil
	default:
		return nil, fmt.Errorf("no database handle for driver %q", s.DB.Driver)
	}
}
