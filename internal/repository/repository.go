// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deppfellow/go-items/internal/model"
	"github.com/deppfellow/go-items/internal/sqlerr"
)

// ErrItemNotFound is returned when no row has the requested id.
//
// The "table:items:" marker lets sqlerr.HandleError turn it into
// 404 "Item not found".
var ErrItemNotFound = fmt.Errorf("%sitems: %w", sqlerr.TablePrefix, sql.ErrNoRows)

// ItemRepository is the record store for items.
//
// Every call acquires its own connection and releases it before returning,
// whatever the outcome. Each call touches at most one row; concurrent writes
// to the same id are last-writer-wins.
type ItemRepository interface {
	// CreateItem inserts a row and returns it with its new id.
	CreateItem(ctx context.Context, name string, description *string) (*model.Item, error)

	// ListItems returns every row ordered by id. Never nil.
	ListItems(ctx context.Context) ([]model.Item, error)

	GetItemByID(ctx context.Context, id int64) (*model.Item, error)

	// UpdateItem overwrites name and description of an existing row.
	UpdateItem(ctx context.Context, id int64, name string, description *string) (*model.Item, error)

	DeleteItem(ctx context.Context, id int64) error
}
