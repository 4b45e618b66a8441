package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/go-items/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgresItemRepository implements ItemRepository on a pgx pool.
type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

// acquire borrows a pooled connection; callers release it with defer.
func (r *PostgresItemRepository) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to acquire postgres connection")
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

func (r *PostgresItemRepository) CreateItem(ctx context.Context, name string, description *string) (*model.Item, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	stmt := `
		INSERT INTO items (name, description)
		VALUES (@name, @description)
		RETURNING id, name, description
	`

	rows, err := conn.Query(ctx, stmt, pgx.NamedArgs{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to execute create item query: %w", err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to collect row: %w", err)
	}

	return &item, nil
}

func (r *PostgresItemRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT id, name, description FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to execute list items query: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to collect rows: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	return items, nil
}

func (r *PostgresItemRepository) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT id, name, description FROM items WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to execute get item query: %w", err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to collect row: %w", err)
	}

	return &item, nil
}

func (r *PostgresItemRepository) UpdateItem(ctx context.Context, id int64, name string, description *string) (*model.Item, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	stmt := `
		UPDATE items
		SET name = @name, description = @description
		WHERE id = @id
		RETURNING id, name, description
	`

	rows, err := conn.Query(ctx, stmt, pgx.NamedArgs{
		"id":          id,
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to execute update item query: %w", err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to collect row: %w", err)
	}

	return &item, nil
}

func (r *PostgresItemRepository) DeleteItem(ctx context.Context, id int64) error {
	conn, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM items WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("table:items: failed to execute delete item query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}
