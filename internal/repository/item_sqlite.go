package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/go-items/internal/model"
	"github.com/rs/zerolog"
)

// SQLiteItemRepository implements ItemRepository on database/sql.
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository wraps an open database whose items table exists.
func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db}
}

// withConn runs fn on a dedicated connection that is always returned to the pool.
func (r *SQLiteItemRepository) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to acquire sqlite connection")
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

func scanItem(row interface{ Scan(dest ...any) error }) (*model.Item, error) {
	var (
		item        model.Item
		description sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Name, &description); err != nil {
		return nil, err
	}
	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

func (r *SQLiteItemRepository) CreateItem(ctx context.Context, name string, description *string) (*model.Item, error) {
	var item *model.Item
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			INSERT INTO items (name, description)
			VALUES (?, ?)
			RETURNING id, name, description
		`, name, description)

		var err error
		item, err = scanItem(row)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to insert item: %w", err)
	}
	return item, nil
}

func (r *SQLiteItemRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `SELECT id, name, description FROM items ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to list items: %w", err)
	}
	return items, nil
}

func (r *SQLiteItemRepository) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	var item *model.Item
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `SELECT id, name, description FROM items WHERE id = ?`, id)

		var err error
		item, err = scanItem(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to get item %d: %w", id, err)
	}
	return item, nil
}

func (r *SQLiteItemRepository) UpdateItem(ctx context.Context, id int64, name string, description *string) (*model.Item, error) {
	var item *model.Item
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			UPDATE items
			SET name = ?, description = ?
			WHERE id = ?
			RETURNING id, name, description
		`, name, description, id)

		var err error
		item, err = scanItem(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("table:items: failed to update item %d: %w", id, err)
	}
	return item, nil
}

func (r *SQLiteItemRepository) DeleteItem(ctx context.Context, id int64) error {
	var affected int64
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("table:items: failed to delete item %d: %w", id, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
