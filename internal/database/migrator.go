package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// The binary carries its schema; nothing is read from disk at runtime.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate creates the items table for the configured driver.
//
//   - postgres: jackc/tern on a connection borrowed from the pool, version
//     stored in the schema_version table
//   - sqlite: every embedded statement file in name order; they are
//     idempotent (IF NOT EXISTS)
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	if db.Pool != nil {
		return migratePostgres(ctx, logger, db)
	}
	return migrateSQLite(ctx, logger, db)
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring migration connection: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

func migrateSQLite(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	names, err := fs.Glob(migrations, "migrations/sqlite/*.sql")
	if err != nil {
		return fmt.Errorf("listing database migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		schema, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading database migration %s: %w", name, err)
		}
		if _, err := db.SQL.ExecContext(ctx, string(schema)); err != nil {
			return fmt.Errorf("applying database migration %s: %w", name, err)
		}
	}

	logger.Info().Msgf("database schema up to date, version %d", len(names))
	return nil
}
