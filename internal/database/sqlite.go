package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/deppfellow/go-items/internal/config"
	"github.com/rs/zerolog"

	// Registers the "sqlite" database/sql driver (pure Go, no cgo).
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteDSN builds the modernc DSN for path.
//
// WAL lets readers run beside the single writer and busy_timeout makes
// concurrent writers wait instead of failing with SQLITE_BUSY.
func SQLiteDSN(path string) string {
	pragmas := url.Values{}
	pragmas.Add("_pragma", "busy_timeout(5000)")
	pragmas.Add("_pragma", "foreign_keys(1)")
	if path != MemoryPath {
		pragmas.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + pragmas.Encode()
}

func newSQLite(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	db, err := sql.Open("sqlite", SQLiteDSN(cfg.Database.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Database.Path == MemoryPath {
		// Every connection to ":memory:" is a separate database, so the
		// single connection must never be recycled.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("driver", config.DriverSQLite).
		Str("path", cfg.Database.Path).
		Msg("connected to the database")

	return &Database{
		Driver: config.DriverSQLite,
		SQL:    db,
		log:    logger,
	}, nil
}
