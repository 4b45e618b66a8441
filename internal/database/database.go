// Package database contains the logic for establishing
// connections to the item store.
//
// Two drivers are supported:
//   - sqlite (default): an embedded, file-backed database through
//     database/sql and the pure-Go modernc.org/sqlite driver
//   - postgres: a pgx connection pool (pgxpool) with query tracing/logging
//     (pgx tracelog) and optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/go-items/internal/config"
	loggerConfig "github.com/deppfellow/go-items/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps whichever handle the configured driver opened.
//
// Exactly one of Pool (postgres) or SQL (sqlite) is set.
type Database struct {
	Driver string
	Pool   *pgxpool.Pool
	SQL    *sql.DB
	log    *zerolog.Logger
}

// multiTracer fans one pgx Tracer slot out to several query tracers
// (New Relic plus the local SQL log).
type multiTracer []pgx.QueryTracer

func (mt multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 10 * time.Second

// New opens the configured item store and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return newPostgres(cfg, logger, loggerService)
	case config.DriverSQLite, "":
		return newSQLite(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// PostgresDSN builds the postgres URL; user and password are escaped.
func PostgresDSN(cfg *config.Config) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Database.User, cfg.Database.Password),
		Host:     net.JoinHostPort(cfg.Database.Host, strconv.Itoa(cfg.Database.Port)),
		Path:     "/" + cfg.Database.Name,
		RawQuery: url.Values{"sslmode": {cfg.Database.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// queryTracers picks the pgx tracers for this environment: New Relic when an
// application is configured, SQL statement logging in "local".
func queryTracers(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) []pgx.QueryTracer {
	var tracers []pgx.QueryTracer
	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}
	if cfg.Primary.Env == "local" {
		level := logger.GetLevel()
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(level)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(level),
		})
	}
	return tracers
}

func newPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	poolCfg, err := pgxpool.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	poolCfg.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	poolCfg.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	switch tracers := queryTracers(cfg, logger, loggerService); len(tracers) {
	case 0:
	case 1:
		poolCfg.ConnConfig.Tracer = tracers[0]
	default:
		poolCfg.ConnConfig.Tracer = multiTracer(tracers)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", config.DriverPostgres).Msg("connected to the database")

	return &Database{Driver: config.DriverPostgres, Pool: pool, log: logger}, nil
}

// Ping verifies the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.SQL.PingContext(ctx)
}

// Close releases the pool or the sql.DB.
func (db *Database) Close() error {
	if db.log != nil {
		db.log.Info().Str("driver", db.Driver).Msg("closing database connection pool")
	}
	if db.Pool != nil {
		db.Pool.Close()
		return nil
	}
	return db.SQL.Close()
}
