// Package config manages environment variables.
//
// It reads variables from the `.env` file (when present) and the process
// environment, loads them into structured Go types, applies defaults and
// validates that required values are present so they can be reused across
// the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix ITEMS_.
	The prefix is removed, the rest is lowercased and "__" marks a nesting
	level, so single underscores can stay inside field names:

	  ITEMS_SERVER__PORT          -> server.port          -> Config.Server.Port
	  ITEMS_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "ITEMS_"

// Supported values for DatabaseConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// StaticDir holds index.html, openapi.html and openapi.json.
	StaticDir string `koanf:"static_dir" validate:"required"`

	// RateLimit is the allowed number of requests per second per client IP.
	// Zero disables the limiter.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig selects the item store and carries its connection settings.
//
// The sqlite driver only needs Path. The postgres driver needs the
// connection block; `required_if` makes those fields mandatory only then.
type DatabaseConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	Path   string `koanf:"path" validate:"required_if=Driver sqlite"`

	Host     string `koanf:"host" validate:"required_if=Driver postgres"`
	Port     int    `koanf:"port" validate:"required_if=Driver postgres"`
	User     string `koanf:"user" validate:"required_if=Driver postgres"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `koanf:"ssl_mode" validate:"required_if=Driver postgres"`

	MaxOpenConns    int `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int `koanf:"conn_max_idle_time" validate:"min=0"`
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, applies defaults, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix ITEMS_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config and fills unset fields with defaults
//   - Overrides observability service name + environment
//   - Validates required config blocks/fields
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")

		// Comma-separated lists, e.g. ITEMS_SERVER__CORS_ALLOWED_ORIGINS=a,b
		switch key {
		case "server.cors_allowed_origins", "observability.health_checks.checks":
			return key, strings.Split(v, ",")
		}
		return key, v
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability starts from the defaults so a partial env block only
	// overrides the keys it names.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}

	// "" means "unmarshal everything from the root".
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	applyDefaults(mainConfig)

	// Force service name and environment regardless of what the user set,
	// so logs and traces always carry consistent labels.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills every zero-valued optional field.
func applyDefaults(cfg *Config) {
	if cfg.Primary.Env == "" {
		cfg.Primary.Env = "development"
	}

	s := &cfg.Server
	if s.Port == "" {
		s.Port = "8000"
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60
	}
	if len(s.CORSAllowedOrigins) == 0 {
		s.CORSAllowedOrigins = []string{"*"}
	}
	if s.StaticDir == "" {
		s.StaticDir = "static"
	}

	db := &cfg.Database
	if db.Driver == "" {
		db.Driver = DriverSQLite
	}
	if db.Driver == DriverSQLite && db.Path == "" {
		db.Path = "items.db"
	}
	if db.Driver == DriverPostgres {
		if db.Port == 0 {
			db.Port = 5432
		}
		if db.SSLMode == "" {
			db.SSLMode = "disable"
		}
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = 10
	}
	if db.MaxIdleConns == 0 {
		db.MaxIdleConns = 5
	}
	if db.ConnMaxLifetime == 0 {
		db.ConnMaxLifetime = 300
	}
	if db.ConnMaxIdleTime == 0 {
		db.ConnMaxIdleTime = 60
	}

	// Observability is a pointer, so nil means "missing".
	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
		return
	}
	defaults := DefaultObservabilityConfig()
	o := cfg.Observability
	if o.Logging.Level == "" {
		o.Logging.Level = defaults.Logging.Level
	}
	if o.Logging.Format == "" {
		o.Logging.Format = defaults.Logging.Format
	}
	if o.Logging.SlowQueryThreshold == 0 {
		o.Logging.SlowQueryThreshold = defaults.Logging.SlowQueryThreshold
	}
	if o.HealthChecks.Timeout == 0 {
		o.HealthChecks.Timeout = defaults.HealthChecks.Timeout
	}
	if len(o.HealthChecks.Checks) == 0 {
		o.HealthChecks.Checks = defaults.HealthChecks.Checks
	}
}
