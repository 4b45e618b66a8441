package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Primary.Env != "development" {
		t.Errorf("Primary.Env = %q, want development", cfg.Primary.Env)
	}
	if cfg.Server.Port != "8000" {
		t.Errorf("Server.Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "items.db" {
		t.Errorf("Database.Path = %q, want items.db", cfg.Database.Path)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("Server.RateLimit = %v, want 0", cfg.Server.RateLimit)
	}
	if cfg.Observability == nil {
		t.Fatal("Observability is nil, want defaults")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("Observability.ServiceName = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if cfg.Observability.Environment != cfg.Primary.Env {
		t.Errorf("Observability.Environment = %q, want %q", cfg.Observability.Environment, cfg.Primary.Env)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ITEMS_PRIMARY__ENV", "production")
	t.Setenv("ITEMS_SERVER__PORT", "9090")
	t.Setenv("ITEMS_SERVER__RATE_LIMIT", "2.5")
	t.Setenv("ITEMS_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ITEMS_DATABASE__PATH", ":memory:")
	t.Setenv("ITEMS_DATABASE__MAX_OPEN_CONNS", "3")
	t.Setenv("ITEMS_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("ITEMS_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.RateLimit != 2.5 {
		t.Errorf("Server.RateLimit = %v, want 2.5", cfg.Server.RateLimit)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, wantOrigins) {
		t.Errorf("Server.CORSAllowedOrigins = %v, want %v", cfg.Server.CORSAllowedOrigins, wantOrigins)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("Database.MaxOpenConns = %d, want 3", cfg.Database.MaxOpenConns)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.SlowQueryThreshold != 250*time.Millisecond {
		t.Errorf("Logging.SlowQueryThreshold = %v, want 250ms", cfg.Observability.Logging.SlowQueryThreshold)
	}
	if !cfg.Observability.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
}

func TestLoadConfigPostgresRequiresConnection(t *testing.T) {
	t.Setenv("ITEMS_DATABASE__DRIVER", "postgres")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want a validation error")
	}
	if !strings.Contains(err.Error(), "Host") {
		t.Errorf("LoadConfig() error = %v, want it to mention Host", err)
	}
}

func TestLoadConfigPostgres(t *testing.T) {
	t.Setenv("ITEMS_DATABASE__DRIVER", "postgres")
	t.Setenv("ITEMS_DATABASE__HOST", "localhost")
	t.Setenv("ITEMS_DATABASE__USER", "items")
	t.Setenv("ITEMS_DATABASE__NAME", "items")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("Database.SSLMode = %q, want disable", cfg.Database.SSLMode)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "ITEMS_DATABASE__DRIVER", "mysql"},
		{"negative rate limit", "ITEMS_SERVER__RATE_LIMIT", "-1"},
		{"unknown log level", "ITEMS_OBSERVABILITY__LOGGING__LEVEL", "verbose"},
		{"unknown log format", "ITEMS_OBSERVABILITY__LOGGING__FORMAT", "xml"},
		{"unknown health check", "ITEMS_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database,redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s=%s error = nil, want an error", tt.key, tt.value)
			}
		})
	}
}

func TestObservabilityGetLogLevel(t *testing.T) {
	tests := []struct {
		env   string
		level string
		want  string
	}{
		{"production", "", "info"},
		{"development", "", "debug"},
		{"production", "warn", "warn"},
		{"staging", "error", "error"},
	}

	for _, tt := range tests {
		cfg := DefaultObservabilityConfig()
		cfg.Environment = tt.env
		cfg.Logging.Level = tt.level

		if got := cfg.GetLogLevel(); got != tt.want {
			t.Errorf("GetLogLevel() env=%q level=%q = %q, want %q", tt.env, tt.level, got, tt.want)
		}
	}
}
