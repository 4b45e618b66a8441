package config

import (
	"fmt"
	"time"
)

// ServiceName identifies this service in logs, traces and APM dashboards.
const ServiceName = "items"

// ObservabilityConfig covers logging, New Relic and the /status checks.
// LoadConfig starts from DefaultObservabilityConfig, so env vars only
// override the keys they name.
type ObservabilityConfig struct {
	// ServiceName and Environment are overwritten by LoadConfig.
	ServiceName string `koanf:"service_name" validate:"required"`
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

type LoggingConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`

	// Format is only honoured in production; other environments always
	// log to the console.
	Format string `koanf:"format" validate:"required,oneof=json console"`

	// SlowQueryThreshold marks item store calls logged as slow ("100ms", "1s").
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold" validate:"min=0"`
}

// NewRelicConfig configures the APM agent. An empty LicenseKey disables it.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks run by GET /status.
type HealthChecksConfig struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1ms"`

	// Checks names the dependencies to probe.
	Checks []string `koanf:"checks"`
}

// CheckDatabase is the only dependency /status knows how to probe.
const CheckDatabase = "database"

func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			// Agent debug output would interleave with the app's own format.
			DebugLogging: false,
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Checks:  []string{CheckDatabase},
		},
	}
}

// Validate checks what struct tags cannot: every configured health check
// must be one /status can run.
func (c *ObservabilityConfig) Validate() error {
	for _, check := range c.HealthChecks.Checks {
		if check != CheckDatabase {
			return fmt.Errorf("unknown health check %q (supported: %s)", check, CheckDatabase)
		}
	}
	return nil
}

// GetLogLevel returns the configured level, or the environment default
// ("info" in production, "debug" elsewhere) when none is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.IsProduction() {
		return "info"
	}
	return "debug"
}

func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}
