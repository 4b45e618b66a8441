package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/go-items/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

func TestNewLoggerProductionJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	var buf bytes.Buffer
	logger := newLogger(cfg, nil, &buf)
	logger.Info().Str("item_id", "1").Msg("item created")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}

	want := map[string]string{
		"service":     config.ServiceName,
		"environment": "production",
		"message":     "item created",
		"item_id":     "1",
		"level":       "info",
	}
	for key, value := range want {
		if line[key] != value {
			t.Errorf("%s = %v, want %q", key, line[key], value)
		}
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger := newLogger(cfg, nil, &buf)
	logger.Info().Msg("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
}

func TestNewLoggerConsoleOutsideProduction(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "development"

	var buf bytes.Buffer
	logger := newLogger(cfg, nil, &buf)
	logger.Info().Msg("hello")

	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("expected console output in development, got JSON %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Errorf("expected the message in %q", buf.String())
	}
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	if ls.GetApplication() != nil {
		t.Error("GetApplication() != nil without a license key")
	}
	ls.Shutdown()

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Error("GetApplication() on nil service != nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
	}

	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := map[zerolog.Level]tracelog.LogLevel{
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.PanicLevel: tracelog.LogLevelNone,
	}

	for input, want := range tests {
		if got := GetPgxTraceLogLevel(input); got != want {
			t.Errorf("GetPgxTraceLogLevel(%v) = %v, want %v", input, got, want)
		}
	}
}
