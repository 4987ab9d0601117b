package config

import (
	"testing"
	"time"

	"github.com/matchday-dev/matchday/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_TokenRequiredWithoutProxy(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "")
	t.Setenv("FOOTBALL_DATA_AUTH_VIA_PROXY", "false")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when no token and no auth proxy")
	}
}

func TestLoad_ProxyModeNeedsNoToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "")
	t.Setenv("FOOTBALL_DATA_AUTH_VIA_PROXY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FootballDataAuthViaProxy {
		t.Fatalf("expected FootballDataAuthViaProxy=true")
	}
	if cfg.FootballDataToken != "" {
		t.Fatalf("expected empty token, got %q", cfg.FootballDataToken)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-123")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-123")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://secret@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://secret@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_FootballDataDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataBaseURL != "https://api.football-data.org/v4" {
		t.Fatalf("unexpected FootballDataBaseURL: %q", cfg.FootballDataBaseURL)
	}
	if cfg.FootballDataTimeout != 10*time.Second {
		t.Fatalf("unexpected FootballDataTimeout: %s", cfg.FootballDataTimeout)
	}
	if cfg.FootballDataRateLimitRPM != 0 {
		t.Fatalf("expected local rate limiting off by default, got %d", cfg.FootballDataRateLimitRPM)
	}
	if !cfg.FootballDataCircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
	if !cfg.LiveRefreshEnabled {
		t.Fatalf("expected live refresh enabled by default")
	}
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-123")
	t.Setenv("QUERY_GC_INTERVAL", "-1s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative QUERY_GC_INTERVAL")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{in: "debug", want: logging.LevelDebug},
		{in: "INFO", want: logging.LevelInfo},
		{in: "warning", want: logging.LevelWarn},
		{in: "error", want: logging.LevelError},
		{in: "weird", want: logging.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
