package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.Upstream.BaseURL != "http://localhost:3333" {
		t.Fatalf("unexpected upstream base url %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Fatalf("expected default upstream timeout 10s, got %v", cfg.Upstream.Timeout)
	}
	if cfg.Journal.Driver != JournalDriverSQLite {
		t.Fatalf("expected sqlite journal driver by default, got %q", cfg.Journal.Driver)
	}
	if cfg.JWT.AccessTokenTTL() != 8*time.Hour {
		t.Fatalf("expected default 8h token ttl, got %v", cfg.JWT.AccessTokenTTL())
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without an endpoint")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownJournalDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvJournalDriver, "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown journal driver to be rejected")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	dev := AppConfig{Env: "Development"}
	if !dev.IsDev() || dev.IsProd() {
		t.Fatalf("expected dev helpers to match case-insensitively")
	}
	prod := AppConfig{Env: "production"}
	if !prod.IsProd() || prod.IsDev() {
		t.Fatalf("expected prod helpers to match")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvUpstreamBaseURL, "http://localhost:3333")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "condopos")
	t.Setenv(EnvRedisURL, "")
}
