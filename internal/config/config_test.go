package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PRICING_FILE", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.PricingFile != "data/pricing.json" {
		t.Fatalf("expected default pricing file, got %s", cfg.PricingFile)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("PRICING_FILE", "/var/lib/carebridge/pricing.json")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "60")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("unexpected database url %s", cfg.DatabaseURL)
	}
	if cfg.PricingFile != "/var/lib/carebridge/pricing.json" {
		t.Fatalf("unexpected pricing file %s", cfg.PricingFile)
	}
	if !cfg.RedisTLS {
		t.Fatal("expected redis TLS enabled")
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("unexpected rate limit %d", cfg.RateLimitPerMinute)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
}

func TestLoadCORSList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.com, https://admin.example.com ,")
	cfg := Load()
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("expected trimmed origin, got %q", cfg.CORSAllowedOrigins[1])
	}
}
