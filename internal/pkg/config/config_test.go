package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadContext_Defaults(t *testing.T) {
	cfg, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.AccessCookie != "sb-access-token" || cfg.Auth.RefreshCookie != "sb-refresh-token" {
		t.Fatalf("unexpected cookie names: %+v", cfg.Auth)
	}
	if cfg.Auth.RefreshTimeout != 5*time.Second || !cfg.Auth.CookieSecure {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Gate.SignInPath != "/auth/sign-in" || cfg.Gate.DashboardPath != "/dashboard" {
		t.Fatalf("unexpected gate defaults: %+v", cfg.Gate)
	}
	if len(cfg.Gate.PublicPaths) != 3 || cfg.Gate.PublicPaths[0] != "/health" {
		t.Fatalf("unexpected public paths: %v", cfg.Gate.PublicPaths)
	}
	if cfg.Redis.RoleCacheTTL != 0 {
		t.Fatalf("role cache must be off by default, got %v", cfg.Redis.RoleCacheTTL)
	}
}

func TestLoadContext_RequiresJWTSecret(t *testing.T) {
	if _, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without AUTH_JWT_SECRET")
	}
}

func TestLoadContext_Overrides(t *testing.T) {
	cfg, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_JWT_SECRET":   "secret",
		"ENV":               "production",
		"ROLE_CACHE_TTL":    "15s",
		"GATE_PUBLIC_PATHS": "/health,/status",
		"CSP_BASIC":         "default-src 'none'",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production")
	}
	if cfg.Redis.RoleCacheTTL != 15*time.Second {
		t.Fatalf("unexpected cache ttl: %v", cfg.Redis.RoleCacheTTL)
	}
	if len(cfg.Gate.PublicPaths) != 2 || cfg.Gate.PublicPaths[1] != "/status" {
		t.Fatalf("unexpected public paths: %v", cfg.Gate.PublicPaths)
	}
	if cfg.Gate.BasicCSP != "default-src 'none'" {
		t.Fatalf("unexpected basic csp: %q", cfg.Gate.BasicCSP)
	}
}
