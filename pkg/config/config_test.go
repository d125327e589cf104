package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_APP_ENV", "dev")
	t.Setenv("STOREFRONT_APP_PORT", "8080")
	t.Setenv("STOREFRONT_CATALOG_BASE_URL", "https://fakestoreapi.com")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev env")
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("unexpected catalog timeout %s", cfg.Catalog.Timeout)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("unexpected session ttl %s", cfg.Session.TTL)
	}
	if cfg.Checkout.ClearCart {
		t.Fatal("clear-cart should default off")
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled when no endpoint is configured")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("STOREFRONT_APP_ENV", "dev")
	t.Setenv("STOREFRONT_APP_PORT", "")
	t.Setenv("STOREFRONT_CATALOG_BASE_URL", "https://fakestoreapi.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing app port")
	}
}

func TestLoadRejectsUnknownBackPolicy(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STOREFRONT_CHECKOUT_BACK_POLICY", "teleport")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown back policy")
	}
}

func TestCheckoutPolicyParsed(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STOREFRONT_CHECKOUT_BACK_POLICY", "prior-view")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := cfg.Checkout.Policy().String(); got != "prior-view" {
		t.Fatalf("expected prior-view policy, got %s", got)
	}
}

func TestRedisEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STOREFRONT_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Redis.Enabled() {
		t.Fatal("expected redis enabled with address set")
	}
}
