package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.AuthURL != "http://localhost:8081/api" {
		t.Fatalf("unexpected auth url: %s", cfg.API.AuthURL)
	}
	if cfg.API.RdvURL != "http://localhost:8083/api" {
		t.Fatalf("unexpected rdv url: %s", cfg.API.RdvURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.API.Timeout)
	}
	if cfg.Session.Store != StoreFile {
		t.Fatalf("unexpected store: %s", cfg.Session.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"API_AUTH_URL":  "https://auth.rdv360.test/api",
		"API_TIMEOUT":   "5s",
		"SESSION_STORE": "redis",
		"REDIS_DB":      "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.AuthURL != "https://auth.rdv360.test/api" {
		t.Fatalf("unexpected auth url: %s", cfg.API.AuthURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.API.Timeout)
	}
	if cfg.Session.Store != StoreRedis || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected session/redis config: %+v %+v", cfg.Session, cfg.Redis)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"SESSION_STORE": "sqlite"}))
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown store")
	}

	cfg, _ = LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"API_TIMEOUT": "0s"}))
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
