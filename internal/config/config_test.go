//go:build unit

package config

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("expected default port '8080', got '%s'", cfg.Server.Port)
		}
		if cfg.DB.Driver != "sqlite3" {
			t.Errorf("expected default driver 'sqlite3', got '%s'", cfg.DB.Driver)
		}
		if cfg.Session.Lifetime != 24*time.Hour {
			t.Errorf("expected session lifetime 24h, got %v", cfg.Session.Lifetime)
		}
		if cfg.Session.IdleTimeout != 2*time.Hour {
			t.Errorf("expected idle timeout 2h, got %v", cfg.Session.IdleTimeout)
		}
		if !cfg.RateLimit.Enabled || cfg.RateLimit.Requests != 20 {
			t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SITES_SERVER_PORT", "9090")
		t.Setenv("SITES_SESSION_LIFETIME", "30m")
		t.Setenv("SITES_LOG_FORMAT", "json")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Port != "9090" {
			t.Errorf("expected port '9090', got '%s'", cfg.Server.Port)
		}
		if cfg.Session.Lifetime != 30*time.Minute {
			t.Errorf("expected session lifetime 30m, got %v", cfg.Session.Lifetime)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("expected log format 'json', got '%s'", cfg.Log.Format)
		}
	})
}
