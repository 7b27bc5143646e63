package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if len(cfg.Store.Candidates) == 0 {
		t.Error("store candidates should have defaults")
	}
	if cfg.Store.QueryTimeout != 10*time.Second {
		t.Errorf("query timeout = %v", cfg.Store.QueryTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 9090
log:
  level: debug
  format: json
store:
  path: /tmp/markets.db
cache:
  ttl: 5m
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("format = %q", cfg.Log.Format)
	}
	if cfg.Store.Path != "/tmp/markets.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad port", "server:\n  port: -1\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"redis without addr", "cache:\n  redis:\n    enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CROSSMARKET_DB", "/data/markets.db")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Store.Path != "/data/markets.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
}

func TestLoadWithEnvRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if !cfg.Cache.Redis.Enabled || cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("redis = %+v", cfg.Cache.Redis)
	}
}
