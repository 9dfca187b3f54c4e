package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  shutdown_timeout: 5s
logging:
  level: debug
cleanup:
  case_sensitive: true
  protected:
    - "*.keep"
history:
  enabled: true
  path: /tmp/history.db
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port: got %d want 9090", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout: got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level: got %q", cfg.Logging.Level)
	}
	if !cfg.Cleanup.CaseSensitive {
		t.Fatalf("case_sensitive not decoded")
	}
	if len(cfg.Cleanup.Protected) != 1 || cfg.Cleanup.Protected[0] != "*.keep" {
		t.Fatalf("protected: got %v", cfg.Cleanup.Protected)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/history.db" {
		t.Fatalf("history: got %+v", cfg.History)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DECLUTTER_PORT", "")
	t.Setenv("DECLUTTER_HISTORY_PATH", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port: got %d", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("default origins: got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.History.Enabled {
		t.Fatalf("history should be disabled by default")
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("default level: got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "server: [unclosed")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DECLUTTER_PORT", "7000")
	t.Setenv("DECLUTTER_LOG_LEVEL", "WARN")
	t.Setenv("DECLUTTER_HISTORY_PATH", "/var/lib/declutter.db")
	t.Setenv("DECLUTTER_CASE_SENSITIVE", "true")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Fatalf("port override: got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("level override: got %q", cfg.Logging.Level)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/var/lib/declutter.db" {
		t.Fatalf("history override: got %+v", cfg.History)
	}
	if !cfg.Cleanup.CaseSensitive {
		t.Fatalf("case sensitivity override ignored")
	}
}
