package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Host string `env:"TESTCFG_HOST" default:"0.0.0.0"`
		Port string `env:"TESTCFG_PORT" default:"8080"`
	}
	TTL     time.Duration `env:"TESTCFG_TTL" default:"1h"`
	Workers int           `env:"TESTCFG_WORKERS" default:"4"`
	Debug   bool          `env:"TESTCFG_DEBUG" default:"false"`
}

func TestParseEnv_Defaults(t *testing.T) {
	cfg := &testConfig{}
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != "8080" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("duration default: got %v want 1h", cfg.TTL)
	}
	if cfg.Workers != 4 || cfg.Debug {
		t.Fatalf("unexpected defaults: workers=%d debug=%v", cfg.Workers, cfg.Debug)
	}
}

func TestParseEnv_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("TESTCFG_HOST", "127.0.0.1")
	t.Setenv("TESTCFG_TTL", "30m")
	t.Setenv("TESTCFG_DEBUG", "true")

	cfg := &testConfig{}
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Fatalf("host override lost: %s", cfg.Server.Host)
	}
	if cfg.TTL != 30*time.Minute {
		t.Fatalf("ttl override lost: %v", cfg.TTL)
	}
	if !cfg.Debug {
		t.Fatalf("debug override lost")
	}
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	if err := ParseEnv(testConfig{}); err == nil {
		t.Fatalf("non-pointer config must be rejected")
	}
}

func TestLoadYamlFile_SectionsBecomeEnvVars(t *testing.T) {
	yaml := `
# comment
server:
  host: "10.0.0.5"
  port: "9090"
auth:
  session_ttl: "2h"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write yaml: %v", err)
	}

	if err := LoadYamlFile(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := os.Getenv("SERVER_HOST"); got != "10.0.0.5" {
		t.Fatalf("SERVER_HOST: got %q", got)
	}
	if got := os.Getenv("AUTH_SESSION_TTL"); got != "2h" {
		t.Fatalf("AUTH_SESSION_TTL: got %q", got)
	}
}

func TestLoadYamlFile_NoPath(t *testing.T) {
	if err := LoadYamlFile(""); err != ErrNoFilePath {
		t.Fatalf("expected ErrNoFilePath, got %v", err)
	}
}
