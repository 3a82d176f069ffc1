package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	BaseURL string        `env:"TEST_BASE_URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"0s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("base url = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout != 0 {
		t.Fatalf("timeout = %v, want 0", cfg.Timeout)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TEST_BASE_URL", "http://unprefixed")
	t.Setenv(EnvPrefix+"TEST_BASE_URL", "http://curator.local")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.BaseURL != "http://curator.local" {
		t.Fatalf("base url = %q, want prefixed value", cfg.BaseURL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv(EnvPrefix+"TEST_TIMEOUT", "soon")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
