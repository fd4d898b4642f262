package config

import (
	"testing"

	"github.com/lotas/testwerk/internal/gateway"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvFramework, "")

	cfg := Load("", "")
	if cfg.BackendURL != gateway.DefaultBaseURL {
		t.Errorf("BackendURL = %q, want default", cfg.BackendURL)
	}
	if cfg.Framework != gateway.DefaultFramework {
		t.Errorf("Framework = %q, want default", cfg.Framework)
	}
	if cfg.LogDir == "" {
		t.Error("LogDir should never be empty")
	}
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv(EnvBackend, "http://example.test/api/v1")
	t.Setenv(EnvFramework, "jest")

	cfg := Load("", "")
	if cfg.BackendURL != "http://example.test/api/v1" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Framework != "jest" {
		t.Errorf("Framework = %q", cfg.Framework)
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv(EnvBackend, "http://env.test/api/v1")
	t.Setenv(EnvFramework, "jest")

	cfg := Load("http://flag.test/api/v1", "unittest")
	if cfg.BackendURL != "http://flag.test/api/v1" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Framework != "unittest" {
		t.Errorf("Framework = %q", cfg.Framework)
	}
}
