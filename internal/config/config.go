// Package config resolves runtime settings. Precedence: command-line flag,
// then environment variable, then a .env file in the working directory, then
// the built-in default.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/lotas/testwerk/internal/gateway"
)

// Environment variable names.
const (
	EnvBackend   = "TESTWERK_BACKEND"
	EnvFramework = "TESTWERK_FRAMEWORK"
	EnvLogDir    = "TESTWERK_LOG_DIR"
)

// Config holds the resolved settings for one run.
type Config struct {
	BackendURL string
	Framework  string
	LogDir     string
}

// Load resolves the configuration. flagBackend and flagFramework come from
// the CLI and win over everything; empty means unset. A missing .env file is
// not an error.
func Load(flagBackend, flagFramework string) Config {
	godotenv.Load()

	return Config{
		BackendURL: resolve(flagBackend, EnvBackend, gateway.DefaultBaseURL),
		Framework:  resolve(flagFramework, EnvFramework, gateway.DefaultFramework),
		LogDir:     resolve("", EnvLogDir, defaultLogDir()),
	}
}

func resolve(flagValue, envKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "testwerk")
}
