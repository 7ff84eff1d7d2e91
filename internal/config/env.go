package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvConfig   = "BCHCTL_CONFIG"
	EnvLogLevel = "BCHCTL_LOG_LEVEL"
	EnvWorkers  = "BCHCTL_WORKERS"
	EnvStrategy = "BCHCTL_STRATEGY"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv(EnvStrategy); v != "" {
		cfg.Field.Strategy = strings.ToLower(v)
	}
}
