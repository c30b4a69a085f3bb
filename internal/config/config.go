// Package config loads service configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"solana-token-api/internal/domain"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all service configuration.
type Config struct {
	// Server
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Storage
	Backend       string
	PostgresDSN   string
	RunMigrations bool

	// Logging
	LogLevel  string
	LogFormat string

	// Network status payload
	Network     string
	RPCEndpoint string
}

// Load reads configuration. Values in envFile (if it exists) are exported
// first without overriding the process environment; flags in args take
// precedence over both.
func Load(envFile string, args []string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	fset := flag.NewFlagSet("server", flag.ContinueOnError)

	fset.StringVar(&cfg.HTTPAddr, "http-addr", getEnv("HTTP_ADDR", ":5000"), "HTTP listen address")
	fset.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second), "Graceful shutdown timeout")
	fset.StringVar(&cfg.Backend, "storage", getEnv("STORAGE_BACKEND", BackendMemory), "Storage backend (memory, postgres)")
	fset.StringVar(&cfg.PostgresDSN, "postgres-dsn", getEnv("POSTGRES_DSN", ""), "PostgreSQL connection string")
	fset.BoolVar(&cfg.RunMigrations, "migrate", getEnvAsBool("RUN_MIGRATIONS", true), "Apply embedded migrations on startup (postgres)")
	fset.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	fset.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "json"), "Log format (json, console)")
	fset.StringVar(&cfg.Network, "network", getEnv("SOLANA_NETWORK", domain.DefaultNetworkStatus.Network), "Solana cluster reported by /api/network/status")
	fset.StringVar(&cfg.RPCEndpoint, "rpc-endpoint", getEnv("SOLANA_RPC_ENDPOINT", domain.DefaultNetworkStatus.RPCEndpoint), "Solana RPC endpoint reported by /api/network/status")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option combinations.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("--postgres-dsn is required for the postgres storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}

	if c.HTTPAddr == "" {
		return errors.New("--http-addr is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("--shutdown-timeout must be positive")
	}
	return nil
}

// NetworkStatus returns the static status payload for the configured cluster.
func (c *Config) NetworkStatus() domain.NetworkStatus {
	return domain.NetworkStatus{
		Network:     c.Network,
		Status:      domain.DefaultNetworkStatus.Status,
		RPCEndpoint: c.RPCEndpoint,
	}
}

// Helper functions for parsing environment variables
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return val
	}
	return defaultVal
}
