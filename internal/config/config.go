// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SourceKind selects where analytics records are read from
type SourceKind string

const (
	// SourceREST reads records from the lending backend's REST API
	SourceREST SourceKind = "rest"
	// SourceSQLite reads the backend tables from a SQLite file
	SourceSQLite SourceKind = "sqlite"
	// SourcePostgres reads the backend tables from PostgreSQL
	SourcePostgres SourceKind = "postgres"
)

// Config holds application configuration
type Config struct {
	Port            int
	LogLevel        string
	LogPretty       bool
	DevMode         bool
	Source          SourceKind
	BackendURL      string        // Base URL of the lending backend API (REST source)
	DatabaseURL     string        // DSN or file path (SQL sources)
	FetchTimeout    time.Duration // Upper bound for fetching one tab's collections
	LoanFetchLimit  int
	RefreshSchedule string // Cron expression for the dashboard refresh job, empty disables it
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8001),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOG_PRETTY", true),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		Source:          SourceKind(strings.ToLower(getEnv("SOURCE", string(SourceREST)))),
		BackendURL:      strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000/api"), "/"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		FetchTimeout:    getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second),
		LoanFetchLimit:  getEnvAsInt("LOAN_FETCH_LIMIT", 1000),
		RefreshSchedule: os.Getenv("REFRESH_SCHEDULE"),
	}
	if _, set := os.LookupEnv("REFRESH_SCHEDULE"); !set {
		cfg.RefreshSchedule = "@every 5m"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.LoanFetchLimit <= 0 {
		return fmt.Errorf("LOAN_FETCH_LIMIT must be positive, got %d", c.LoanFetchLimit)
	}

	switch c.Source {
	case SourceREST:
		u, err := url.Parse(c.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid BACKEND_URL %q", c.BackendURL)
		}
	case SourceSQLite, SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for source %q", c.Source)
		}
	default:
		return fmt.Errorf("unknown SOURCE %q (must be rest, sqlite or postgres)", c.Source)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
