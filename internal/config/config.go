package config

import (
	"os"
	"strings"

	"varstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Data     DataConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// DataConfig holds file data source settings
type DataConfig struct {
	// File is an Excel/CSV source used instead of the database when set
	File  string
	Sheet string
}

// Load reads configuration from environment variables and validates it.
// Exactly one data source must be available: DATABASE_URL or DATA_FILE.
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Data: DataConfig{
			File:  os.Getenv("DATA_FILE"),
			Sheet: getEnvOrDefault("DATA_SHEET", "Sheet1"),
		},
	}

	if config.Database.URL == "" && config.Data.File == "" {
		return nil, errors.ConfigInvalid("either DATABASE_URL or DATA_FILE is required")
	}

	return config, nil
}

// UsesDatabase reports whether the Postgres source is configured.
// The database takes precedence when both sources are set.
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}

// ConnectionURL returns the database URL with the configured SSL mode
// applied, unless the URL already carries one.
func (c *Config) ConnectionURL() string {
	url := c.Database.URL
	if strings.Contains(url, "sslmode=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "sslmode=" + c.Database.SSLMode
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
