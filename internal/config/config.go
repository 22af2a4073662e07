package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string
	MaxFileSize int64 // in bytes
	DebugLevel  int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("GO_ENV", "development"),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		DebugLevel:  int(getEnvInt64("HUFF_DEBUG", 0)),
	}

	return cfg
}

// IsProduction reports whether GO_ENV selects production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 falls back to defaultValue when the variable is unset or not a number
func getEnvInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
