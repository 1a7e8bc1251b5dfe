package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// Config holds runtime configuration read from the environment
type Config struct {
	// Logging
	LogLevel  string
	LogFormat string // console or json

	// Watch mode
	DebounceMillis int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:       getEnv("CLASSDOC_LOG_LEVEL", "info"),
		LogFormat:      getEnv("CLASSDOC_LOG_FORMAT", "console"),
		DebounceMillis: getEnvInt("CLASSDOC_WATCH_DEBOUNCE_MS", 300),
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid CLASSDOC_LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("CLASSDOC_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}

	if c.DebounceMillis < 0 {
		return fmt.Errorf("CLASSDOC_WATCH_DEBOUNCE_MS must not be negative")
	}

	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
