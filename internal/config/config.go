// Package config provides environment-driven configuration for the
// ClarityCareer server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the top-level server configuration.
type Config struct {
	Port        int
	DatabaseURL string
	// RedisURL is optional. When empty the server falls back to the
	// in-process watch hub and uncached salary aggregates.
	RedisURL string
}

// Load reads the server configuration from environment variables.
// DATABASE_URL is required; PORT defaults to 8080.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	cfg := &Config{
		Port:        port,
		DatabaseURL: databaseURL,
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}
