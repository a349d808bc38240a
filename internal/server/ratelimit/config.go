package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         Rule
	Rules           []Rule
	CleanupInterval time.Duration
}

// LoadConfig builds the limiter configuration from environment variables,
// with route rules tiered for the job board API.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := defaultConfig()
	cfg.Default.Limit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.Default.Limit)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         Rule{Limit: 600, Window: time.Minute},
		CleanupInterval: 5 * time.Minute,
		Rules: []Rule{
			// Credential endpoints get the tightest budget to slow
			// guessing attacks.
			{Method: "POST", Prefix: "/auth/register", Limit: 10, Window: time.Minute, Burst: 3},
			{Method: "POST", Prefix: "/auth/login", Limit: 20, Window: time.Minute, Burst: 5},
			{Method: "PUT", Prefix: "/auth/password", Limit: 10, Window: time.Minute, Burst: 3},
			{Method: "DELETE", Prefix: "/auth/account", Limit: 5, Window: time.Minute, Burst: 2},

			// Content writes.
			{Method: "POST", Prefix: "/jobs", Limit: 60, Window: time.Minute, Burst: 10},
			{Method: "POST", Prefix: "/companies", Limit: 60, Window: time.Minute, Burst: 10},
			{Method: "POST", Prefix: "/reviews", Limit: 30, Window: time.Minute, Burst: 5},
			{Method: "POST", Prefix: "/salaries", Limit: 30, Window: time.Minute, Burst: 5},
			{Method: "POST", Prefix: "/interviews", Limit: 30, Window: time.Minute, Burst: 5},
			{Method: "PUT", Prefix: "/applications/", Limit: 120, Window: time.Minute, Burst: 20},
			{Method: "PUT", Prefix: "/users/me", Limit: 120, Window: time.Minute, Burst: 20},
		},
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
