// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver      string `env:"ECO_DB_DRIVER" envDefault:"sqlite"`      // sqlite or mysql
	DBPath        string `env:"ECO_DB_PATH" envDefault:"./data/eco.db"` // SQLite file path
	DBDSN         string `env:"ECO_DB_DSN"`                             // MySQL DSN, required when driver is mysql
	SessionSecret string `env:"ECO_SESSION_SECRET,required"`
	ServerHost    string `env:"ECO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ECO_SERVER_PORT" envDefault:"8080"`
	BaseURL       string `env:"ECO_BASE_URL" envDefault:"http://localhost:8080"` // Used in password-reset links
	Env           string `env:"ECO_ENV" envDefault:"development"`
	LogLevel      string `env:"ECO_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"ECO_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL    string `env:"ECO_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix string `env:"ECO_CACHE_PREFIX" envDefault:"eco:"`  // Redis key prefix
	CacheTTL    int    `env:"ECO_CACHE_TTL" envDefault:"3600"`     // Default cache TTL in seconds

	// Seeding configuration
	DoSeed bool `env:"ECO_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverMySQL:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("ECO_DB_DSN is required when ECO_DB_DRIVER=mysql")
		}
	default:
		return nil, fmt.Errorf("unsupported ECO_DB_DRIVER %q (use sqlite or mysql)", cfg.DBDriver)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("ECO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("ECO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ECO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
