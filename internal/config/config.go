// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-secret-key-change-in-production",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string        `env:"HIBISCUS_DB_PATH" envDefault:"./data/hibiscus.db"`
	JWTSecret  string        `env:"HIBISCUS_JWT_SECRET,required"`
	JWTTTL     time.Duration `env:"HIBISCUS_JWT_TTL" envDefault:"24h"`
	ServerHost string        `env:"HIBISCUS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int           `env:"HIBISCUS_SERVER_PORT" envDefault:"5000"`
	Env        string        `env:"HIBISCUS_ENV" envDefault:"development"`
	LogLevel   string        `env:"HIBISCUS_LOG_LEVEL" envDefault:"info"`
	UploadsDir string        `env:"HIBISCUS_UPLOADS_DIR" envDefault:"./uploads"`

	// CORS configuration
	CORSOrigin string `env:"HIBISCUS_CORS_ORIGIN" envDefault:"*"`

	// GeoIP configuration
	GeoIPDBPath string `env:"HIBISCUS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Activity log retention
	ActivityRetentionDays int `env:"HIBISCUS_ACTIVITY_RETENTION_DAYS" envDefault:"90"`

	// Legacy MySQL import
	LegacyMySQLDSN string `env:"HIBISCUS_LEGACY_MYSQL_DSN"` // user:pass@tcp(host:3306)/dbname

	// Seeding configuration
	DoSeed bool `env:"HIBISCUS_DO_SEED" envDefault:"true"` // Seed default admin and content when empty
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinJWTSecretLength is the minimum required length for the JWT signing secret.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate JWT secret length
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("HIBISCUS_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("HIBISCUS_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("HIBISCUS_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.ActivityRetentionDays < 1 {
		return nil, fmt.Errorf("HIBISCUS_ACTIVITY_RETENTION_DAYS must be positive, got %d", cfg.ActivityRetentionDays)
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
