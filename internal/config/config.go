// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads portal settings from PORTAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/portal-go/internal/locale"
)

// knownWeakSecrets contains example secrets that must never be deployed.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PORTAL_DB_PATH" envDefault:"./data/portal.db"`
	SessionSecret string `env:"PORTAL_SESSION_SECRET,required"`
	ServerHost    string `env:"PORTAL_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PORTAL_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PORTAL_ENV" envDefault:"development"`
	LogLevel      string `env:"PORTAL_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"PORTAL_UPLOADS_DIR" envDefault:"./uploads"`

	// Path to a GeoLite2-Country.mmdb file; clicks carry no country without it.
	GeoIPDBPath string `env:"PORTAL_GEOIP_DB_PATH"`

	// Locale used when neither the request nor its cookie picks one.
	DefaultLocale string `env:"PORTAL_DEFAULT_LOCALE" envDefault:"base"`

	// Seeding
	AdminEmail    string `env:"PORTAL_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"PORTAL_ADMIN_PASSWORD"`
	DoSeed        bool   `env:"PORTAL_DO_SEED" envDefault:"false"`

	MaxUploadMB int `env:"PORTAL_MAX_UPLOAD_MB" envDefault:"10"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Locale returns the configured default locale.
func (c Config) Locale() locale.Locale {
	return locale.Parse(c.DefaultLocale)
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PORTAL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("PORTAL_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PORTAL_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("PORTAL_MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	if !locale.IsSupported(cfg.DefaultLocale) {
		return nil, fmt.Errorf("PORTAL_DEFAULT_LOCALE %q is not one of base, vi, zh_hant, zh_hans", cfg.DefaultLocale)
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
