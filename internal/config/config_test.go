// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/portal-go/internal/locale"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTAL_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/portal.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/portal.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.UploadsDir != "./uploads" {
		t.Errorf("UploadsDir = %q, want %q", cfg.UploadsDir, "./uploads")
	}
	if cfg.AdminEmail != "admin@example.com" {
		t.Errorf("AdminEmail = %q", cfg.AdminEmail)
	}
	if cfg.AdminPassword != "" {
		t.Errorf("AdminPassword = %q, want empty", cfg.AdminPassword)
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
	if cfg.Locale() != locale.Base {
		t.Errorf("Locale() = %q, want base", cfg.Locale())
	}
	if cfg.MaxUploadBytes() != 10<<20 {
		t.Errorf("MaxUploadBytes() = %d, want %d", cfg.MaxUploadBytes(), 10<<20)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTAL_SESSION_SECRET", "custom-secret-key-32-bytes-long!")
	setEnv(t, "PORTAL_DB_PATH", "/custom/path.db")
	setEnv(t, "PORTAL_SERVER_HOST", "0.0.0.0")
	setEnv(t, "PORTAL_SERVER_PORT", "3000")
	setEnv(t, "PORTAL_ENV", "production")
	setEnv(t, "PORTAL_LOG_LEVEL", "debug")
	setEnv(t, "PORTAL_DEFAULT_LOCALE", "zh_hant")
	setEnv(t, "PORTAL_ADMIN_PASSWORD", "s3cret-pass")
	setEnv(t, "PORTAL_DO_SEED", "true")
	setEnv(t, "PORTAL_MAX_UPLOAD_MB", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true in production")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.Locale() != locale.TraditionalChinese {
		t.Errorf("Locale() = %q", cfg.Locale())
	}
	if cfg.AdminPassword != "s3cret-pass" || !cfg.DoSeed {
		t.Errorf("seed settings = %q/%v", cfg.AdminPassword, cfg.DoSeed)
	}
	if cfg.MaxUploadBytes() != 2<<20 {
		t.Errorf("MaxUploadBytes() = %d", cfg.MaxUploadBytes())
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when PORTAL_SESSION_SECRET is not set")
	}
}

func TestLoad_RejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
		{"known default", "change-me-to-32-byte-secret-key!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "PORTAL_SESSION_SECRET", tt.secret)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with secret %q", tt.secret)
			}
		})
	}
}

func TestLoad_SessionSecretMinimumLength(t *testing.T) {
	os.Clearenv()
	secret32 := "12345678901234567890123456789012"
	setEnv(t, "PORTAL_SESSION_SECRET", secret32)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should succeed with 32-byte secret: %v", err)
	}
	if cfg.SessionSecret != secret32 {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, secret32)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORTAL_DEFAULT_LOCALE", "fr"},
		{"PORTAL_MAX_UPLOAD_MB", "0"},
		{"PORTAL_SERVER_PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "PORTAL_SESSION_SECRET", testSecret)
			setEnv(t, tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (Config{LogLevel: tt.level}).SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_GeoIPEnabled(t *testing.T) {
	if (Config{}).GeoIPEnabled() {
		t.Error("GeoIPEnabled() = true with no path")
	}
	if !(Config{GeoIPDBPath: "/path/to/GeoLite2-Country.mmdb"}).GeoIPEnabled() {
		t.Error("GeoIPEnabled() = false with a path")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcdefghABCDEFGH", false},
		{"abcABC123", true},
		{"abc123!!!", true},
	}

	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			if got := hasMinimumEntropy(tt.secret); got != tt.want {
				t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
			}
		})
	}
}
