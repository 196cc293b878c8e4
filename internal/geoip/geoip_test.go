// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"
)

func TestResolverWithoutDatabase(t *testing.T) {
	r, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	defer func() { _ = r.Close() }()

	if r.Enabled() {
		t.Error("resolver without a database should be disabled")
	}

	tests := map[string]string{
		"10.1.2.3":    CodeLocal,
		"192.168.0.1": CodeLocal,
		"127.0.0.1":   CodeLocal,
		"::1":         CodeLocal,
		"8.8.8.8":     "",
		"not-an-ip":   "",
	}
	for ip, want := range tests {
		if got := r.Country(ip); got != want {
			t.Errorf("Country(%q) = %q, want %q", ip, got, want)
		}
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if r == nil || r.Enabled() {
		t.Error("Open should still return a disabled resolver")
	}
	if got := r.Country("10.0.0.1"); got != CodeLocal {
		t.Errorf("Country(10.0.0.1) = %q, want %q", got, CodeLocal)
	}
}

func TestCountryName(t *testing.T) {
	tests := map[string]string{
		"TW":      "Taiwan",
		"VN":      "Vietnam",
		CodeLocal: "Local Network",
		"ZZ":      "ZZ",
		"":        "Unknown",
	}
	for code, want := range tests {
		if got := CountryName(code); got != want {
			t.Errorf("CountryName(%q) = %q, want %q", code, got, want)
		}
	}
}
