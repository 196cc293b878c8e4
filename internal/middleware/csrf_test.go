// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig_Development(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, true, "localhost:9090")

	if len(cfg.AuthKey) != 32 {
		t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
	}

	want := map[string]bool{"localhost:9090": true, "127.0.0.1:9090": true}
	if len(cfg.TrustedOrigins) != len(want) {
		t.Fatalf("TrustedOrigins = %v, want %d entries", cfg.TrustedOrigins, len(want))
	}
	for _, origin := range cfg.TrustedOrigins {
		if !want[origin] {
			t.Errorf("unexpected TrustedOrigin %q", origin)
		}
		// csrf expects host:port, a full URL causes "origin invalid"
		if strings.HasPrefix(origin, "http") {
			t.Errorf("TrustedOrigin should be host:port, not a URL: %s", origin)
		}
	}
}

func TestDefaultCSRFConfig_DefaultPort(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, true, "")
	if len(cfg.TrustedOrigins) == 0 || cfg.TrustedOrigins[0] != "localhost:8080" {
		t.Errorf("TrustedOrigins = %v, want localhost:8080 first", cfg.TrustedOrigins)
	}
}

func TestDefaultCSRFConfig_Production(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false, "0.0.0.0:8080")
	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("expected no TrustedOrigins in production, got %v", cfg.TrustedOrigins)
	}
}

func csrfTestHandler() http.Handler {
	return CSRF(DefaultCSRFConfig(testAuthKey, false, ""))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCSRF_AllowsSafeAndSameOriginRequests(t *testing.T) {
	handler := csrfTestHandler()

	tests := []struct {
		name   string
		method string
		header map[string]string
	}{
		{"GET cross-site", http.MethodGet, map[string]string{"Sec-Fetch-Site": "cross-site"}},
		{"POST same-origin", http.MethodPost, map[string]string{"Sec-Fetch-Site": "same-origin"}},
		{"POST without browser headers", http.MethodPost, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/cards/1/track", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
		})
	}
}

func TestCSRF_RejectsCrossSitePost(t *testing.T) {
	handler := csrfTestHandler()

	t.Run("api path gets JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/cards/create", nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		var body Failure
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("body is not JSON: %v", err)
		}
		if body.Code != CodePermission {
			t.Errorf("code = %q, want %q", body.Code, CodePermission)
		}
	})

	t.Run("form path gets text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("Content-Type = %q, want text/plain", ct)
		}
	})
}
