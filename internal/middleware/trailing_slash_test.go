// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestStripTrailingSlash(t *testing.T) {
	r := chi.NewRouter()
	r.Use(StripTrailingSlash)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("home")) })
	r.Get("/factory", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("factory")) })
	r.Post("/api/cards/{id}/track", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("track " + chi.URLParam(r, "id")))
	})

	tests := []struct {
		name         string
		method       string
		target       string
		wantCode     int
		wantLocation string
		wantBody     string
	}{
		{"root untouched", http.MethodGet, "/", http.StatusOK, "", "home"},
		{"canonical path", http.MethodGet, "/factory?id=2", http.StatusOK, "", "factory"},
		{"GET redirects keeping query", http.MethodGet, "/factory/?id=2", http.StatusMovedPermanently, "/factory?id=2", ""},
		{"POST routed in place", http.MethodPost, "/api/cards/7/track/", http.StatusOK, "", "track 7"},
		{"POST double slash", http.MethodPost, "/api/cards/7/track//", http.StatusOK, "", "track 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantLocation != "" && rec.Header().Get("Location") != tt.wantLocation {
				t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), tt.wantLocation)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
