// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// StripTrailingSlash accepts every route with or without a trailing slash.
// GET and HEAD requests are redirected (301) to the canonical URL; other
// methods are routed in place so form and API submissions keep their body.
// The root path "/" is left alone.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" || !strings.HasSuffix(path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		trimmed := strings.TrimRight(path, "/")
		if trimmed == "" {
			trimmed = "/"
		}

		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			target := trimmed
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rctx.RoutePath = trimmed
		}
		r.URL.Path = trimmed
		next.ServeHTTP(w, r)
	})
}
