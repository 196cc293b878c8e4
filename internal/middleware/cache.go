// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// StaticCache adds Cache-Control headers for static files. Immutable suits
// uploads, whose names are random and never reused.
func StaticCache(maxAge int, immutable bool) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(maxAge)
	if immutable {
		value += ", immutable"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
