// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"filippo.io/csrf/gorilla"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/util"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla checks Fetch metadata and Origin headers, so no
// token cookie or hidden form field is involved.
type CSRFConfig struct {
	// AuthKey is kept for the gorilla-compatible constructor.
	AuthKey []byte

	// ErrorHandler is called when CSRF validation fails.
	ErrorHandler http.Handler

	// TrustedOrigins are host:port values allowed to make cross-origin
	// state-changing requests.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns the CSRF configuration for the server.
// In development the listen address and its localhost aliases are trusted
// so that plain-HTTP browsers without Fetch metadata still pass.
func DefaultCSRFConfig(authKey []byte, isDev bool, serverAddr string) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}

	if isDev {
		port := "8080"
		if i := strings.LastIndex(serverAddr, ":"); i >= 0 && i < len(serverAddr)-1 {
			port = serverAddr[i+1:]
		}
		// csrf expects host:port values, not URLs
		cfg.TrustedOrigins = []string{
			"localhost:" + port,
			"127.0.0.1:" + port,
		}
	}

	return cfg
}

// CSRF returns a middleware that rejects cross-origin state-changing
// requests.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	var opts []csrf.Option

	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	} else {
		opts = append(opts, csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)))
	}

	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

// csrfErrorHandler answers API calls with the JSON failure payload and
// form posts with a plain 403.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reasonStr := "unknown"
	if reason := csrf.FailureReason(r); reason != nil {
		reasonStr = reason.Error()
	}
	slog.Warn("CSRF validation failed",
		"reason", reasonStr,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		"ip", util.ClientIP(r),
	)

	message := i18n.T(GetLanguage(r), "error.permission")
	if strings.HasPrefix(r.URL.Path, "/api/") {
		WriteFailure(w, http.StatusForbidden, CodePermission, message)
		return
	}
	http.Error(w, message, http.StatusForbidden)
}
