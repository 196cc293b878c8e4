// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the portal's cookie-backed login sessions.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Lifetime is how long a login session stays valid.
const Lifetime = 24 * time.Hour

// Session keys.
const (
	KeyUserID    = "user_id"
	KeyFlash     = "flash"
	KeyFlashType = "flash_type"
)

// New creates a session manager backed by the sessions table of db.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev

	// The __Host- prefix requires Secure and Path=/ with no Domain, so it
	// only applies outside development where cookies are sent over TLS.
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}
