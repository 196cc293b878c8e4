// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/portal-go/internal/locale"
)

// ContextKeyLocale is the context key of the request locale.
const ContextKeyLocale ContextKey = "locale"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "portal_lang"

// languageCookieMaxAge keeps an explicit language choice for a year.
const languageCookieMaxAge = 365 * 24 * 60 * 60

// Language detects the request locale. Priority order:
//  1. Query parameter ?lang=XX, which also updates the cookie
//  2. The language cookie
//  3. The Accept-Language header
//  4. fallback
func Language(fallback locale.Locale) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := detectLocale(w, r, fallback)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), loc)))
		})
	}
}

func detectLocale(w http.ResponseWriter, r *http.Request, fallback locale.Locale) locale.Locale {
	if q := r.URL.Query().Get("lang"); q != "" {
		loc := locale.Parse(q)
		SetLanguageCookie(w, loc)
		return loc
	}

	if cookie, err := r.Cookie(LanguageCookieName); err == nil && locale.IsSupported(cookie.Value) {
		return locale.Locale(cookie.Value)
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if loc, ok := locale.Match(accept); ok {
			return loc
		}
	}

	return fallback
}

// WithLocale returns a copy of ctx carrying loc.
func WithLocale(ctx context.Context, loc locale.Locale) context.Context {
	return context.WithValue(ctx, ContextKeyLocale, loc)
}

// GetLocale returns the entity-text locale of the request, Base when unset.
func GetLocale(r *http.Request) locale.Locale {
	loc, ok := r.Context().Value(ContextKeyLocale).(locale.Locale)
	if !ok {
		return locale.Base
	}
	return loc
}

// GetLanguage returns the interface language tag used for translated
// strings. It follows the request locale, so Base renders in English.
func GetLanguage(r *http.Request) string {
	return GetLocale(r).Tag()
}

// SetLanguageCookie stores the language preference.
func SetLanguageCookie(w http.ResponseWriter, loc locale.Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    loc.String(),
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
