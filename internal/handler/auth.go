// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/portal-go/internal/auth"
	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/session"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	pages           pageRenderer
	queries         *store.Queries
	sessionManager  *scs.SessionManager
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable
// lockouts.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, settings *service.SettingsService, sm *scs.SessionManager, events *service.EventService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		pages:           pageRenderer{renderer: renderer, settings: settings},
		queries:         store.New(db),
		sessionManager:  sm,
		eventService:    events,
		loginProtection: lp,
	}
}

// loginPage is the payload of the login template.
type loginPage struct {
	Next  string
	Email string
	Error string
}

// safeNext returns next when it is a local path, else "/".
func safeNext(next string) string {
	if next = safeNextOrEmpty(next); next != "" {
		return next
	}
	return RouteRoot
}

// loginURL returns the login page URL carrying next.
func loginURL(next string) string {
	if next == "" || next == RouteRoot {
		return RouteLogin
	}
	return RouteLogin + "?next=" + url.QueryEscape(next)
}

// LoginForm renders the login page. Signed-in viewers are sent on to next.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if middleware.GetViewer(r).IsAuthenticated {
		http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
		return
	}

	title := i18n.T(middleware.GetLanguage(r), "auth.login_title")
	h.pages.render(w, r, http.StatusOK, TemplateLogin, title, h.pages.loadSettings(r), loginPage{
		Next: safeNextOrEmpty(next),
	})
}

// safeNextOrEmpty drops non-local next values instead of defaulting them.
func safeNextOrEmpty(next string) string {
	if next != "" && util.IsLocalPath(next) {
		return next
	}
	return ""
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	renderer := h.pages.renderer

	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, RouteLogin, i18n.T(lang, "auth.required"))
		return
	}

	next := safeNextOrEmpty(r.PostFormValue("next"))
	back := loginURL(next)
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if email == "" || password == "" {
		flashError(w, r, renderer, back, i18n.T(lang, "auth.required"))
		return
	}

	clientIP := util.ClientIP(r)
	requestURL := r.URL.Path

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login attempt on locked account", nil, clientIP, requestURL, map[string]any{"email": email})
			flashError(w, r, renderer, back, i18n.T(lang, "auth.locked", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: user not found", nil, clientIP, requestURL, map[string]any{"email": email})
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Unknown emails count as failures too, so lockouts do not reveal which accounts exist.
		h.rejectLogin(w, r, back, email, nil)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: invalid password", &user.ID, clientIP, requestURL, map[string]any{"email": email})
		h.rejectLogin(w, r, back, email, &user.ID)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserCredentials(r.Context(), store.UpdateUserCredentialsParams{
				PasswordHash: newHash,
				Role:         user.Role,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged in", &user.ID, clientIP, requestURL, map[string]any{"email": user.Email})

	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// rejectLogin records a failed attempt and redirects back with the most
// specific message: lockout, remaining attempts or invalid credentials.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, back, email string, userID *int64) {
	lang := middleware.GetLanguage(r)
	renderer := h.pages.renderer

	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Account locked due to failed attempts", userID, util.ClientIP(r), r.URL.Path, map[string]any{"email": email, "duration": lockDuration.String()})
			flashError(w, r, renderer, back, i18n.T(lang, "auth.locked", formatDuration(lockDuration)))
			return
		}
		if remaining := h.loginProtection.GetRemainingAttempts(email); remaining > 0 && remaining <= 3 {
			flashError(w, r, renderer, back, i18n.T(lang, "auth.attempts_left", remaining))
			return
		}
	}
	flashError(w, r, renderer, back, i18n.T(lang, "auth.invalid"))
}

// Logout destroys the session and returns to the home page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if userID > 0 {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged out", &userID, util.ClientIP(r), r.URL.Path, nil)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)

	flashAndRedirect(w, r, h.pages.renderer, RouteRoot, i18n.T(middleware.GetLanguage(r), "auth.logged_out"), "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
