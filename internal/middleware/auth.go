// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for viewer identity,
// language selection and the security surface of the portal.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/session"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyViewer      ContextKey = "viewer"
	ContextKeyRequestPath ContextKey = "request_path"
)

// LoadViewer resolves the session user into the request context. Requests
// without a session, or whose user no longer exists, continue anonymously.
func LoadViewer(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), session.KeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("loading session user", "error", err, "user_id", userID)
				}
				sm.Remove(r.Context(), session.KeyUserID)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			ctx = WithViewer(ctx, model.NewViewer(user.ID, user.Name, user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetViewer returns the viewer the request is served for.
func GetViewer(r *http.Request) model.Viewer {
	viewer, ok := r.Context().Value(ContextKeyViewer).(model.Viewer)
	if !ok {
		return model.Anonymous
	}
	return viewer
}

// WithViewer returns a copy of ctx carrying viewer.
func WithViewer(ctx context.Context, viewer model.Viewer) context.Context {
	return context.WithValue(ctx, ContextKeyViewer, viewer)
}

// RequireAdmin guards HTML pages. Anonymous viewers are sent to the login
// page with a return path, signed-in non-admins get 403.
func RequireAdmin(events *service.EventService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := GetViewer(r)
			if !viewer.IsAuthenticated {
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			if viewer.Rank() < model.RankAdmin {
				logAccessDenied(r, viewer, events)
				http.Error(w, i18n.T(GetLanguage(r), "error.permission"), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminJSON guards the mutation API. Failures use the JSON failure
// payload so the editor scripts can show the message.
func RequireAdminJSON(events *service.EventService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := GetViewer(r)
			if viewer.Rank() < model.RankAdmin {
				logAccessDenied(r, viewer, events)
				WriteFailure(w, http.StatusOK, CodePermission, i18n.T(GetLanguage(r), "error.permission"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func logAccessDenied(r *http.Request, viewer model.Viewer, events *service.EventService) {
	slog.Warn("access denied",
		"method", r.Method,
		"path", r.URL.Path,
		"user_id", viewer.ID(),
		"authenticated", viewer.IsAuthenticated,
		"remote_addr", util.ClientIP(r),
	)

	if events != nil {
		metadata := map[string]any{
			"method":        r.Method,
			"authenticated": viewer.IsAuthenticated,
		}
		_ = events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Access denied: administrator required",
			viewer.UserID, util.ClientIP(r), r.URL.Path, metadata)
	}
}

// RequestPath stores the request path in the context.
// The event log handler includes it in persisted error entries.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}
