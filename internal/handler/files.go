// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
)

// Cache lifetimes in seconds.
const (
	staticMaxAge  = 31536000 // 1 year
	uploadsMaxAge = 604800   // 1 week
)

// FilesHandler serves embedded assets, uploaded branding images and the
// favicon.
type FilesHandler struct {
	static   http.Handler
	uploads  http.Handler
	settings *service.SettingsService
	assets   *service.AssetService
}

// NewFilesHandler creates a FilesHandler. staticFS is rooted at the
// directory holding css/ and js/. Uploads are served from assets.Dir().
func NewFilesHandler(staticFS fs.FS, assets *service.AssetService, settings *service.SettingsService) *FilesHandler {
	static := http.StripPrefix(RouteStatic+"/", http.FileServer(http.FS(staticFS)))
	uploads := http.StripPrefix(RouteUploads+"/", http.FileServer(http.Dir(assets.Dir())))

	return &FilesHandler{
		static:   middleware.StaticCache(staticMaxAge, false)(noListing(static)),
		uploads:  middleware.StaticCache(uploadsMaxAge, true)(noListing(uploads)),
		settings: settings,
		assets:   assets,
	}
}

// noListing answers directory requests with 404 instead of an index.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// Static handles GET /static/*.
func (h *FilesHandler) Static(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}

// Uploads handles GET /uploads/*.
func (h *FilesHandler) Uploads(w http.ResponseWriter, r *http.Request) {
	h.uploads.ServeHTTP(w, r)
}

// Favicon handles GET /favicon.ico by redirecting to the uploaded favicon.
// Without one, or when its file is gone, the response is empty.
func (h *FilesHandler) Favicon(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "loading settings for favicon", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if settings.Favicon == "" || !h.assets.Exists(settings.Favicon) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, render.UploadURL(settings.Favicon), http.StatusFound)
}
