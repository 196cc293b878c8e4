// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/store"
)

// pageRenderer renders full HTML pages with the portal branding.
type pageRenderer struct {
	renderer *render.Renderer
	settings *service.SettingsService
}

// loadSettings returns the settings row. A failed lookup is logged and
// yields defaults so error pages can still render.
func (p pageRenderer) loadSettings(r *http.Request) store.PortalSetting {
	settings, err := p.settings.Get(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "loading settings for page", "error", err, "path", r.URL.Path)
		return store.PortalSetting{SiteTitle: "Portal", SiteTitleEn: "Portal"}
	}
	return settings
}

// render writes the page name with the given status and payload.
func (p pageRenderer) render(w http.ResponseWriter, r *http.Request, status int, name, title string, settings store.PortalSetting, data any) {
	td := render.TemplateData{
		Title: title,
		Site:  render.NewSite(settings, middleware.GetLocale(r)),
		Data:  data,
	}
	if err := p.renderer.RenderStatus(w, r, status, name, td); err != nil {
		logAndInternalError(w, "template render failed", "error", err, "template", name)
	}
}

// errorPage is the payload of the error template.
type errorPage struct {
	Status  int
	Message string
}

// renderError renders the error page with a translated message.
func (p pageRenderer) renderError(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	lang := middleware.GetLanguage(r)
	message := i18n.T(lang, messageKey)
	p.render(w, r, status, TemplateError, message, p.loadSettings(r), errorPage{Status: status, Message: message})
}

// renderNotFound renders the 404 page.
func (p pageRenderer) renderNotFound(w http.ResponseWriter, r *http.Request) {
	p.renderError(w, r, http.StatusNotFound, "error.not_found_body")
}

// renderInternalError logs err and renders the 500 page.
func (p pageRenderer) renderInternalError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	slog.ErrorContext(r.Context(), logMsg, "error", err, "path", r.URL.Path)
	p.renderError(w, r, http.StatusInternalServerError, "error.internal")
}

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "error")
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}
