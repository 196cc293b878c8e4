// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/locale"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// PortalHandler serves the public home and factory pages.
type PortalHandler struct {
	pages  pageRenderer
	portal *service.PortalService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(db *sql.DB, renderer *render.Renderer, settings *service.SettingsService) *PortalHandler {
	return &PortalHandler{
		pages:  pageRenderer{renderer: renderer, settings: settings},
		portal: service.NewPortalService(db),
	}
}

// portalPage is the payload of the home and factory templates.
type portalPage struct {
	View       service.PageView
	Factory    locale.Resolved[store.FactoryButton]
	IsEditMode bool
}

// isEditMode reports whether the edit overlay was requested by an admin.
func isEditMode(r *http.Request, viewer model.Viewer) bool {
	return viewer.Rank() == model.RankAdmin && r.URL.Query().Get("edit") == "1"
}

// maintenance renders the maintenance page when the portal is closed to
// viewer. It reports whether a response was written.
func (h *PortalHandler) maintenance(w http.ResponseWriter, r *http.Request, settings store.PortalSetting, viewer model.Viewer) bool {
	if !settings.MaintenanceMode || viewer.Rank() == model.RankAdmin {
		return false
	}
	w.Header().Set("Retry-After", "3600")
	title := i18n.T(middleware.GetLanguage(r), "maintenance.title")
	h.pages.render(w, r, http.StatusServiceUnavailable, TemplateMaintenance, title, settings, nil)
	return true
}

// Home handles GET /.
func (h *PortalHandler) Home(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	settings := h.pages.loadSettings(r)
	if h.maintenance(w, r, settings, viewer) {
		return
	}

	view, err := h.portal.Page(r.Context(), nil, viewer, middleware.GetLocale(r))
	if err != nil {
		h.pages.renderInternalError(w, r, "loading home page", err)
		return
	}

	h.pages.render(w, r, http.StatusOK, TemplateHome, "", settings, portalPage{
		View:       view,
		IsEditMode: isEditMode(r, viewer),
	})
}

// Factory handles GET /factory?id=<id>. A missing id selects the first
// factory; an invalid, unknown or hidden one renders 404.
func (h *PortalHandler) Factory(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)

	id := defaultFactoryID
	if raw := r.URL.Query().Get("id"); raw != "" {
		parsed, ok := util.ParsePositiveID(raw)
		if !ok {
			h.pages.renderNotFound(w, r)
			return
		}
		id = parsed
	}

	settings := h.pages.loadSettings(r)
	if h.maintenance(w, r, settings, viewer) {
		return
	}

	button, err := h.portal.Factory(r.Context(), id, viewer)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.pages.renderNotFound(w, r)
			return
		}
		h.pages.renderInternalError(w, r, "loading factory", err)
		return
	}

	loc := middleware.GetLocale(r)
	view, err := h.portal.Page(r.Context(), &id, viewer, loc)
	if err != nil {
		h.pages.renderInternalError(w, r, "loading factory page", err)
		return
	}

	factory := locale.ResolveOne(button, loc)
	h.pages.render(w, r, http.StatusOK, TemplateFactory, factory.DisplayName, settings, portalPage{
		View:       view,
		Factory:    factory,
		IsEditMode: isEditMode(r, viewer),
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *PortalHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.pages.renderNotFound(w, r)
}
