// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// recentClicksLimit bounds the click list on the edit view.
const recentClicksLimit = 20

// EditHandler serves the admin editing view.
type EditHandler struct {
	pages     pageRenderer
	buttons   *service.ButtonService
	sections  *service.SectionService
	cards     *service.CardService
	analytics *service.AnalyticsService
	events    *service.EventService
}

// EditServices groups the services the edit view reads from.
type EditServices struct {
	Settings  *service.SettingsService
	Buttons   *service.ButtonService
	Sections  *service.SectionService
	Cards     *service.CardService
	Analytics *service.AnalyticsService
	Events    *service.EventService
}

// NewEditHandler creates a new EditHandler.
func NewEditHandler(renderer *render.Renderer, svc EditServices) *EditHandler {
	return &EditHandler{
		pages:     pageRenderer{renderer: renderer, settings: svc.Settings},
		buttons:   svc.Buttons,
		sections:  svc.Sections,
		cards:     svc.Cards,
		analytics: svc.Analytics,
		events:    svc.Events,
	}
}

// editSection is one section with all of its cards.
type editSection struct {
	Section store.PortalSection
	Cards   []store.SystemCard
}

// editPage is the payload of the edit template.
type editPage struct {
	Factory      *store.FactoryButton
	Settings     store.PortalSetting
	Sections     []editSection
	Buttons      []store.FactoryButton
	ClickCounts  map[int64]int64
	RecentClicks []store.PortalAnalytic
	Events       []store.Event
}

// Edit handles GET /edit?factory=<id>. Without factory it edits the home
// page sections; an invalid or unknown factory renders 404.
func (h *EditHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := middleware.GetViewer(r)

	var factoryID *int64
	page := editPage{}

	if raw := r.URL.Query().Get("factory"); raw != "" {
		id, ok := util.ParsePositiveID(raw)
		if !ok {
			h.pages.renderNotFound(w, r)
			return
		}
		button, err := h.buttons.Get(ctx, actor, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				h.pages.renderNotFound(w, r)
				return
			}
			h.pages.renderInternalError(w, r, "loading factory for edit", err)
			return
		}
		factoryID = &id
		page.Factory = &button
	}

	settings, err := h.pages.settings.Get(ctx)
	if err != nil {
		h.pages.renderInternalError(w, r, "loading settings for edit", err)
		return
	}
	page.Settings = settings

	if page.Buttons, err = h.buttons.List(ctx, actor); err != nil {
		h.pages.renderInternalError(w, r, "listing buttons for edit", err)
		return
	}

	sections, err := h.sections.ListForEdit(ctx, actor, factoryID)
	if err != nil {
		h.pages.renderInternalError(w, r, "listing sections for edit", err)
		return
	}
	page.Sections = make([]editSection, 0, len(sections))
	for _, section := range sections {
		cards, err := h.cards.ListBySection(ctx, actor, section.ID)
		if err != nil {
			h.pages.renderInternalError(w, r, "listing cards for edit", err)
			return
		}
		page.Sections = append(page.Sections, editSection{Section: section, Cards: cards})
	}

	if page.ClickCounts, err = h.analytics.ClickCounts(ctx); err != nil {
		h.pages.renderInternalError(w, r, "counting clicks for edit", err)
		return
	}
	if page.RecentClicks, err = h.analytics.ListRecent(ctx, recentClicksLimit); err != nil {
		h.pages.renderInternalError(w, r, "listing clicks for edit", err)
		return
	}
	if page.Events, err = h.events.Recent(ctx, "", recentEventsLimit); err != nil {
		h.pages.renderInternalError(w, r, "listing events for edit", err)
		return
	}

	title := i18n.T(middleware.GetLanguage(r), "edit.title")
	h.pages.render(w, r, http.StatusOK, TemplateEdit, title, settings, page)
}
