// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"

	"github.com/olegiv/portal-go/internal/locale"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
)

// PortalService answers which sections, cards and buttons a viewer sees.
// It never writes.
type PortalService struct {
	queries *store.Queries
}

// NewPortalService creates a new PortalService.
func NewPortalService(db *sql.DB) *PortalService {
	return &PortalService{queries: store.New(db)}
}

// VisibleCards returns the active cards of a section whose access level the
// viewer satisfies, ordered by sort order then name.
func (s *PortalService) VisibleCards(ctx context.Context, sectionID int64, viewer model.Viewer) ([]store.SystemCard, error) {
	cards, err := s.queries.ListVisibleCardsBySection(ctx, store.ListVisibleCardsBySectionParams{
		SectionID: sectionID,
		MaxRank:   int64(viewer.Rank()),
	})
	if err != nil {
		return nil, storeErr("listing visible cards", err)
	}
	return cards, nil
}

// VisibleButtons returns the active factory buttons the viewer may see.
func (s *PortalService) VisibleButtons(ctx context.Context, viewer model.Viewer) ([]store.FactoryButton, error) {
	buttons, err := s.queries.ListVisibleFactoryButtons(ctx, int64(viewer.Rank()))
	if err != nil {
		return nil, storeErr("listing visible buttons", err)
	}
	return buttons, nil
}

// VisibleSections returns the active sections of the home page when
// factoryID is nil, or of that factory otherwise. Sections carry no access
// level of their own, so only their cards are filtered by viewer.
func (s *PortalService) VisibleSections(ctx context.Context, factoryID *int64) ([]store.PortalSection, error) {
	var (
		sections []store.PortalSection
		err      error
	)
	if factoryID == nil {
		sections, err = s.queries.ListActiveHomeSections(ctx)
	} else {
		sections, err = s.queries.ListActiveSectionsByFactory(ctx, *factoryID)
	}
	if err != nil {
		return nil, storeErr("listing sections", err)
	}
	return sections, nil
}

// Factory loads a factory button for its workspace page. Inactive buttons
// and those above the viewer's rank are reported as not found.
func (s *PortalService) Factory(ctx context.Context, id int64, viewer model.Viewer) (store.FactoryButton, error) {
	button, err := s.queries.GetFactoryButton(ctx, id)
	if err != nil {
		return store.FactoryButton{}, lookupErr("factory", id, err)
	}
	if viewer.Rank() != model.RankAdmin && (!button.IsActive || !model.AccessLevel(button.AccessLevel).VisibleTo(viewer)) {
		return store.FactoryButton{}, &NotFoundError{Entity: "factory", ID: id}
	}
	return button, nil
}

// SectionView is a localized section with its visible, localized cards.
type SectionView struct {
	locale.Resolved[store.PortalSection]
	Cards []locale.Resolved[store.SystemCard]
}

// PageView is everything the home and factory pages render.
type PageView struct {
	Sections []SectionView
	Buttons  []locale.Resolved[store.FactoryButton]
}

// Page assembles the sections, cards and buttons for a page in locale l.
func (s *PortalService) Page(ctx context.Context, factoryID *int64, viewer model.Viewer, l locale.Locale) (PageView, error) {
	sections, err := s.VisibleSections(ctx, factoryID)
	if err != nil {
		return PageView{}, err
	}

	view := PageView{Sections: make([]SectionView, 0, len(sections))}
	for _, section := range sections {
		cards, err := s.VisibleCards(ctx, section.ID, viewer)
		if err != nil {
			return PageView{}, err
		}
		view.Sections = append(view.Sections, SectionView{
			Resolved: locale.ResolveOne(section, l),
			Cards:    locale.ResolveMany(cards, l),
		})
	}

	buttons, err := s.VisibleButtons(ctx, viewer)
	if err != nil {
		return PageView{}, err
	}
	view.Buttons = locale.ResolveMany(buttons, l)
	return view, nil
}
