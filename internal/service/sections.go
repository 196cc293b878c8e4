// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

const (
	defaultSectionIcon  = "folder"
	defaultSectionColor = "#6366f1"
)

// SectionService manages portal sections. All methods require an admin.
type SectionService struct {
	db      *sql.DB
	queries *store.Queries
	events  *EventService
}

// NewSectionService creates a new SectionService.
func NewSectionService(db *sql.DB, events *EventService) *SectionService {
	return &SectionService{db: db, queries: store.New(db), events: events}
}

type sectionValues struct {
	localizedValues
	FactoryID sql.NullInt64
	Icon      string
	Color     string
	Order     int64
	IsActive  bool
}

func (v *sectionValues) validate() error {
	if err := v.localizedValues.validate(); err != nil {
		return err
	}
	return validateColor("color", v.Color)
}

// apply overlays p onto v. The factory reference is resolved against q:
// an unknown id or null detaches the section onto the home page.
func (p SectionPatch) apply(ctx context.Context, q *store.Queries, v *sectionValues) error {
	p.LocalizedPatch.apply(&v.localizedValues)
	setString(&v.Icon, p.Icon)
	setString(&v.Color, p.Color)
	setInt(&v.Order, p.Order)
	setBool(&v.IsActive, p.IsActive)

	if !p.Factory.Set {
		return nil
	}
	v.FactoryID = sql.NullInt64{}
	if p.Factory.ID == nil {
		return nil
	}
	button, err := q.GetFactoryButton(ctx, *p.Factory.ID)
	switch {
	case err == nil:
		v.FactoryID = sql.NullInt64{Int64: button.ID, Valid: true}
	case !errors.Is(err, sql.ErrNoRows):
		return storeErr("resolving factory", err)
	}
	return nil
}

// ListForEdit returns all sections of the home page (factoryID nil) or of
// one factory, including inactive ones.
func (s *SectionService) ListForEdit(ctx context.Context, actor model.Viewer, factoryID *int64) ([]store.PortalSection, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	all, err := s.queries.ListPortalSections(ctx)
	if err != nil {
		return nil, storeErr("listing sections", err)
	}

	sections := make([]store.PortalSection, 0, len(all))
	for _, section := range all {
		switch {
		case factoryID == nil && !section.FactoryID.Valid:
			sections = append(sections, section)
		case factoryID != nil && section.FactoryID.Valid && section.FactoryID.Int64 == *factoryID:
			sections = append(sections, section)
		}
	}
	return sections, nil
}

// Create adds a section. name is required.
func (s *SectionService) Create(ctx context.Context, actor model.Viewer, fields SectionPatch) (store.PortalSection, error) {
	if err := requireAdmin(actor); err != nil {
		return store.PortalSection{}, err
	}

	v := sectionValues{
		Icon:     defaultSectionIcon,
		Color:    defaultSectionColor,
		IsActive: true,
	}
	if err := fields.apply(ctx, s.queries, &v); err != nil {
		return store.PortalSection{}, err
	}
	if err := v.validate(); err != nil {
		return store.PortalSection{}, err
	}

	now := time.Now()
	section, err := s.queries.CreatePortalSection(ctx, store.CreatePortalSectionParams{
		FactoryID:         v.FactoryID,
		Name:              v.Name,
		NameVi:            v.NameVi,
		NameZhHant:        v.NameZhHant,
		NameZhHans:        v.NameZhHans,
		Description:       v.Description,
		DescriptionVi:     v.DescriptionVi,
		DescriptionZhHant: v.DescriptionZhHant,
		DescriptionZhHans: v.DescriptionZhHans,
		Icon:              v.Icon,
		Color:             v.Color,
		SortOrder:         v.Order,
		IsActive:          v.IsActive,
		CreatedAt:         now,
		UpdatedAt:         now,
		UpdatedBy:         util.NullInt64FromPtr(actor.UserID),
	})
	if err != nil {
		return store.PortalSection{}, storeErr("creating section", err)
	}

	s.events.LogChange(ctx, model.EventCategorySection, "Section created", actor, map[string]any{
		"section_id": section.ID,
		"name":       section.Name,
	})
	return section, nil
}

// Update applies the set fields of patch to section id.
func (s *SectionService) Update(ctx context.Context, actor model.Viewer, id int64, patch SectionPatch) (store.PortalSection, error) {
	if err := requireAdmin(actor); err != nil {
		return store.PortalSection{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.PortalSection{}, storeErr("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	current, err := q.GetPortalSection(ctx, id)
	if err != nil {
		return store.PortalSection{}, lookupErr("section", id, err)
	}

	v := sectionValues{
		localizedValues: localizedValues{
			Name:              current.Name,
			NameVi:            current.NameVi,
			NameZhHant:        current.NameZhHant,
			NameZhHans:        current.NameZhHans,
			Description:       current.Description,
			DescriptionVi:     current.DescriptionVi,
			DescriptionZhHant: current.DescriptionZhHant,
			DescriptionZhHans: current.DescriptionZhHans,
		},
		FactoryID: current.FactoryID,
		Icon:      current.Icon,
		Color:     current.Color,
		Order:     current.SortOrder,
		IsActive:  current.IsActive,
	}
	if err := patch.apply(ctx, q, &v); err != nil {
		return store.PortalSection{}, err
	}
	if err := v.validate(); err != nil {
		return store.PortalSection{}, err
	}

	section, err := q.UpdatePortalSection(ctx, store.UpdatePortalSectionParams{
		FactoryID:         v.FactoryID,
		Name:              v.Name,
		NameVi:            v.NameVi,
		NameZhHant:        v.NameZhHant,
		NameZhHans:        v.NameZhHans,
		Description:       v.Description,
		DescriptionVi:     v.DescriptionVi,
		DescriptionZhHant: v.DescriptionZhHant,
		DescriptionZhHans: v.DescriptionZhHans,
		Icon:              v.Icon,
		Color:             v.Color,
		SortOrder:         v.Order,
		IsActive:          v.IsActive,
		UpdatedAt:         time.Now(),
		UpdatedBy:         util.NullInt64FromPtr(actor.UserID),
		ID:                id,
	})
	if err != nil {
		return store.PortalSection{}, storeErr("updating section", err)
	}
	if err := tx.Commit(); err != nil {
		return store.PortalSection{}, storeErr("committing section update", err)
	}

	s.events.LogChange(ctx, model.EventCategorySection, "Section updated", actor, map[string]any{"section_id": id})
	return section, nil
}

// Delete removes section id and, through the foreign key, all its cards.
func (s *SectionService) Delete(ctx context.Context, actor model.Viewer, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.queries.DeletePortalSection(ctx, id)
	if err != nil {
		return storeErr(fmt.Sprintf("deleting section %d", id), err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "section", ID: id}
	}

	s.events.LogChange(ctx, model.EventCategorySection, "Section deleted", actor, map[string]any{"section_id": id})
	return nil
}
