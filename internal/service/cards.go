// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

const (
	defaultCardIcon      = "desktop"
	defaultCardIconColor = "#10b981"
)

// CardService manages system cards. All methods require an admin.
type CardService struct {
	db      *sql.DB
	queries *store.Queries
	events  *EventService
}

// NewCardService creates a new CardService.
func NewCardService(db *sql.DB, events *EventService) *CardService {
	return &CardService{db: db, queries: store.New(db), events: events}
}

type cardValues struct {
	localizedValues
	SectionID   int64
	URL         string
	Icon        string
	IconColor   string
	Status      string
	Order       int64
	IsActive    bool
	IsExternal  bool
	AccessLevel string
}

func (p CardPatch) apply(v *cardValues) {
	p.LocalizedPatch.apply(&v.localizedValues)
	setInt(&v.SectionID, p.SectionID)
	setString(&v.URL, p.URL)
	setString(&v.Icon, p.Icon)
	setString(&v.IconColor, p.IconColor)
	setString(&v.Status, p.Status)
	setInt(&v.Order, p.Order)
	setBool(&v.IsActive, p.IsActive)
	setBool(&v.IsExternal, p.IsExternal)
	setString(&v.AccessLevel, p.AccessLevel)
}

func (v *cardValues) validate() error {
	if err := v.localizedValues.validate(); err != nil {
		return err
	}
	if err := validateURL("url", v.URL); err != nil {
		return err
	}
	if err := validateColor("icon_color", v.IconColor); err != nil {
		return err
	}
	if err := validateStatus(v.Status); err != nil {
		return err
	}
	return validateAccessLevel(v.AccessLevel)
}

// requireSection fails with a not-found error unless section id exists.
func requireSection(ctx context.Context, q *store.Queries, id int64) error {
	if _, err := q.GetPortalSection(ctx, id); err != nil {
		return lookupErr("section", id, err)
	}
	return nil
}

// ListBySection returns every card of a section for the edit view.
func (s *CardService) ListBySection(ctx context.Context, actor model.Viewer, sectionID int64) ([]store.SystemCard, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	cards, err := s.queries.ListCardsBySection(ctx, sectionID)
	if err != nil {
		return nil, storeErr("listing cards", err)
	}
	return cards, nil
}

// Create adds a card. name, url and an existing section_id are required;
// nothing is written when the section is missing.
func (s *CardService) Create(ctx context.Context, actor model.Viewer, fields CardPatch) (store.SystemCard, error) {
	if err := requireAdmin(actor); err != nil {
		return store.SystemCard{}, err
	}
	if fields.SectionID == nil {
		return store.SystemCard{}, invalid("section_id", "is required")
	}

	v := cardValues{
		Icon:        defaultCardIcon,
		IconColor:   defaultCardIconColor,
		Status:      string(model.StatusOnline),
		IsActive:    true,
		AccessLevel: string(model.AccessPublic),
	}
	fields.apply(&v)
	if err := v.validate(); err != nil {
		return store.SystemCard{}, err
	}
	if err := requireSection(ctx, s.queries, v.SectionID); err != nil {
		return store.SystemCard{}, err
	}

	now := time.Now()
	card, err := s.queries.CreateSystemCard(ctx, store.CreateSystemCardParams{
		SectionID:         v.SectionID,
		Name:              v.Name,
		NameVi:            v.NameVi,
		NameZhHant:        v.NameZhHant,
		NameZhHans:        v.NameZhHans,
		Description:       v.Description,
		DescriptionVi:     v.DescriptionVi,
		DescriptionZhHant: v.DescriptionZhHant,
		DescriptionZhHans: v.DescriptionZhHans,
		Url:               v.URL,
		Icon:              v.Icon,
		IconColor:         v.IconColor,
		Status:            v.Status,
		SortOrder:         v.Order,
		IsActive:          v.IsActive,
		IsExternal:        v.IsExternal,
		AccessLevel:       v.AccessLevel,
		CreatedAt:         now,
		UpdatedAt:         now,
		UpdatedBy:         util.NullInt64FromPtr(actor.UserID),
	})
	if err != nil {
		return store.SystemCard{}, storeErr("creating card", err)
	}

	s.events.LogChange(ctx, model.EventCategoryCard, "Card created", actor, map[string]any{
		"card_id":    card.ID,
		"section_id": card.SectionID,
		"name":       card.Name,
	})
	return card, nil
}

// Update applies the set fields of patch to card id. Moving a card to a
// missing section is a not-found error.
func (s *CardService) Update(ctx context.Context, actor model.Viewer, id int64, patch CardPatch) (store.SystemCard, error) {
	if err := requireAdmin(actor); err != nil {
		return store.SystemCard{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.SystemCard{}, storeErr("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	current, err := q.GetSystemCard(ctx, id)
	if err != nil {
		return store.SystemCard{}, lookupErr("card", id, err)
	}

	v := cardValues{
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
		SectionID:   current.SectionID,
		URL:         current.Url,
		Icon:        current.Icon,
		IconColor:   current.IconColor,
		Status:      current.Status,
		Order:       current.SortOrder,
		IsActive:    current.IsActive,
		IsExternal:  current.IsExternal,
		AccessLevel: current.AccessLevel,
	}
	patch.apply(&v)
	if err := v.validate(); err != nil {
		return store.SystemCard{}, err
	}
	if v.SectionID != current.SectionID {
		if err := requireSection(ctx, q, v.SectionID); err != nil {
			return store.SystemCard{}, err
		}
	}

	card, err := q.UpdateSystemCard(ctx, store.UpdateSystemCardParams{
		SectionID:         v.SectionID,
		Name:              v.Name,
		NameVi:            v.NameVi,
		NameZhHant:        v.NameZhHant,
		NameZhHans:        v.NameZhHans,
		Description:       v.Description,
		DescriptionVi:     v.DescriptionVi,
		DescriptionZhHant: v.DescriptionZhHant,
		DescriptionZhHans: v.DescriptionZhHans,
		Url:               v.URL,
		Icon:              v.Icon,
		IconColor:         v.IconColor,
		Status:            v.Status,
		SortOrder:         v.Order,
		IsActive:          v.IsActive,
		IsExternal:        v.IsExternal,
		AccessLevel:       v.AccessLevel,
		UpdatedAt:         time.Now(),
		UpdatedBy:         util.NullInt64FromPtr(actor.UserID),
		ID:                id,
	})
	if err != nil {
		return store.SystemCard{}, storeErr("updating card", err)
	}
	if err := tx.Commit(); err != nil {
		return store.SystemCard{}, storeErr("committing card update", err)
	}

	s.events.LogChange(ctx, model.EventCategoryCard, "Card updated", actor, map[string]any{"card_id": id})
	return card, nil
}

// Delete removes card id together with its click history.
func (s *CardService) Delete(ctx context.Context, actor model.Viewer, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.queries.DeleteSystemCard(ctx, id)
	if err != nil {
		return storeErr(fmt.Sprintf("deleting card %d", id), err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "card", ID: id}
	}

	s.events.LogChange(ctx, model.EventCategoryCard, "Card deleted", actor, map[string]any{"card_id": id})
	return nil
}

