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

// Defaults applied by the create endpoint, which differ from the column
// defaults for icon and background color.
const (
	defaultButtonIcon       = "industry"
	defaultButtonBackground = "#6366f1"
	defaultButtonText       = "#ffffff"
)

// ButtonService manages factory buttons. All methods require an admin.
type ButtonService struct {
	db      *sql.DB
	queries *store.Queries
	events  *EventService
}

// NewButtonService creates a new ButtonService.
func NewButtonService(db *sql.DB, events *EventService) *ButtonService {
	return &ButtonService{db: db, queries: store.New(db), events: events}
}

type buttonValues struct {
	localizedValues
	URL             string
	Icon            string
	BackgroundColor string
	TextColor       string
	Order           int64
	IsActive        bool
	AccessLevel     string
}

func (p ButtonPatch) apply(v *buttonValues) {
	p.LocalizedPatch.apply(&v.localizedValues)
	setString(&v.URL, p.URL)
	setString(&v.Icon, p.Icon)
	setString(&v.BackgroundColor, p.BackgroundColor)
	setString(&v.TextColor, p.TextColor)
	setInt(&v.Order, p.Order)
	setBool(&v.IsActive, p.IsActive)
	setString(&v.AccessLevel, p.AccessLevel)
}

func (v *buttonValues) validate() error {
	if err := v.localizedValues.validate(); err != nil {
		return err
	}
	if err := validateURL("url", v.URL); err != nil {
		return err
	}
	if err := validateColor("background_color", v.BackgroundColor); err != nil {
		return err
	}
	if err := validateColor("text_color", v.TextColor); err != nil {
		return err
	}
	return validateAccessLevel(v.AccessLevel)
}

// List returns every button, including inactive ones, for the edit view.
func (s *ButtonService) List(ctx context.Context, actor model.Viewer) ([]store.FactoryButton, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	buttons, err := s.queries.ListFactoryButtons(ctx)
	if err != nil {
		return nil, storeErr("listing buttons", err)
	}
	return buttons, nil
}

// Get loads a button by id.
func (s *ButtonService) Get(ctx context.Context, actor model.Viewer, id int64) (store.FactoryButton, error) {
	if err := requireAdmin(actor); err != nil {
		return store.FactoryButton{}, err
	}
	button, err := s.queries.GetFactoryButton(ctx, id)
	if err != nil {
		return store.FactoryButton{}, lookupErr("factory", id, err)
	}
	return button, nil
}

// Create adds a factory button. name and url are required.
func (s *ButtonService) Create(ctx context.Context, actor model.Viewer, fields ButtonPatch) (store.FactoryButton, error) {
	if err := requireAdmin(actor); err != nil {
		return store.FactoryButton{}, err
	}

	v := buttonValues{
		Icon:            defaultButtonIcon,
		BackgroundColor: defaultButtonBackground,
		TextColor:       defaultButtonText,
		IsActive:        true,
		AccessLevel:     string(model.AccessPublic),
	}
	fields.apply(&v)
	if err := v.validate(); err != nil {
		return store.FactoryButton{}, err
	}

	now := time.Now()
	button, err := s.queries.CreateFactoryButton(ctx, store.CreateFactoryButtonParams{
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
		BackgroundColor:   v.BackgroundColor,
		TextColor:         v.TextColor,
		SortOrder:         v.Order,
		IsActive:          v.IsActive,
		AccessLevel:       v.AccessLevel,
		CreatedAt:         now,
		UpdatedAt:         now,
		UpdatedBy:         util.NullInt64FromPtr(actor.UserID),
	})
	if err != nil {
		return store.FactoryButton{}, storeErr("creating button", err)
	}

	s.events.LogChange(ctx, model.EventCategoryFactory, "Factory created", actor, map[string]any{
		"factory_id": button.ID,
		"name":       button.Name,
	})
	return button, nil
}

// Update applies the set fields of patch to button id and re-stamps the
// audit fields.
func (s *ButtonService) Update(ctx context.Context, actor model.Viewer, id int64, patch ButtonPatch) (store.FactoryButton, error) {
	if err := requireAdmin(actor); err != nil {
		return store.FactoryButton{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.FactoryButton{}, storeErr("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	current, err := q.GetFactoryButton(ctx, id)
	if err != nil {
		return store.FactoryButton{}, lookupErr("factory", id, err)
	}

	v := buttonValues{
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
		URL:             current.Url,
		Icon:            current.Icon,
		BackgroundColor: current.BackgroundColor,
		TextColor:       current.TextColor,
		Order:           current.SortOrder,
		IsActive:        current.IsActive,
		AccessLevel:     current.AccessLevel,
	}
	patch.apply(&v)
	if err := v.validate(); err != nil {
		return store.FactoryButton{}, err
	}

	button, err := q.UpdateFactoryButton(ctx, store.UpdateFactoryButtonParams{
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
		BackgroundColor:   v.BackgroundColor,
		TextColor:         v.TextColor,
		SortOrder:         v.Order,
		IsActive:          v.IsActive,
		AccessLevel:       v.AccessLevel,
		UpdatedAt:         time.Now(),
		UpdatedBy:         util.NullInt64FromPtr(actor.UserID),
		ID:                id,
	})
	if err != nil {
		return store.FactoryButton{}, storeErr("updating button", err)
	}
	if err := tx.Commit(); err != nil {
		return store.FactoryButton{}, storeErr("committing button update", err)
	}

	s.events.LogChange(ctx, model.EventCategoryFactory, "Factory updated", actor, map[string]any{"factory_id": id})
	return button, nil
}

// Delete removes button id. Its sections move to the home page.
func (s *ButtonService) Delete(ctx context.Context, actor model.Viewer, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.queries.DeleteFactoryButton(ctx, id)
	if err != nil {
		return storeErr(fmt.Sprintf("deleting button %d", id), err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "factory", ID: id}
	}

	s.events.LogChange(ctx, model.EventCategoryFactory, "Factory deleted", actor, map[string]any{"factory_id": id})
	return nil
}
