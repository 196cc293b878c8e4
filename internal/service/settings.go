// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

const maxSiteTitleLength = 100

// ParseBoolish normalizes checkbox and select values posted by the edit
// form. The empty string is false, since unchecked boxes post nothing.
func ParseBoolish(s string) (bool, error) {
	switch s {
	case "true", "True", "1", "on":
		return true, nil
	case "false", "False", "0", "off", "":
		return false, nil
	default:
		return false, invalid("", "%q is not a boolean value", s)
	}
}

// SettingsUpdate carries the allow-listed settings fields. Nil fields are
// left unchanged. Boolean fields hold the raw form value.
type SettingsUpdate struct {
	SiteTitle            *string
	SiteTitleEn          *string
	ThemeColor           *string
	BackgroundColor      *string
	ShowStatusIndicators *string
	EnableAnimations     *string
	MaintenanceMode      *string
	MaintenanceMessage   *string
	CustomCSS            *string
	CustomJS             *string

	// Relative upload paths produced by AssetService.
	Logo            *string
	Favicon         *string
	BackgroundImage *string
}

// SettingsUpdateFromForm picks the recognized keys out of a posted form.
// Unknown keys, such as the CSRF token, are ignored.
func SettingsUpdateFromForm(form url.Values) SettingsUpdate {
	pick := func(key string) *string {
		values, ok := form[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[len(values)-1]
		return &v
	}
	return SettingsUpdate{
		SiteTitle:            pick("site_title"),
		SiteTitleEn:          pick("site_title_en"),
		ThemeColor:           pick("theme_color"),
		BackgroundColor:      pick("background_color"),
		ShowStatusIndicators: pick("show_status_indicators"),
		EnableAnimations:     pick("enable_animations"),
		MaintenanceMode:      pick("maintenance_mode"),
		MaintenanceMessage:   pick("maintenance_message"),
		CustomCSS:            pick("custom_css"),
		CustomJS:             pick("custom_js"),
	}
}

// SettingsService owns the portal settings row.
type SettingsService struct {
	db      *sql.DB
	queries *store.Queries
	events  *EventService
	assets  *AssetService
}

// NewSettingsService creates a new SettingsService. assets may be nil, in
// which case replaced uploads are left on disk.
func NewSettingsService(db *sql.DB, events *EventService, assets *AssetService) *SettingsService {
	return &SettingsService{db: db, queries: store.New(db), events: events, assets: assets}
}

// Get returns the settings, creating the row with defaults on first use.
// Concurrent first calls still leave exactly one row.
func (s *SettingsService) Get(ctx context.Context) (store.PortalSetting, error) {
	if err := s.queries.EnsurePortalSettings(ctx); err != nil {
		return store.PortalSetting{}, storeErr("creating settings", err)
	}
	settings, err := s.queries.GetPortalSettings(ctx)
	if err != nil {
		return store.PortalSetting{}, storeErr("loading settings", err)
	}
	return settings, nil
}

// Update applies u on behalf of actor and stamps the audit fields.
func (s *SettingsService) Update(ctx context.Context, u SettingsUpdate, actor model.Viewer) (store.PortalSetting, error) {
	if err := requireAdmin(actor); err != nil {
		return store.PortalSetting{}, err
	}
	if err := s.queries.EnsurePortalSettings(ctx); err != nil {
		return store.PortalSetting{}, storeErr("creating settings", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.PortalSetting{}, storeErr("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	current, err := q.GetPortalSettings(ctx)
	if err != nil {
		return store.PortalSetting{}, storeErr("loading settings", err)
	}

	next := store.UpdatePortalSettingsParams{
		SiteTitle:            current.SiteTitle,
		SiteTitleEn:          current.SiteTitleEn,
		Logo:                 current.Logo,
		Favicon:              current.Favicon,
		BackgroundImage:      current.BackgroundImage,
		ThemeColor:           current.ThemeColor,
		BackgroundColor:      current.BackgroundColor,
		ShowStatusIndicators: current.ShowStatusIndicators,
		EnableAnimations:     current.EnableAnimations,
		MaintenanceMode:      current.MaintenanceMode,
		MaintenanceMessage:   current.MaintenanceMessage,
		CustomCss:            current.CustomCss,
		CustomJs:             current.CustomJs,
		UpdatedAt:            time.Now(),
		UpdatedBy:            util.NullInt64FromPtr(actor.UserID),
	}
	if err := u.apply(&next); err != nil {
		return store.PortalSetting{}, err
	}

	updated, err := q.UpdatePortalSettings(ctx, next)
	if err != nil {
		return store.PortalSetting{}, storeErr("updating settings", err)
	}
	if err := tx.Commit(); err != nil {
		return store.PortalSetting{}, storeErr("committing settings", err)
	}

	if s.assets != nil {
		for _, pair := range [][2]string{
			{current.Logo, updated.Logo},
			{current.Favicon, updated.Favicon},
			{current.BackgroundImage, updated.BackgroundImage},
		} {
			if pair[0] != "" && pair[0] != pair[1] {
				s.assets.Remove(pair[0])
			}
		}
	}

	s.events.LogChange(ctx, model.EventCategorySettings, "Settings updated", actor, nil)
	return updated, nil
}

func (u SettingsUpdate) apply(p *store.UpdatePortalSettingsParams) error {
	if u.SiteTitle != nil {
		title := strings.TrimSpace(*u.SiteTitle)
		if n := utf8.RuneCountInString(title); n == 0 || n > maxSiteTitleLength {
			return invalid("site_title", "must be between 1 and %d characters", maxSiteTitleLength)
		}
		p.SiteTitle = title
	}
	if u.SiteTitleEn != nil {
		title := strings.TrimSpace(*u.SiteTitleEn)
		if utf8.RuneCountInString(title) > maxSiteTitleLength {
			return invalid("site_title_en", "must be at most %d characters", maxSiteTitleLength)
		}
		p.SiteTitleEn = title
	}

	for _, c := range []struct {
		field string
		src   *string
		dst   *string
	}{
		{"theme_color", u.ThemeColor, &p.ThemeColor},
		{"background_color", u.BackgroundColor, &p.BackgroundColor},
	} {
		if c.src == nil {
			continue
		}
		if err := validateColor(c.field, *c.src); err != nil {
			return err
		}
		*c.dst = *c.src
	}

	for _, b := range []struct {
		field string
		src   *string
		dst   *bool
	}{
		{"show_status_indicators", u.ShowStatusIndicators, &p.ShowStatusIndicators},
		{"enable_animations", u.EnableAnimations, &p.EnableAnimations},
		{"maintenance_mode", u.MaintenanceMode, &p.MaintenanceMode},
	} {
		if b.src == nil {
			continue
		}
		v, err := ParseBoolish(*b.src)
		if err != nil {
			return invalid(b.field, "%q is not a boolean value", *b.src)
		}
		*b.dst = v
	}

	setString(&p.MaintenanceMessage, u.MaintenanceMessage)
	setString(&p.CustomCss, u.CustomCSS)
	setString(&p.CustomJs, u.CustomJS)
	setString(&p.Logo, u.Logo)
	setString(&p.Favicon, u.Favicon)
	setString(&p.BackgroundImage, u.BackgroundImage)
	return nil
}
