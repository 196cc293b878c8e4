// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const portalSettingColumns = `id, site_title, site_title_en, logo, favicon, background_image,
theme_color, background_color, show_status_indicators, enable_animations,
maintenance_mode, maintenance_message, custom_css, custom_js, updated_at, updated_by`

func scanPortalSetting(row interface{ Scan(...any) error }) (PortalSetting, error) {
	var i PortalSetting
	err := row.Scan(
		&i.ID,
		&i.SiteTitle,
		&i.SiteTitleEn,
		&i.Logo,
		&i.Favicon,
		&i.BackgroundImage,
		&i.ThemeColor,
		&i.BackgroundColor,
		&i.ShowStatusIndicators,
		&i.EnableAnimations,
		&i.MaintenanceMode,
		&i.MaintenanceMessage,
		&i.CustomCss,
		&i.CustomJs,
		&i.UpdatedAt,
		&i.UpdatedBy,
	)
	return i, err
}

const ensurePortalSettings = `-- name: EnsurePortalSettings :exec
INSERT INTO portal_settings (id) VALUES (1) ON CONFLICT(id) DO NOTHING`

// EnsurePortalSettings creates the settings row with defaults if it is
// missing. Concurrent callers never produce a second row.
func (q *Queries) EnsurePortalSettings(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, ensurePortalSettings)
	return err
}

const getPortalSettings = `-- name: GetPortalSettings :one
SELECT ` + portalSettingColumns + ` FROM portal_settings WHERE id = 1`

func (q *Queries) GetPortalSettings(ctx context.Context) (PortalSetting, error) {
	return scanPortalSetting(q.db.QueryRowContext(ctx, getPortalSettings))
}

const countPortalSettings = `-- name: CountPortalSettings :one
SELECT COUNT(*) FROM portal_settings`

func (q *Queries) CountPortalSettings(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPortalSettings).Scan(&count)
	return count, err
}

const updatePortalSettings = `-- name: UpdatePortalSettings :one
UPDATE portal_settings SET
    site_title = ?, site_title_en = ?, logo = ?, favicon = ?, background_image = ?,
    theme_color = ?, background_color = ?, show_status_indicators = ?, enable_animations = ?,
    maintenance_mode = ?, maintenance_message = ?, custom_css = ?, custom_js = ?,
    updated_at = ?, updated_by = ?
WHERE id = 1
RETURNING ` + portalSettingColumns

type UpdatePortalSettingsParams struct {
	SiteTitle            string
	SiteTitleEn          string
	Logo                 string
	Favicon              string
	BackgroundImage      string
	ThemeColor           string
	BackgroundColor      string
	ShowStatusIndicators bool
	EnableAnimations     bool
	MaintenanceMode      bool
	MaintenanceMessage   string
	CustomCss            string
	CustomJs             string
	UpdatedAt            time.Time
	UpdatedBy            sql.NullInt64
}

func (q *Queries) UpdatePortalSettings(ctx context.Context, arg UpdatePortalSettingsParams) (PortalSetting, error) {
	row := q.db.QueryRowContext(ctx, updatePortalSettings,
		arg.SiteTitle,
		arg.SiteTitleEn,
		arg.Logo,
		arg.Favicon,
		arg.BackgroundImage,
		arg.ThemeColor,
		arg.BackgroundColor,
		arg.ShowStatusIndicators,
		arg.EnableAnimations,
		arg.MaintenanceMode,
		arg.MaintenanceMessage,
		arg.CustomCss,
		arg.CustomJs,
		arg.UpdatedAt,
		arg.UpdatedBy,
	)
	return scanPortalSetting(row)
}
