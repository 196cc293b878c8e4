// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"time"

	"github.com/olegiv/portal-go/internal/locale"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// localizedJSON is the translatable text shared by every entity payload.
type localizedJSON struct {
	Name              string `json:"name"`
	NameVi            string `json:"name_vi"`
	NameZhHant        string `json:"name_zh_hant"`
	NameZhHans        string `json:"name_zh_hans"`
	Description       string `json:"description"`
	DescriptionVi     string `json:"description_vi"`
	DescriptionZhHant string `json:"description_zh_hant"`
	DescriptionZhHans string `json:"description_zh_hans"`
}

func newLocalizedJSON(t locale.Text) localizedJSON {
	return localizedJSON{
		Name:              t.Name,
		NameVi:            t.Vietnamese.Name,
		NameZhHant:        t.TraditionalChinese.Name,
		NameZhHans:        t.SimplifiedChinese.Name,
		Description:       t.Description,
		DescriptionVi:     t.Vietnamese.Description,
		DescriptionZhHant: t.TraditionalChinese.Description,
		DescriptionZhHans: t.SimplifiedChinese.Description,
	}
}

type factoryJSON struct {
	ID int64 `json:"id"`
	localizedJSON
	URL             string    `json:"url"`
	Icon            string    `json:"icon"`
	BackgroundColor string    `json:"background_color"`
	TextColor       string    `json:"text_color"`
	Order           int64     `json:"order"`
	IsActive        bool      `json:"is_active"`
	AccessLevel     string    `json:"access_level"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newFactoryJSON(b store.FactoryButton) factoryJSON {
	return factoryJSON{
		ID:              b.ID,
		localizedJSON:   newLocalizedJSON(b.LocaleText()),
		URL:             b.Url,
		Icon:            b.Icon,
		BackgroundColor: b.BackgroundColor,
		TextColor:       b.TextColor,
		Order:           b.SortOrder,
		IsActive:        b.IsActive,
		AccessLevel:     b.AccessLevel,
		UpdatedAt:       b.UpdatedAt,
	}
}

type sectionJSON struct {
	ID      int64  `json:"id"`
	Factory *int64 `json:"factory"`
	localizedJSON
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Order     int64     `json:"order"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSectionJSON(s store.PortalSection) sectionJSON {
	return sectionJSON{
		ID:            s.ID,
		Factory:       util.PtrFromNullInt64(s.FactoryID),
		localizedJSON: newLocalizedJSON(s.LocaleText()),
		Icon:          s.Icon,
		Color:         s.Color,
		Order:         s.SortOrder,
		IsActive:      s.IsActive,
		UpdatedAt:     s.UpdatedAt,
	}
}

type cardJSON struct {
	ID        int64 `json:"id"`
	SectionID int64 `json:"section_id"`
	localizedJSON
	URL         string    `json:"url"`
	Icon        string    `json:"icon"`
	IconColor   string    `json:"icon_color"`
	Status      string    `json:"status"`
	Order       int64     `json:"order"`
	IsActive    bool      `json:"is_active"`
	IsExternal  bool      `json:"is_external"`
	AccessLevel string    `json:"access_level"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCardJSON(c store.SystemCard) cardJSON {
	return cardJSON{
		ID:            c.ID,
		SectionID:     c.SectionID,
		localizedJSON: newLocalizedJSON(c.LocaleText()),
		URL:           c.Url,
		Icon:          c.Icon,
		IconColor:     c.IconColor,
		Status:        c.Status,
		Order:         c.SortOrder,
		IsActive:      c.IsActive,
		IsExternal:    c.IsExternal,
		AccessLevel:   c.AccessLevel,
		UpdatedAt:     c.UpdatedAt,
	}
}

type settingsJSON struct {
	SiteTitle            string    `json:"site_title"`
	SiteTitleEn          string    `json:"site_title_en"`
	Logo                 string    `json:"logo"`
	Favicon              string    `json:"favicon"`
	BackgroundImage      string    `json:"background_image"`
	ThemeColor           string    `json:"theme_color"`
	BackgroundColor      string    `json:"background_color"`
	ShowStatusIndicators bool      `json:"show_status_indicators"`
	EnableAnimations     bool      `json:"enable_animations"`
	MaintenanceMode      bool      `json:"maintenance_mode"`
	MaintenanceMessage   string    `json:"maintenance_message"`
	CustomCSS            string    `json:"custom_css"`
	CustomJS             string    `json:"custom_js"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func newSettingsJSON(s store.PortalSetting) settingsJSON {
	return settingsJSON{
		SiteTitle:            s.SiteTitle,
		SiteTitleEn:          s.SiteTitleEn,
		Logo:                 render.UploadURL(s.Logo),
		Favicon:              render.UploadURL(s.Favicon),
		BackgroundImage:      render.UploadURL(s.BackgroundImage),
		ThemeColor:           s.ThemeColor,
		BackgroundColor:      s.BackgroundColor,
		ShowStatusIndicators: s.ShowStatusIndicators,
		EnableAnimations:     s.EnableAnimations,
		MaintenanceMode:      s.MaintenanceMode,
		MaintenanceMessage:   s.MaintenanceMessage,
		CustomCSS:            s.CustomCss,
		CustomJS:             s.CustomJs,
		UpdatedAt:            s.UpdatedAt,
	}
}
