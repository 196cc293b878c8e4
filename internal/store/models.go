// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	LastLoginAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Event struct {
	ID         int64
	Level      string
	Category   string
	Message    string
	UserID     sql.NullInt64
	IpAddress  string
	RequestUrl string
	Metadata   string
	CreatedAt  time.Time
}

type FactoryButton struct {
	ID                int64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Url               string
	Icon              string
	BackgroundColor   string
	TextColor         string
	SortOrder         int64
	IsActive          bool
	AccessLevel       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
}

type PortalSection struct {
	ID                int64
	FactoryID         sql.NullInt64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Icon              string
	Color             string
	SortOrder         int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
}

type SystemCard struct {
	ID                int64
	SectionID         int64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Url               string
	Icon              string
	IconColor         string
	Status            string
	SortOrder         int64
	IsActive          bool
	IsExternal        bool
	AccessLevel       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
}

type PortalSetting struct {
	ID                   int64
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

type PortalAnalytic struct {
	ID          int64
	CardID      int64
	UserID      sql.NullInt64
	IpAddress   string
	UserAgent   string
	Browser     string
	Os          string
	DeviceType  string
	CountryCode string
	ClickedAt   time.Time
}
