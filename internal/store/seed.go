// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/portal-go/internal/auth"
)

// DefaultAdminName is the display name given to seeded administrators.
const DefaultAdminName = "Administrator"

// UpsertAdmin creates an admin account for email, or resets the password
// and role of an existing one. It reports whether a new user was created.
func UpsertAdmin(ctx context.Context, db *sql.DB, email, password string) (User, bool, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return User{}, false, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, false, fmt.Errorf("hashing password: %w", err)
	}

	queries := New(db)
	now := time.Now()

	existing, err := queries.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := queries.UpdateUserCredentials(ctx, UpdateUserCredentialsParams{
			PasswordHash: hash,
			Role:         "admin",
			UpdatedAt:    now,
			ID:           existing.ID,
		}); err != nil {
			return User{}, false, fmt.Errorf("updating admin user: %w", err)
		}
		existing.PasswordHash = hash
		existing.Role = "admin"
		existing.UpdatedAt = now
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return User{}, false, fmt.Errorf("checking for admin user: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        email,
		Name:         DefaultAdminName,
		PasswordHash: hash,
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return User{}, false, fmt.Errorf("creating admin user: %w", err)
	}
	return user, true, nil
}

// Seed creates the initial admin when a password is configured. An
// existing account is left untouched so restarts never reset credentials.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminPassword string) error {
	if adminPassword == "" {
		slog.Debug("no admin password configured, skipping admin seed")
		return nil
	}

	queries := New(db)
	if _, err := queries.GetUserByEmail(ctx, adminEmail); err == nil {
		slog.Info("admin user already exists, skipping seed", "email", adminEmail)
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	user, _, err := UpsertAdmin(ctx, db, adminEmail, adminPassword)
	if err != nil {
		return err
	}
	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}

type sampleCard struct {
	name, nameVi, nameZhHans     string
	description, descriptionVi   string
	url, icon, iconColor, status string
}

type sampleSection struct {
	name, nameVi, nameZhHans   string
	description, descriptionVi string
	icon, color                string
	order                      int64
	cards                      []sampleCard
}

type sampleButton struct {
	name, nameVi, description string
	url, icon, color          string
	order                     int64
}

var sampleSections = []sampleSection{
	{
		name: "企業管理系統", nameVi: "Hệ thống quản lý doanh nghiệp", nameZhHans: "企业管理系统",
		description: "企業核心業務管理平台", descriptionVi: "Nền tảng quản lý nghiệp vụ cốt lõi",
		icon: "building", color: "#8b5cf6", order: 1,
		cards: []sampleCard{
			{
				name: "BPM 流程管理", nameVi: "Quản lý quy trình BPM", nameZhHans: "BPM 流程管理",
				description: "業務流程管理與審批系統", descriptionVi: "Hệ thống quản lý và phê duyệt quy trình",
				url: "https://bpm.example.com", icon: "project-diagram", iconColor: "#8b5cf6", status: "online",
			},
			{
				name: "EIP 企業入口", nameVi: "Cổng thông tin doanh nghiệp", nameZhHans: "EIP 企业入口",
				description: "企業資訊入口整合平台", descriptionVi: "Nền tảng tích hợp thông tin doanh nghiệp",
				url: "https://eip.example.com", icon: "globe", iconColor: "#06b6d4", status: "online",
			},
			{
				name: "Apollo 系統", nameVi: "Hệ thống Apollo", nameZhHans: "Apollo 系统",
				description: "企業級應用管理平台", descriptionVi: "Nền tảng quản lý ứng dụng doanh nghiệp",
				url: "https://apollo.example.com", icon: "rocket", iconColor: "#f59e0b", status: "online",
			},
		},
	},
	{
		name: "IT 管理平台", nameVi: "Nền tảng quản lý CNTT", nameZhHans: "IT 管理平台",
		description: "IT基礎、資產與服務管理", descriptionVi: "Quản lý hạ tầng, tài sản và dịch vụ CNTT",
		icon: "server", color: "#f97316", order: 2,
		cards: []sampleCard{
			{
				name: "系統測試區", nameVi: "Khu vực kiểm thử", nameZhHans: "系统测试区",
				description: "各系統測試與驗證分區", descriptionVi: "Phân vùng kiểm thử và xác minh hệ thống",
				url: "https://testing.example.com", icon: "flask", iconColor: "#ef4444", status: "maintenance",
			},
			{
				name: "監控平台", nameVi: "Nền tảng giám sát", nameZhHans: "监控平台",
				description: "系統監控與效能監控", descriptionVi: "Giám sát hệ thống và hiệu năng",
				url: "https://monitoring.example.com", icon: "chart-line", iconColor: "#10b981", status: "online",
			},
			{
				name: "IT 管理工具", nameVi: "Công cụ quản lý CNTT", nameZhHans: "IT 管理工具",
				description: "IT服務管理與配置工具", descriptionVi: "Công cụ quản lý và cấu hình dịch vụ CNTT",
				url: "https://ittools.example.com", icon: "tools", iconColor: "#6b7280", status: "online",
			},
		},
	},
}

var sampleButtons = []sampleButton{
	{name: "LT版", nameVi: "Phiên bản LT", description: "生產管理與優化系統", url: "https://lt.example.com", icon: "industry", color: "#3b82f6", order: 1},
	{name: "GD版", nameVi: "Phiên bản GD", description: "生產管理與優化系統", url: "https://gd.example.com", icon: "cog", color: "#10b981", order: 2},
	{name: "LK版", nameVi: "Phiên bản LK", description: "生產管理與優化系統", url: "https://lk.example.com", icon: "database", color: "#8b5cf6", order: 3},
}

// SeedSample populates a fresh portal with demonstration sections, cards
// and factory buttons. Rows are matched by name, so running it twice adds
// nothing. actorID may be zero when no admin exists yet.
func SeedSample(ctx context.Context, db *sql.DB, actorID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)
	now := time.Now()
	actor := sql.NullInt64{Int64: actorID, Valid: actorID > 0}

	if err := queries.EnsurePortalSettings(ctx); err != nil {
		return fmt.Errorf("ensuring settings: %w", err)
	}
	settings, err := queries.GetPortalSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if !settings.UpdatedBy.Valid {
		_, err := queries.UpdatePortalSettings(ctx, UpdatePortalSettingsParams{
			SiteTitle:            "企業系統入口平台",
			SiteTitleEn:          "Enterprise Systems Portal",
			Logo:                 settings.Logo,
			Favicon:              settings.Favicon,
			BackgroundImage:      settings.BackgroundImage,
			ThemeColor:           settings.ThemeColor,
			BackgroundColor:      settings.BackgroundColor,
			ShowStatusIndicators: settings.ShowStatusIndicators,
			EnableAnimations:     settings.EnableAnimations,
			MaintenanceMode:      settings.MaintenanceMode,
			MaintenanceMessage:   settings.MaintenanceMessage,
			CustomCss:            settings.CustomCss,
			CustomJs:             settings.CustomJs,
			UpdatedAt:            now,
			UpdatedBy:            actor,
		})
		if err != nil {
			return fmt.Errorf("updating settings: %w", err)
		}
	}

	for _, s := range sampleSections {
		if _, err := queries.GetPortalSectionByName(ctx, s.name); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking section %q: %w", s.name, err)
		}

		section, err := queries.CreatePortalSection(ctx, CreatePortalSectionParams{
			Name:          s.name,
			NameVi:        s.nameVi,
			NameZhHans:    s.nameZhHans,
			Description:   s.description,
			DescriptionVi: s.descriptionVi,
			Icon:          s.icon,
			Color:         s.color,
			SortOrder:     s.order,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
			UpdatedBy:     actor,
		})
		if err != nil {
			return fmt.Errorf("creating section %q: %w", s.name, err)
		}

		for i, c := range s.cards {
			if _, err := queries.CreateSystemCard(ctx, CreateSystemCardParams{
				SectionID:     section.ID,
				Name:          c.name,
				NameVi:        c.nameVi,
				NameZhHans:    c.nameZhHans,
				Description:   c.description,
				DescriptionVi: c.descriptionVi,
				Url:           c.url,
				Icon:          c.icon,
				IconColor:     c.iconColor,
				Status:        c.status,
				SortOrder:     int64(i),
				IsActive:      true,
				AccessLevel:   "public",
				CreatedAt:     now,
				UpdatedAt:     now,
				UpdatedBy:     actor,
			}); err != nil {
				return fmt.Errorf("creating card %q: %w", c.name, err)
			}
		}
		slog.Info("seeded section", "name", s.name, "cards", len(s.cards))
	}

	for _, b := range sampleButtons {
		if _, err := queries.GetFactoryButtonByName(ctx, b.name); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking button %q: %w", b.name, err)
		}

		if _, err := queries.CreateFactoryButton(ctx, CreateFactoryButtonParams{
			Name:            b.name,
			NameVi:          b.nameVi,
			Description:     b.description,
			Url:             b.url,
			Icon:            b.icon,
			BackgroundColor: b.color,
			TextColor:       "#ffffff",
			SortOrder:       b.order,
			IsActive:        true,
			AccessLevel:     "public",
			CreatedAt:       now,
			UpdatedAt:       now,
			UpdatedBy:       actor,
		}); err != nil {
			return fmt.Errorf("creating button %q: %w", b.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}
