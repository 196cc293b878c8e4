// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the portal packages.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/portal-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary file-backed database with all migrations
// applied. It uses the production driver and pool, so it suits tests that
// exercise concurrent access.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "portal-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestMemoryDB creates an in-memory database with all migrations applied.
// A single connection keeps every query on the same in-memory schema.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *sql.DB, email, role string) store.User {
	t.Helper()

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		Name:         email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$a2V5",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// CreateSection inserts an active home section.
func CreateSection(t *testing.T, db *sql.DB, name string, order int64) store.PortalSection {
	t.Helper()

	now := time.Now()
	section, err := store.New(db).CreatePortalSection(context.Background(), store.CreatePortalSectionParams{
		Name:      name,
		Icon:      "folder",
		Color:     "#6366f1",
		SortOrder: order,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePortalSection: %v", err)
	}
	return section
}

// CardOption adjusts the parameters of a card created by CreateCard.
type CardOption func(*store.CreateSystemCardParams)

// WithAccess sets the card access level.
func WithAccess(level string) CardOption {
	return func(p *store.CreateSystemCardParams) { p.AccessLevel = level }
}

// WithOrder sets the card sort order.
func WithOrder(order int64) CardOption {
	return func(p *store.CreateSystemCardParams) { p.SortOrder = order }
}

// Inactive marks the card inactive.
func Inactive() CardOption {
	return func(p *store.CreateSystemCardParams) { p.IsActive = false }
}

// CreateCard inserts a public, active, online card into sectionID.
func CreateCard(t *testing.T, db *sql.DB, sectionID int64, name string, opts ...CardOption) store.SystemCard {
	t.Helper()

	now := time.Now()
	params := store.CreateSystemCardParams{
		SectionID:   sectionID,
		Name:        name,
		Url:         "https://example.com/" + name,
		Icon:        "desktop",
		IconColor:   "#10b981",
		Status:      "online",
		IsActive:    true,
		AccessLevel: "public",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&params)
	}

	card, err := store.New(db).CreateSystemCard(context.Background(), params)
	if err != nil {
		t.Fatalf("CreateSystemCard: %v", err)
	}
	return card
}

// CreateButton inserts an active public factory button.
func CreateButton(t *testing.T, db *sql.DB, name string, order int64) store.FactoryButton {
	t.Helper()

	now := time.Now()
	button, err := store.New(db).CreateFactoryButton(context.Background(), store.CreateFactoryButtonParams{
		Name:            name,
		Url:             "https://example.com/" + name,
		Icon:            "industry",
		BackgroundColor: "#6366f1",
		TextColor:       "#ffffff",
		SortOrder:       order,
		IsActive:        true,
		AccessLevel:     "public",
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("CreateFactoryButton: %v", err)
	}
	return button
}
