// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"
)

// testDB creates a temporary migrated database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "portal-store-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func createSection(t *testing.T, q *Queries, name string, order int64, factoryID sql.NullInt64) PortalSection {
	t.Helper()
	now := time.Now()
	s, err := q.CreatePortalSection(context.Background(), CreatePortalSectionParams{
		FactoryID: factoryID,
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
	return s
}

func createCard(t *testing.T, q *Queries, sectionID int64, name, access string, order int64, active bool) SystemCard {
	t.Helper()
	now := time.Now()
	c, err := q.CreateSystemCard(context.Background(), CreateSystemCardParams{
		SectionID:   sectionID,
		Name:        name,
		Url:         "https://example.com",
		Icon:        "desktop",
		IconColor:   "#10b981",
		Status:      "online",
		SortOrder:   order,
		IsActive:    active,
		AccessLevel: access,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateSystemCard: %v", err)
	}
	return c
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	version, err := SchemaVersion(context.Background(), db)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 5 {
		t.Errorf("SchemaVersion = %d, want 5", version)
	}
}

func TestUsers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "ops@example.com",
		Name:         "Ops",
		PasswordHash: "hash",
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user.ID should not be 0")
	}

	got, err := q.GetUserByEmail(ctx, "OPS@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetUserByEmail ID = %d, want %d", got.ID, user.ID)
	}

	if _, err := q.GetUserByID(ctx, 9999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetUserByID(missing) error = %v, want sql.ErrNoRows", err)
	}

	if err := q.UpdateUserLastLogin(ctx, UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          user.ID,
	}); err != nil {
		t.Fatalf("UpdateUserLastLogin: %v", err)
	}
	got, _ = q.GetUserByID(ctx, user.ID)
	if !got.LastLoginAt.Valid {
		t.Error("LastLoginAt should be set")
	}

	_, err = q.CreateUser(ctx, CreateUserParams{Email: "ops@example.com", Role: "user", CreatedAt: now, UpdatedAt: now})
	if err == nil {
		t.Error("duplicate email should fail")
	}

	_, err = q.CreateUser(ctx, CreateUserParams{Email: "x@example.com", Role: "editor", CreatedAt: now, UpdatedAt: now})
	if err == nil {
		t.Error("unknown role should violate the CHECK constraint")
	}
}

func TestListVisibleCardsBySection(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	s := createSection(t, q, "Ops", 0, sql.NullInt64{})
	createCard(t, q, s.ID, "B", "public", 1, true)
	createCard(t, q, s.ID, "A", "public", 1, true)
	createCard(t, q, s.ID, "Z", "public", 0, true)
	createCard(t, q, s.ID, "Auth", "authenticated", 2, true)
	createCard(t, q, s.ID, "Admin", "admin", 3, true)
	createCard(t, q, s.ID, "Hidden", "public", 0, false)

	tests := []struct {
		rank int64
		want []string
	}{
		{0, []string{"Z", "A", "B"}},
		{1, []string{"Z", "A", "B", "Auth"}},
		{2, []string{"Z", "A", "B", "Auth", "Admin"}},
	}
	for _, tt := range tests {
		cards, err := q.ListVisibleCardsBySection(ctx, ListVisibleCardsBySectionParams{SectionID: s.ID, MaxRank: tt.rank})
		if err != nil {
			t.Fatalf("ListVisibleCardsBySection: %v", err)
		}
		var names []string
		for _, c := range cards {
			names = append(names, c.Name)
		}
		if len(names) != len(tt.want) {
			t.Fatalf("rank %d: got %v, want %v", tt.rank, names, tt.want)
		}
		for i := range names {
			if names[i] != tt.want[i] {
				t.Errorf("rank %d: got %v, want %v", tt.rank, names, tt.want)
				break
			}
		}
	}

	all, err := q.ListCardsBySection(ctx, s.ID)
	if err != nil {
		t.Fatalf("ListCardsBySection: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("ListCardsBySection returned %d cards, want 6", len(all))
	}
}

func TestDeleteSectionCascadesToCards(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	s := createSection(t, q, "Ops", 0, sql.NullInt64{})
	c := createCard(t, q, s.ID, "Grafana", "public", 0, true)

	if _, err := q.CreatePortalAnalytic(ctx, CreatePortalAnalyticParams{CardID: c.ID, ClickedAt: time.Now()}); err != nil {
		t.Fatalf("CreatePortalAnalytic: %v", err)
	}

	n, err := q.DeletePortalSection(ctx, s.ID)
	if err != nil {
		t.Fatalf("DeletePortalSection: %v", err)
	}
	if n != 1 {
		t.Errorf("DeletePortalSection affected %d rows, want 1", n)
	}

	if _, err := q.GetSystemCard(ctx, c.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("card should be gone, got err = %v", err)
	}
	count, _ := q.CountPortalAnalytics(ctx)
	if count != 0 {
		t.Errorf("analytics rows = %d, want 0 after cascade", count)
	}

	n, err = q.DeletePortalSection(ctx, s.ID)
	if err != nil {
		t.Fatalf("DeletePortalSection again: %v", err)
	}
	if n != 0 {
		t.Errorf("second delete affected %d rows, want 0", n)
	}
}

func TestDeleteFactoryDetachesSections(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	b, err := q.CreateFactoryButton(ctx, CreateFactoryButtonParams{
		Name: "LT", Url: "https://lt.example.com", Icon: "industry",
		BackgroundColor: "#6366f1", TextColor: "#ffffff", IsActive: true,
		AccessLevel: "public", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateFactoryButton: %v", err)
	}
	s := createSection(t, q, "Line 1", 0, sql.NullInt64{Int64: b.ID, Valid: true})

	home, _ := q.ListActiveHomeSections(ctx)
	if len(home) != 0 {
		t.Fatalf("home sections = %d, want 0", len(home))
	}
	byFactory, _ := q.ListActiveSectionsByFactory(ctx, b.ID)
	if len(byFactory) != 1 {
		t.Fatalf("factory sections = %d, want 1", len(byFactory))
	}

	if _, err := q.DeleteFactoryButton(ctx, b.ID); err != nil {
		t.Fatalf("DeleteFactoryButton: %v", err)
	}
	got, err := q.GetPortalSection(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetPortalSection: %v", err)
	}
	if got.FactoryID.Valid {
		t.Errorf("FactoryID = %v, want NULL", got.FactoryID)
	}
}

func TestPortalSettingsSingleton(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- q.EnsurePortalSettings(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("EnsurePortalSettings: %v", err)
		}
	}

	count, err := q.CountPortalSettings(ctx)
	if err != nil {
		t.Fatalf("CountPortalSettings: %v", err)
	}
	if count != 1 {
		t.Errorf("settings rows = %d, want 1", count)
	}

	s, err := q.GetPortalSettings(ctx)
	if err != nil {
		t.Fatalf("GetPortalSettings: %v", err)
	}
	if s.SiteTitle != "Enterprise Systems Portal" || s.ThemeColor != "#6366f1" || !s.ShowStatusIndicators || s.MaintenanceMode {
		t.Errorf("unexpected defaults: %+v", s)
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO portal_settings (id) VALUES (2)"); err == nil {
		t.Error("a second settings row should violate the CHECK constraint")
	}
}

func TestClickCounts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	s := createSection(t, q, "Ops", 0, sql.NullInt64{})
	a := createCard(t, q, s.ID, "A", "public", 0, true)
	b := createCard(t, q, s.ID, "B", "public", 1, true)

	for _, id := range []int64{a.ID, a.ID, b.ID} {
		if _, err := q.CreatePortalAnalytic(ctx, CreatePortalAnalyticParams{CardID: id, IpAddress: "10.0.0.1", ClickedAt: time.Now()}); err != nil {
			t.Fatalf("CreatePortalAnalytic: %v", err)
		}
	}

	n, _ := q.CountPortalAnalyticsByCard(ctx, a.ID)
	if n != 2 {
		t.Errorf("clicks for A = %d, want 2", n)
	}

	rows, err := q.ListClickCountsByCard(ctx)
	if err != nil {
		t.Fatalf("ListClickCountsByCard: %v", err)
	}
	counts := map[int64]int64{}
	for _, r := range rows {
		counts[r.CardID] = r.Clicks
	}
	if counts[a.ID] != 2 || counts[b.ID] != 1 {
		t.Errorf("counts = %v", counts)
	}

	recent, _ := q.ListRecentPortalAnalytics(ctx, 2)
	if len(recent) != 2 {
		t.Errorf("ListRecentPortalAnalytics returned %d, want 2", len(recent))
	}
}

func TestLocaleText(t *testing.T) {
	c := SystemCard{Name: "監控平台", NameVi: "Nền tảng giám sát", Description: "desc"}
	text := c.LocaleText()
	if text.Vietnamese.Name != "Nền tảng giám sát" || text.Name != "監控平台" {
		t.Errorf("unexpected text: %+v", text)
	}
}
