// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"testing"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

// viewers returns an admin and a regular authenticated viewer backed by
// real user rows.
func viewers(t *testing.T, db *sql.DB) (admin, user model.Viewer) {
	t.Helper()
	a := testutil.CreateUser(t, db, "admin@example.com", model.RoleAdmin)
	u := testutil.CreateUser(t, db, "user@example.com", model.RoleUser)
	return model.NewViewer(a.ID, a.Name, a.Role), model.NewViewer(u.ID, u.Name, u.Role)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
