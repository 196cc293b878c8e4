// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/testutil"
	"github.com/olegiv/portal-go/web"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

// testEnv wires the services and renderer over an in-memory database.
type testEnv struct {
	db        *sql.DB
	sm        *scs.SessionManager
	renderer  *render.Renderer
	events    *service.EventService
	assets    *service.AssetService
	settings  *service.SettingsService
	buttons   *service.ButtonService
	sections  *service.SectionService
	cards     *service.CardService
	analytics *service.AnalyticsService
	admin     model.Viewer
	user      model.Viewer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	sm := testSessionManager(t)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	require.NoError(t, err)

	events := service.NewEventService(db)
	assets := service.NewAssetService(t.TempDir(), 1<<20, testutil.TestLogger())

	adminUser := testutil.CreateUser(t, db, "admin@example.com", model.RoleAdmin)
	plainUser := testutil.CreateUser(t, db, "user@example.com", model.RoleUser)

	return &testEnv{
		db:        db,
		sm:        sm,
		renderer:  renderer,
		events:    events,
		assets:    assets,
		settings:  service.NewSettingsService(db, events, assets),
		buttons:   service.NewButtonService(db, events),
		sections:  service.NewSectionService(db, events),
		cards:     service.NewCardService(db, events),
		analytics: service.NewAnalyticsService(db, nil),
		admin:     model.NewViewer(adminUser.ID, adminUser.Name, adminUser.Role),
		user:      model.NewViewer(plainUser.ID, plainUser.Name, plainUser.Role),
	}
}

// testSessionManager returns a session manager backed by the in-memory store.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func (e *testEnv) apiHandler() *APIHandler {
	return NewAPIHandler(APIServices{
		Buttons:   e.buttons,
		Sections:  e.sections,
		Cards:     e.cards,
		Settings:  e.settings,
		Analytics: e.analytics,
		Assets:    e.assets,
	})
}

// serve runs h for viewer inside a loaded session.
func (e *testEnv) serve(h http.HandlerFunc, r *http.Request, viewer model.Viewer) *httptest.ResponseRecorder {
	r = r.WithContext(middleware.WithViewer(r.Context(), viewer))
	rec := httptest.NewRecorder()
	e.sm.LoadAndSave(h).ServeHTTP(rec, r)
	return rec
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// decodeJSON parses a JSON response body.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
