// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/portal-go/internal/locale"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/testutil"
)

func TestHomeFiltersCardsByViewer(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)

	section := testutil.CreateSection(t, env.db, "Operations", 1)
	testutil.CreateCard(t, env.db, section.ID, "Grafana")
	testutil.CreateCard(t, env.db, section.ID, "Wiki", testutil.WithAccess(string(model.AccessAuthenticated)))
	testutil.CreateCard(t, env.db, section.ID, "Vault", testutil.WithAccess(string(model.AccessAdmin)))
	testutil.CreateCard(t, env.db, section.ID, "Retired", testutil.Inactive())

	tests := []struct {
		name   string
		viewer model.Viewer
		see    []string
		hidden []string
	}{
		{"anonymous", model.Anonymous, []string{"Grafana"}, []string{"Wiki", "Vault", "Retired"}},
		{"user", env.user, []string{"Grafana", "Wiki"}, []string{"Vault", "Retired"}},
		{"admin", env.admin, []string{"Grafana", "Wiki", "Vault"}, []string{"Retired"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/", nil), tt.viewer)
			assertStatus(t, rec.Code, http.StatusOK)

			body := rec.Body.String()
			assert.Contains(t, body, "Operations")
			for _, name := range tt.see {
				assert.Contains(t, body, ">"+name+"<")
			}
			for _, name := range tt.hidden {
				assert.NotContains(t, body, ">"+name+"<")
			}
		})
	}
}

func TestHomeLocalizesNames(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)
	ctx := context.Background()

	section, err := env.sections.Create(ctx, env.admin, service.SectionPatch{
		LocalizedPatch: service.LocalizedPatch{Name: ptr("Systems"), NameVi: ptr("Hệ thống")},
	})
	require.NoError(t, err)
	testutil.CreateCard(t, env.db, section.ID, "Grafana")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithLocale(req.Context(), locale.Vietnamese))
	rec := env.serve(h.Home, req, model.Anonymous)

	assertStatus(t, rec.Code, http.StatusOK)
	assert.Contains(t, rec.Body.String(), "Hệ thống")
	assert.Contains(t, rec.Body.String(), `<html lang="vi">`)
}

func TestHomeEmpty(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)

	rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/", nil), model.Anonymous)

	assertStatus(t, rec.Code, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `class="empty"`)
}

func TestHomeEditModeRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)

	for _, tc := range []struct {
		name   string
		viewer model.Viewer
		want   bool
	}{
		{"anonymous", model.Anonymous, false},
		{"user", env.user, false},
		{"admin", env.admin, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/?edit=1", nil), tc.viewer)
			assertStatus(t, rec.Code, http.StatusOK)
			assert.Equal(t, tc.want, strings.Contains(rec.Body.String(), `class="edit-banner"`))
		})
	}
}

func TestHomeMaintenanceMode(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)

	section := testutil.CreateSection(t, env.db, "Operations", 1)
	testutil.CreateCard(t, env.db, section.ID, "Grafana")

	_, err := env.settings.Update(context.Background(), service.SettingsUpdate{
		MaintenanceMode:    ptr("true"),
		MaintenanceMessage: ptr("Back **soon**"),
	}, env.admin)
	require.NoError(t, err)

	t.Run("anonymous gets maintenance page", func(t *testing.T) {
		rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/", nil), model.Anonymous)
		assertStatus(t, rec.Code, http.StatusServiceUnavailable)
		assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "<strong>soon</strong>")
		assert.NotContains(t, rec.Body.String(), ">Grafana<")
	})

	t.Run("user gets maintenance page on factory", func(t *testing.T) {
		testutil.CreateButton(t, env.db, "Plant", 1)
		rec := env.serve(h.Factory, httptest.NewRequest(http.MethodGet, "/factory?id=1", nil), env.user)
		assertStatus(t, rec.Code, http.StatusServiceUnavailable)
	})

	t.Run("admin still sees portal", func(t *testing.T) {
		rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/", nil), env.admin)
		assertStatus(t, rec.Code, http.StatusOK)
		assert.Contains(t, rec.Body.String(), ">Grafana<")
	})
}

func TestFactoryPage(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)
	ctx := context.Background()

	button := testutil.CreateButton(t, env.db, "Plant A", 1)
	hidden := testutil.CreateButton(t, env.db, "Plant B", 2)
	_, err := env.buttons.Update(ctx, env.admin, hidden.ID, service.ButtonPatch{AccessLevel: ptr("admin")})
	require.NoError(t, err)

	_, err = env.sections.Create(ctx, env.admin, service.SectionPatch{
		LocalizedPatch: service.LocalizedPatch{Name: ptr("Line systems")},
		Factory:        service.OptionalID{Set: true, ID: &button.ID},
	})
	require.NoError(t, err)
	testutil.CreateSection(t, env.db, "Home only", 1)

	t.Run("missing id uses first factory", func(t *testing.T) {
		rec := env.serve(h.Factory, httptest.NewRequest(http.MethodGet, "/factory", nil), model.Anonymous)
		assertStatus(t, rec.Code, http.StatusOK)
		assert.Contains(t, rec.Body.String(), "Plant A")
		assert.Contains(t, rec.Body.String(), "Line systems")
		assert.NotContains(t, rec.Body.String(), "Home only")
	})

	tests := []struct {
		name   string
		target string
		viewer model.Viewer
		want   int
	}{
		{"explicit id", "/factory?id=1", model.Anonymous, http.StatusOK},
		{"non-numeric id", "/factory?id=abc", model.Anonymous, http.StatusNotFound},
		{"negative id", "/factory?id=-1", model.Anonymous, http.StatusNotFound},
		{"unknown id", "/factory?id=99", model.Anonymous, http.StatusNotFound},
		{"hidden from anonymous", "/factory?id=2", model.Anonymous, http.StatusNotFound},
		{"hidden from user", "/factory?id=2", env.user, http.StatusNotFound},
		{"visible to admin", "/factory?id=2", env.admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(h.Factory, httptest.NewRequest(http.MethodGet, tt.target, nil), tt.viewer)
			assertStatus(t, rec.Code, tt.want)
		})
	}
}

func TestSiteTitleFollowsLocale(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)

	_, err := env.settings.Update(context.Background(), service.SettingsUpdate{
		SiteTitle:   ptr("企業入口"),
		SiteTitleEn: ptr("Enterprise Portal"),
	}, env.admin)
	require.NoError(t, err)

	rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/", nil), model.Anonymous)
	assert.Contains(t, rec.Body.String(), "<title>Enterprise Portal</title>")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithLocale(req.Context(), locale.TraditionalChinese))
	rec = env.serve(h.Home, req, model.Anonymous)
	assert.Contains(t, rec.Body.String(), "<title>企業入口</title>")
}

func TestAdminFlagWithoutSessionIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortalHandler(env.db, env.renderer, env.settings)
	forged := model.Viewer{IsAdmin: true}

	rec := env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/?edit=1", nil), forged)
	assertStatus(t, rec.Code, http.StatusOK)
	assert.NotContains(t, rec.Body.String(), `class="edit-banner"`)

	_, err := env.settings.Update(context.Background(), service.SettingsUpdate{MaintenanceMode: ptr("true")}, env.admin)
	require.NoError(t, err)

	rec = env.serve(h.Home, httptest.NewRequest(http.MethodGet, "/", nil), forged)
	assertStatus(t, rec.Code, http.StatusServiceUnavailable)
}
