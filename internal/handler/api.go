// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/util"
)

// maxPatchBytes bounds JSON mutation bodies.
const maxPatchBytes = 1 << 20

// APIHandler serves the JSON mutation and tracking endpoints.
type APIHandler struct {
	buttons   *service.ButtonService
	sections  *service.SectionService
	cards     *service.CardService
	settings  *service.SettingsService
	analytics *service.AnalyticsService
	assets    *service.AssetService
}

// APIServices groups the services behind the JSON API.
type APIServices struct {
	Buttons   *service.ButtonService
	Sections  *service.SectionService
	Cards     *service.CardService
	Settings  *service.SettingsService
	Analytics *service.AnalyticsService
	Assets    *service.AssetService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(svc APIServices) *APIHandler {
	return &APIHandler{
		buttons:   svc.Buttons,
		sections:  svc.Sections,
		cards:     svc.Cards,
		settings:  svc.Settings,
		analytics: svc.Analytics,
		assets:    svc.Assets,
	}
}

// pathID parses the {id} route parameter. Non-numeric ids are reported
// as a missing entity.
func pathID(r *http.Request, entity string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, ok := util.ParsePositiveID(raw)
	if !ok {
		return 0, &service.NotFoundError{Entity: entity}
	}
	return id, nil
}

// entityMessage translates a msg.* key for an entity label.
func entityMessage(r *http.Request, key, entity string) string {
	lang := middleware.GetLanguage(r)
	return i18n.T(lang, key, i18n.T(lang, "entity."+entity))
}

// handleCreate decodes a patch, runs create and answers with the new entity.
func handleCreate[P, E, J any](w http.ResponseWriter, r *http.Request, entity string,
	create func(context.Context, model.Viewer, P) (E, error), view func(E) J) {
	var patch P
	if err := service.DecodePatch(http.MaxBytesReader(w, r.Body, maxPatchBytes), &patch); err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := create(r.Context(), middleware.GetViewer(r), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"message": entityMessage(r, "msg.created", entity),
		entity:    view(created),
	})
}

// handleUpdate decodes a patch for the {id} entity and answers with the
// updated entity.
func handleUpdate[P, E, J any](w http.ResponseWriter, r *http.Request, entity string,
	update func(context.Context, model.Viewer, int64, P) (E, error), view func(E) J) {
	id, err := pathID(r, entity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var patch P
	if err := service.DecodePatch(http.MaxBytesReader(w, r.Body, maxPatchBytes), &patch); err != nil {
		writeServiceError(w, r, err)
		return
	}
	updated, err := update(r.Context(), middleware.GetViewer(r), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"message": entityMessage(r, "msg.updated", entity),
		entity:    view(updated),
	})
}

// handleDelete removes the {id} entity.
func handleDelete(w http.ResponseWriter, r *http.Request, entity string,
	del func(context.Context, model.Viewer, int64) error) {
	id, err := pathID(r, entity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := del(r.Context(), middleware.GetViewer(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"message": entityMessage(r, "msg.deleted", entity),
	})
}

// CreateFactory handles POST /api/factories/create.
func (h *APIHandler) CreateFactory(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, "factory", h.buttons.Create, newFactoryJSON)
}

// UpdateFactory handles POST /api/factories/{id}/update.
func (h *APIHandler) UpdateFactory(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, "factory", h.buttons.Update, newFactoryJSON)
}

// DeleteFactory handles DELETE /api/factories/{id}/delete.
func (h *APIHandler) DeleteFactory(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "factory", h.buttons.Delete)
}

// CreateSection handles POST /api/sections/create.
func (h *APIHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, "section", h.sections.Create, newSectionJSON)
}

// UpdateSection handles POST /api/sections/{id}/update.
func (h *APIHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, "section", h.sections.Update, newSectionJSON)
}

// DeleteSection handles DELETE /api/sections/{id}/delete.
func (h *APIHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "section", h.sections.Delete)
}

// CreateCard handles POST /api/cards/create.
func (h *APIHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, "card", h.cards.Create, newCardJSON)
}

// UpdateCard handles POST /api/cards/{id}/update.
func (h *APIHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, "card", h.cards.Update, newCardJSON)
}

// DeleteCard handles DELETE /api/cards/{id}/delete.
func (h *APIHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "card", h.cards.Delete)
}

// TrackCard handles POST /api/cards/{id}/track. It is public; the viewer
// is recorded when signed in.
func (h *APIHandler) TrackCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "card")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.analytics.RecordClick(r.Context(), id, middleware.GetViewer(r), util.ClientIP(r), r.UserAgent()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// uploadFields maps settings form file fields to asset kinds.
var uploadFields = []struct {
	field string
	kind  service.AssetKind
}{
	{"logo", service.AssetLogo},
	{"favicon", service.AssetFavicon},
	{"background_image", service.AssetBackground},
}

// UpdateSettings handles POST /api/settings/update. The body is a
// multipart form; url-encoded forms are accepted when no files are sent.
// Unknown form keys are ignored.
func (h *APIHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes*int64(len(uploadFields))+maxPatchBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			writeServiceError(w, r, &service.ValidationError{Message: "invalid form data"})
			return
		}
		if err := r.ParseForm(); err != nil {
			writeServiceError(w, r, &service.ValidationError{Message: "invalid form data"})
			return
		}
	}

	update := service.SettingsUpdateFromForm(r.PostForm)

	saved, err := h.saveUploads(r, &update)
	if err != nil {
		h.discard(saved)
		writeServiceError(w, r, err)
		return
	}

	settings, err := h.settings.Update(r.Context(), update, middleware.GetViewer(r))
	if err != nil {
		h.discard(saved)
		writeServiceError(w, r, err)
		return
	}

	writeJSONSuccess(w, map[string]any{
		"message":  i18n.T(middleware.GetLanguage(r), "msg.settings_saved"),
		"settings": newSettingsJSON(settings),
	})
}

// saveUploads stores every uploaded branding image and points update at
// it. It returns the paths written so far, also on error.
func (h *APIHandler) saveUploads(r *http.Request, update *service.SettingsUpdate) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	if h.assets == nil {
		if len(r.MultipartForm.File) > 0 {
			return nil, &service.ValidationError{Message: "uploads are disabled"}
		}
		return nil, nil
	}

	var saved []string
	for _, f := range uploadFields {
		file, header, err := r.FormFile(f.field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return saved, &service.ValidationError{Field: f.field, Message: "unreadable upload"}
		}

		rel, err := h.assets.Save(f.kind, header.Filename, file)
		_ = file.Close()
		if err != nil {
			return saved, err
		}
		saved = append(saved, rel)

		switch f.kind {
		case service.AssetLogo:
			update.Logo = &rel
		case service.AssetFavicon:
			update.Favicon = &rel
		case service.AssetBackground:
			update.BackgroundImage = &rel
		}
	}
	return saved, nil
}

// discard removes uploads written for a request that did not commit.
func (h *APIHandler) discard(paths []string) {
	for _, rel := range paths {
		slog.Debug("discarding upload of failed settings update", "path", rel)
		h.assets.Remove(rel)
	}
}

func (h *APIHandler) maxUploadBytes() int64 {
	if h.assets == nil {
		return maxPatchBytes
	}
	return h.assets.MaxBytes()
}
