// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the portal's HTML templates.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/locale"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/session"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

const baseLayout = "layouts/base.html"

// parseTemplates parses every page under pages/ together with the base
// layout and all partials. Pages are keyed by file name without extension.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	pages, err := getTemplateFiles(templatesFS, "pages")
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}

	for _, tmplPath := range pages {
		name := strings.TrimSuffix(path.Base(tmplPath), ".html")

		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, tmplPath)

		tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

// getTemplateFiles returns all .html files in a directory.
func getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			// fs.FS paths always use forward slashes.
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a page template named name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": i18n.T,
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"truncate": truncate,
		"add": func(a, b int) int {
			return a + b
		},
		"uploadURL": UploadURL,
		"statusKey": func(status string) string {
			return "status." + status
		},
		"accessKey": func(level string) string {
			return "access." + level
		},
		"accessLevels": func() []model.AccessLevel {
			return model.AccessLevels
		},
		"cardStatuses": func() []model.CardStatus {
			return model.CardStatuses
		},
		"anchor": util.Anchor,
		"dict":   dict,
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// dict builds a map from alternating keys and values so partials can
// receive more than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// truncate shortens s to at most length runes, appending an ellipsis.
func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return string(runes[:length]) + "..."
}

// UploadURL maps a stored asset path to its public URL.
// An empty path yields an empty URL.
func UploadURL(rel string) string {
	if rel == "" {
		return ""
	}
	return "/uploads/" + strings.TrimPrefix(rel, "/")
}

// Site is the branding and behaviour of the portal as rendered on every page.
type Site struct {
	Title                string
	Logo                 string
	Favicon              string
	Background           string
	ThemeColor           string
	BackgroundColor      string
	ShowStatusIndicators bool
	EnableAnimations     bool
	MaintenanceMode      bool
	MaintenanceMessage   template.HTML
	CustomCSS            template.CSS
	CustomJS             template.JS
}

// NewSite derives the rendered site from the settings row. The English
// title is used for the base locale when it is set.
func NewSite(s store.PortalSetting, loc locale.Locale) Site {
	title := s.SiteTitle
	if !loc.IsAlternate() && s.SiteTitleEn != "" {
		title = s.SiteTitleEn
	}
	return Site{
		Title:                title,
		Logo:                 UploadURL(s.Logo),
		Favicon:              UploadURL(s.Favicon),
		Background:           UploadURL(s.BackgroundImage),
		ThemeColor:           s.ThemeColor,
		BackgroundColor:      s.BackgroundColor,
		ShowStatusIndicators: s.ShowStatusIndicators,
		EnableAnimations:     s.EnableAnimations,
		MaintenanceMode:      s.MaintenanceMode,
		MaintenanceMessage:   service.RenderMarkdown(s.MaintenanceMessage),
		CustomCSS:            service.SanitizeCustomCSS(s.CustomCss),
		CustomJS:             service.SanitizeCustomJS(s.CustomJs),
	}
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Locale locale.Locale
	Label  string
	URL    string
	Active bool
}

var languageLabels = map[locale.Locale]string{
	locale.Base:               "English",
	locale.Vietnamese:         "Tiếng Việt",
	locale.TraditionalChinese: "繁體中文",
	locale.SimplifiedChinese:  "简体中文",
}

// languageOptions builds switcher links that keep the current query.
func languageOptions(u *url.URL, current locale.Locale) []LanguageOption {
	opts := make([]LanguageOption, 0, len(locale.All))
	for _, loc := range locale.All {
		q := u.Query()
		q.Set("lang", loc.String())
		opts = append(opts, LanguageOption{
			Locale: loc,
			Label:  languageLabels[loc],
			URL:    u.Path + "?" + q.Encode(),
			Active: loc == current,
		})
	}
	return opts
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Lang        string
	Locale      locale.Locale
	Viewer      model.Viewer
	Site        Site
	Languages   []LanguageOption
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
	IsDev       bool
}

// Render renders a page template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page template with the given status. Request
// scoped fields (language, viewer, flash) are filled in from req.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.Locale = middleware.GetLocale(req)
	data.Lang = data.Locale.Tag()
	data.Viewer = middleware.GetViewer(req)
	data.Languages = languageOptions(req.URL, data.Locale)
	data.IsDev = r.isDev

	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), session.KeyFlash); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), session.KeyFlashType)
			if data.FlashType == "" {
				data.FlashType = "info"
			}
		}
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), session.KeyFlash, message)
		r.sessionManager.Put(req.Context(), session.KeyFlashType, flashType)
	}
}
