// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/olegiv/portal-go/internal/imaging"
	"github.com/olegiv/portal-go/internal/util"
)

// AssetKind names a branding image slot in the portal settings.
type AssetKind string

const (
	AssetLogo       AssetKind = "logo"
	AssetFavicon    AssetKind = "favicon"
	AssetBackground AssetKind = "background"
)

var assetSpecs = map[AssetKind]imaging.Spec{
	AssetLogo:       {Width: 512, Height: 512, Mode: imaging.Fit},
	AssetFavicon:    {Width: 64, Height: 64, Mode: imaging.Fill, Format: "png"},
	AssetBackground: {Width: 2560, Height: 1600, Mode: imaging.Fit, Quality: 85},
}

// field maps the kind to its settings form key.
func (k AssetKind) field() string {
	if k == AssetBackground {
		return "background_image"
	}
	return string(k)
}

// AssetService stores processed branding images under the uploads directory.
type AssetService struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

// NewAssetService creates an AssetService rooted at dir. Uploads larger
// than maxBytes are rejected.
func NewAssetService(dir string, maxBytes int64, logger *slog.Logger) *AssetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetService{dir: dir, maxBytes: maxBytes, logger: logger}
}

// Dir returns the uploads root.
func (s *AssetService) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file upload limit.
func (s *AssetService) MaxBytes() int64 {
	return s.maxBytes
}

// Save processes the image in r and writes it to <dir>/<kind>/<uuid>.<ext>.
// It returns the path relative to the uploads root, using forward slashes.
func (s *AssetService) Save(kind AssetKind, filename string, r io.Reader) (string, error) {
	spec, ok := assetSpecs[kind]
	if !ok {
		return "", invalid("kind", "unknown asset kind %q", kind)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", storeErr("reading upload", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", invalid(kind.field(), "file exceeds the upload size limit")
	}
	if len(data) == 0 {
		return "", invalid(kind.field(), "file is empty")
	}

	result, err := imaging.Process(data, spec)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return "", invalid(kind.field(), "%s: only JPEG, PNG, GIF and WebP images are allowed", filepath.Base(filename))
		}
		return "", invalid(kind.field(), "%s: %v", filepath.Base(filename), err)
	}

	dir, err := util.SafeJoin(s.dir, string(kind))
	if err != nil {
		return "", storeErr("resolving upload dir", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", storeErr("creating upload dir", err)
	}

	name := uuid.NewString() + result.Ext()
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, result.Data, 0o644); err != nil {
		return "", storeErr("writing upload", err)
	}

	rel := string(kind) + "/" + name
	s.logger.Info("asset saved", "kind", kind, "path", rel, "width", result.Width, "height", result.Height)
	return rel, nil
}

// Remove deletes a previously saved asset. Failures are logged, not returned.
func (s *AssetService) Remove(rel string) {
	if rel == "" || filepath.IsAbs(rel) || util.HasTraversal(filepath.FromSlash(rel)) {
		return
	}
	full, err := util.SafeJoin(s.dir, filepath.FromSlash(rel))
	if err != nil {
		return
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("removing asset", "path", rel, "error", err)
	}
}

// Exists reports whether rel names a file under the uploads root.
func (s *AssetService) Exists(rel string) bool {
	full, err := util.SafeJoin(s.dir, filepath.FromSlash(rel))
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

