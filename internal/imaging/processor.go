// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded branding images: it sniffs the
// format, applies EXIF orientation and resizes to a target box.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrUnsupportedFormat is returned for anything but JPEG, PNG, GIF and WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Mode selects how an image is fitted to the target box.
type Mode int

const (
	// Fit scales the image down to fit inside the box, keeping its aspect.
	Fit Mode = iota
	// Fill scales and center-crops the image to exactly fill the box.
	Fill
)

// Spec describes the output of Process.
type Spec struct {
	Width   int
	Height  int
	Mode    Mode
	Format  string // forced output format; empty keeps the source format
	Quality int
}

// Result is a processed image ready to be written.
type Result struct {
	Data     []byte
	Format   string
	Width    int
	Height   int
	MimeType string
}

// Ext returns the file extension for the result format.
func (r Result) Ext() string {
	if r.Format == "jpeg" {
		return ".jpg"
	}
	return "." + r.Format
}

// Process decodes data, corrects orientation and resizes it per spec.
// Images already inside a Fit box are not upscaled.
func Process(data []byte, spec Spec) (Result, error) {
	format := DetectFormat(data)
	if format == "" {
		return Result{}, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(data))

	bounds := img.Bounds()
	switch spec.Mode {
	case Fill:
		img = imaging.Fill(img, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)
	default:
		if bounds.Dx() > spec.Width || bounds.Dy() > spec.Height {
			img = imaging.Fit(img, spec.Width, spec.Height, imaging.Lanczos)
		}
	}

	out := format
	if spec.Format != "" {
		out = spec.Format
	}
	// There is no pure Go WebP encoder.
	if out == "webp" {
		out = "jpeg"
	}
	quality := spec.Quality
	if quality <= 0 {
		quality = 90
	}

	encoded, err := encode(img, out, quality)
	if err != nil {
		return Result{}, fmt.Errorf("encoding image: %w", err)
	}

	b := img.Bounds()
	return Result{
		Data:     encoded,
		Format:   out,
		Width:    b.Dx(),
		Height:   b.Dy(),
		MimeType: "image/" + out,
	}, nil
}

// DetectFormat sniffs data and returns jpeg, png, gif, webp or "".
// TIFF is rejected outright: imaging's TIFF decoder is vulnerable to
// CVE-2023-36308.
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return "jpeg"
	case strings.HasPrefix(contentType, "image/png"):
		return "png"
	case strings.HasPrefix(contentType, "image/gif"):
		return "gif"
	case strings.HasPrefix(contentType, "image/webp"):
		return "webp"
	default:
		return ""
	}
}

// readExifOrientation returns the EXIF orientation tag, or 1 when absent.
func readExifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes the camera rotation recorded in EXIF tag values 2-8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
