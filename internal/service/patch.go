// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/util"
)

// maxNameLength bounds entity names, matching the original column widths.
const maxNameLength = 100

// LocalizedPatch holds the translatable fields shared by every entity.
type LocalizedPatch struct {
	Name              *string `json:"name"`
	NameVi            *string `json:"name_vi"`
	NameZhHant        *string `json:"name_zh_hant"`
	NameZhHans        *string `json:"name_zh_hans"`
	Description       *string `json:"description"`
	DescriptionVi     *string `json:"description_vi"`
	DescriptionZhHant *string `json:"description_zh_hant"`
	DescriptionZhHans *string `json:"description_zh_hans"`
}

// ButtonPatch lists the fields a factory button create or update may set.
type ButtonPatch struct {
	LocalizedPatch
	URL             *string `json:"url"`
	Icon            *string `json:"icon"`
	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
	Order           *int64  `json:"order"`
	IsActive        *bool   `json:"is_active"`
	AccessLevel     *string `json:"access_level"`
}

// SectionPatch lists the fields a section create or update may set.
type SectionPatch struct {
	LocalizedPatch
	Factory  OptionalID `json:"factory"`
	Icon     *string    `json:"icon"`
	Color    *string    `json:"color"`
	Order    *int64     `json:"order"`
	IsActive *bool      `json:"is_active"`
}

// CardPatch lists the fields a card create or update may set.
type CardPatch struct {
	LocalizedPatch
	SectionID   *int64  `json:"section_id"`
	URL         *string `json:"url"`
	Icon        *string `json:"icon"`
	IconColor   *string `json:"icon_color"`
	Status      *string `json:"status"`
	Order       *int64  `json:"order"`
	IsActive    *bool   `json:"is_active"`
	IsExternal  *bool   `json:"is_external"`
	AccessLevel *string `json:"access_level"`
}

// OptionalID distinguishes an absent reference from an explicit null. It
// accepts a number, a numeric string, an empty string or null, since edit
// forms post select values as strings.
type OptionalID struct {
	Set bool
	ID  *int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.ID = nil

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(raw), Type: reflect.TypeFor[int64]()}
	}
	o.ID = &id
	return nil
}

// DecodePatch reads a JSON object into dst and rejects unknown fields and
// mistyped values as validation errors naming the field.
func DecodePatch(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.Is(err, io.EOF):
			return invalid("", "request body is empty")
		case errors.As(err, &typeErr):
			return invalid(typeErr.Field, "must be of type %s", typeErr.Type)
		case errors.As(err, &syntaxErr):
			return invalid("", "malformed JSON at offset %d", syntaxErr.Offset)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return invalid(field, "unknown field")
		default:
			return invalid("", "invalid request body: %v", err)
		}
	}

	if dec.More() {
		return invalid("", "request body must hold a single JSON object")
	}
	return nil
}

// localizedValues is the resolved translatable text of an entity.
type localizedValues struct {
	Name, NameVi, NameZhHant, NameZhHans                             string
	Description, DescriptionVi, DescriptionZhHant, DescriptionZhHans string
}

// apply overlays the set fields of p onto v.
func (p LocalizedPatch) apply(v *localizedValues) {
	setString(&v.Name, p.Name)
	setString(&v.NameVi, p.NameVi)
	setString(&v.NameZhHant, p.NameZhHant)
	setString(&v.NameZhHans, p.NameZhHans)
	setString(&v.Description, p.Description)
	setString(&v.DescriptionVi, p.DescriptionVi)
	setString(&v.DescriptionZhHant, p.DescriptionZhHant)
	setString(&v.DescriptionZhHans, p.DescriptionZhHans)
}

func (v *localizedValues) validate() error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return invalid("name", "is required")
	}
	for _, f := range []struct{ field, value string }{
		{"name", v.Name},
		{"name_vi", v.NameVi},
		{"name_zh_hant", v.NameZhHant},
		{"name_zh_hans", v.NameZhHans},
	} {
		if utf8.RuneCountInString(f.value) > maxNameLength {
			return invalid(f.field, "must be at most %d characters", maxNameLength)
		}
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func validateURL(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return invalid(field, "is required")
	}
	if !util.IsHTTPURL(s) {
		return invalid(field, "must be an absolute http or https URL")
	}
	return nil
}

func validateColor(field, s string) error {
	if !util.IsHexColor(s) {
		return invalid(field, "must be a #RRGGBB color")
	}
	return nil
}

func validateAccessLevel(s string) error {
	if !model.AccessLevel(s).Valid() {
		return invalid("access_level", "must be one of public, authenticated, admin")
	}
	return nil
}

func validateStatus(s string) error {
	if !model.CardStatus(s).Valid() {
		return invalid("status", "must be one of online, offline, maintenance")
	}
	return nil
}
