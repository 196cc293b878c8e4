// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const portalSectionColumns = `id, factory_id, name, name_vi, name_zh_hant, name_zh_hans,
description, description_vi, description_zh_hant, description_zh_hans,
icon, color, sort_order, is_active, created_at, updated_at, updated_by`

func scanPortalSection(row interface{ Scan(...any) error }) (PortalSection, error) {
	var i PortalSection
	err := row.Scan(
		&i.ID,
		&i.FactoryID,
		&i.Name,
		&i.NameVi,
		&i.NameZhHant,
		&i.NameZhHans,
		&i.Description,
		&i.DescriptionVi,
		&i.DescriptionZhHant,
		&i.DescriptionZhHans,
		&i.Icon,
		&i.Color,
		&i.SortOrder,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.UpdatedBy,
	)
	return i, err
}

func (q *Queries) listPortalSections(ctx context.Context, query string, args ...any) ([]PortalSection, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []PortalSection{}
	for rows.Next() {
		i, err := scanPortalSection(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPortalSection = `-- name: CreatePortalSection :one
INSERT INTO portal_sections (
    factory_id, name, name_vi, name_zh_hant, name_zh_hans,
    description, description_vi, description_zh_hant, description_zh_hans,
    icon, color, sort_order, is_active, created_at, updated_at, updated_by
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + portalSectionColumns

type CreatePortalSectionParams struct {
	FactoryID         sql.NullInt64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Icon              string
	Color             string
	SortOrder         int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
}

func (q *Queries) CreatePortalSection(ctx context.Context, arg CreatePortalSectionParams) (PortalSection, error) {
	row := q.db.QueryRowContext(ctx, createPortalSection,
		arg.FactoryID,
		arg.Name,
		arg.NameVi,
		arg.NameZhHant,
		arg.NameZhHans,
		arg.Description,
		arg.DescriptionVi,
		arg.DescriptionZhHant,
		arg.DescriptionZhHans,
		arg.Icon,
		arg.Color,
		arg.SortOrder,
		arg.IsActive,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.UpdatedBy,
	)
	return scanPortalSection(row)
}

const getPortalSection = `-- name: GetPortalSection :one
SELECT ` + portalSectionColumns + ` FROM portal_sections WHERE id = ?`

func (q *Queries) GetPortalSection(ctx context.Context, id int64) (PortalSection, error) {
	return scanPortalSection(q.db.QueryRowContext(ctx, getPortalSection, id))
}

const getPortalSectionByName = `-- name: GetPortalSectionByName :one
SELECT ` + portalSectionColumns + ` FROM portal_sections WHERE name = ? LIMIT 1`

func (q *Queries) GetPortalSectionByName(ctx context.Context, name string) (PortalSection, error) {
	return scanPortalSection(q.db.QueryRowContext(ctx, getPortalSectionByName, name))
}

const listPortalSections = `-- name: ListPortalSections :many
SELECT ` + portalSectionColumns + ` FROM portal_sections ORDER BY sort_order, name`

// ListPortalSections returns every section regardless of page or state.
func (q *Queries) ListPortalSections(ctx context.Context) ([]PortalSection, error) {
	return q.listPortalSections(ctx, listPortalSections)
}

const listActiveHomeSections = `-- name: ListActiveHomeSections :many
SELECT ` + portalSectionColumns + ` FROM portal_sections
WHERE is_active = 1 AND factory_id IS NULL
ORDER BY sort_order, name`

// ListActiveHomeSections returns active sections not bound to a factory.
func (q *Queries) ListActiveHomeSections(ctx context.Context) ([]PortalSection, error) {
	return q.listPortalSections(ctx, listActiveHomeSections)
}

const listActiveSectionsByFactory = `-- name: ListActiveSectionsByFactory :many
SELECT ` + portalSectionColumns + ` FROM portal_sections
WHERE is_active = 1 AND factory_id = ?
ORDER BY sort_order, name`

func (q *Queries) ListActiveSectionsByFactory(ctx context.Context, factoryID int64) ([]PortalSection, error) {
	return q.listPortalSections(ctx, listActiveSectionsByFactory, factoryID)
}

const updatePortalSection = `-- name: UpdatePortalSection :one
UPDATE portal_sections SET
    factory_id = ?, name = ?, name_vi = ?, name_zh_hant = ?, name_zh_hans = ?,
    description = ?, description_vi = ?, description_zh_hant = ?, description_zh_hans = ?,
    icon = ?, color = ?, sort_order = ?, is_active = ?,
    updated_at = ?, updated_by = ?
WHERE id = ?
RETURNING ` + portalSectionColumns

type UpdatePortalSectionParams struct {
	FactoryID         sql.NullInt64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Icon              string
	Color             string
	SortOrder         int64
	IsActive          bool
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
	ID                int64
}

func (q *Queries) UpdatePortalSection(ctx context.Context, arg UpdatePortalSectionParams) (PortalSection, error) {
	row := q.db.QueryRowContext(ctx, updatePortalSection,
		arg.FactoryID,
		arg.Name,
		arg.NameVi,
		arg.NameZhHant,
		arg.NameZhHans,
		arg.Description,
		arg.DescriptionVi,
		arg.DescriptionZhHant,
		arg.DescriptionZhHans,
		arg.Icon,
		arg.Color,
		arg.SortOrder,
		arg.IsActive,
		arg.UpdatedAt,
		arg.UpdatedBy,
		arg.ID,
	)
	return scanPortalSection(row)
}

const deletePortalSection = `-- name: DeletePortalSection :execrows
DELETE FROM portal_sections WHERE id = ?`

// DeletePortalSection removes a section together with its cards.
func (q *Queries) DeletePortalSection(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePortalSection, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
