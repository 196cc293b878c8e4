// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const systemCardColumns = `id, section_id, name, name_vi, name_zh_hant, name_zh_hans,
description, description_vi, description_zh_hant, description_zh_hans,
url, icon, icon_color, status, sort_order, is_active, is_external, access_level,
created_at, updated_at, updated_by`

func scanSystemCard(row interface{ Scan(...any) error }) (SystemCard, error) {
	var i SystemCard
	err := row.Scan(
		&i.ID,
		&i.SectionID,
		&i.Name,
		&i.NameVi,
		&i.NameZhHant,
		&i.NameZhHans,
		&i.Description,
		&i.DescriptionVi,
		&i.DescriptionZhHant,
		&i.DescriptionZhHans,
		&i.Url,
		&i.Icon,
		&i.IconColor,
		&i.Status,
		&i.SortOrder,
		&i.IsActive,
		&i.IsExternal,
		&i.AccessLevel,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.UpdatedBy,
	)
	return i, err
}

func (q *Queries) listSystemCards(ctx context.Context, query string, args ...any) ([]SystemCard, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []SystemCard{}
	for rows.Next() {
		i, err := scanSystemCard(rows)
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

const createSystemCard = `-- name: CreateSystemCard :one
INSERT INTO system_cards (
    section_id, name, name_vi, name_zh_hant, name_zh_hans,
    description, description_vi, description_zh_hant, description_zh_hans,
    url, icon, icon_color, status, sort_order, is_active, is_external, access_level,
    created_at, updated_at, updated_by
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + systemCardColumns

type CreateSystemCardParams struct {
	SectionID         int64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Url               string
	Icon              string
	IconColor         string
	Status            string
	SortOrder         int64
	IsActive          bool
	IsExternal        bool
	AccessLevel       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
}

func (q *Queries) CreateSystemCard(ctx context.Context, arg CreateSystemCardParams) (SystemCard, error) {
	row := q.db.QueryRowContext(ctx, createSystemCard,
		arg.SectionID,
		arg.Name,
		arg.NameVi,
		arg.NameZhHant,
		arg.NameZhHans,
		arg.Description,
		arg.DescriptionVi,
		arg.DescriptionZhHant,
		arg.DescriptionZhHans,
		arg.Url,
		arg.Icon,
		arg.IconColor,
		arg.Status,
		arg.SortOrder,
		arg.IsActive,
		arg.IsExternal,
		arg.AccessLevel,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.UpdatedBy,
	)
	return scanSystemCard(row)
}

const getSystemCard = `-- name: GetSystemCard :one
SELECT ` + systemCardColumns + ` FROM system_cards WHERE id = ?`

func (q *Queries) GetSystemCard(ctx context.Context, id int64) (SystemCard, error) {
	return scanSystemCard(q.db.QueryRowContext(ctx, getSystemCard, id))
}

const listSystemCards = `-- name: ListSystemCards :many
SELECT ` + systemCardColumns + ` FROM system_cards ORDER BY section_id, sort_order, name`

func (q *Queries) ListSystemCards(ctx context.Context) ([]SystemCard, error) {
	return q.listSystemCards(ctx, listSystemCards)
}

const listCardsBySection = `-- name: ListCardsBySection :many
SELECT ` + systemCardColumns + ` FROM system_cards WHERE section_id = ? ORDER BY sort_order, name`

// ListCardsBySection returns all cards of a section, active or not.
func (q *Queries) ListCardsBySection(ctx context.Context, sectionID int64) ([]SystemCard, error) {
	return q.listSystemCards(ctx, listCardsBySection, sectionID)
}

const listVisibleCardsBySection = `-- name: ListVisibleCardsBySection :many
SELECT ` + systemCardColumns + ` FROM system_cards
WHERE section_id = ? AND is_active = 1 AND ` + accessRank + ` <= ?
ORDER BY sort_order, name`

type ListVisibleCardsBySectionParams struct {
	SectionID int64
	MaxRank   int64
}

func (q *Queries) ListVisibleCardsBySection(ctx context.Context, arg ListVisibleCardsBySectionParams) ([]SystemCard, error) {
	return q.listSystemCards(ctx, listVisibleCardsBySection, arg.SectionID, arg.MaxRank)
}

const countCardsBySection = `-- name: CountCardsBySection :one
SELECT COUNT(*) FROM system_cards WHERE section_id = ?`

func (q *Queries) CountCardsBySection(ctx context.Context, sectionID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCardsBySection, sectionID).Scan(&count)
	return count, err
}

const updateSystemCard = `-- name: UpdateSystemCard :one
UPDATE system_cards SET
    section_id = ?, name = ?, name_vi = ?, name_zh_hant = ?, name_zh_hans = ?,
    description = ?, description_vi = ?, description_zh_hant = ?, description_zh_hans = ?,
    url = ?, icon = ?, icon_color = ?, status = ?, sort_order = ?,
    is_active = ?, is_external = ?, access_level = ?,
    updated_at = ?, updated_by = ?
WHERE id = ?
RETURNING ` + systemCardColumns

type UpdateSystemCardParams struct {
	SectionID         int64
	Name              string
	NameVi            string
	NameZhHant        string
	NameZhHans        string
	Description       string
	DescriptionVi     string
	DescriptionZhHant string
	DescriptionZhHans string
	Url               string
	Icon              string
	IconColor         string
	Status            string
	SortOrder         int64
	IsActive          bool
	IsExternal        bool
	AccessLevel       string
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
	ID                int64
}

func (q *Queries) UpdateSystemCard(ctx context.Context, arg UpdateSystemCardParams) (SystemCard, error) {
	row := q.db.QueryRowContext(ctx, updateSystemCard,
		arg.SectionID,
		arg.Name,
		arg.NameVi,
		arg.NameZhHant,
		arg.NameZhHans,
		arg.Description,
		arg.DescriptionVi,
		arg.DescriptionZhHant,
		arg.DescriptionZhHans,
		arg.Url,
		arg.Icon,
		arg.IconColor,
		arg.Status,
		arg.SortOrder,
		arg.IsActive,
		arg.IsExternal,
		arg.AccessLevel,
		arg.UpdatedAt,
		arg.UpdatedBy,
		arg.ID,
	)
	return scanSystemCard(row)
}

const deleteSystemCard = `-- name: DeleteSystemCard :execrows
DELETE FROM system_cards WHERE id = ?`

func (q *Queries) DeleteSystemCard(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSystemCard, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
