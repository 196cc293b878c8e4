// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// accessRank maps an access_level column onto the viewer rank scale.
// Unknown values rank as admin so they never leak to lesser viewers.
const accessRank = `(CASE access_level WHEN 'public' THEN 0 WHEN 'authenticated' THEN 1 ELSE 2 END)`

const factoryButtonColumns = `id, name, name_vi, name_zh_hant, name_zh_hans,
description, description_vi, description_zh_hant, description_zh_hans,
url, icon, background_color, text_color, sort_order, is_active, access_level,
created_at, updated_at, updated_by`

func scanFactoryButton(row interface{ Scan(...any) error }) (FactoryButton, error) {
	var i FactoryButton
	err := row.Scan(
		&i.ID,
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
		&i.BackgroundColor,
		&i.TextColor,
		&i.SortOrder,
		&i.IsActive,
		&i.AccessLevel,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.UpdatedBy,
	)
	return i, err
}

func (q *Queries) listFactoryButtons(ctx context.Context, query string, args ...any) ([]FactoryButton, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []FactoryButton{}
	for rows.Next() {
		i, err := scanFactoryButton(rows)
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

const createFactoryButton = `-- name: CreateFactoryButton :one
INSERT INTO factory_buttons (
    name, name_vi, name_zh_hant, name_zh_hans,
    description, description_vi, description_zh_hant, description_zh_hans,
    url, icon, background_color, text_color, sort_order, is_active, access_level,
    created_at, updated_at, updated_by
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + factoryButtonColumns

type CreateFactoryButtonParams struct {
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
	BackgroundColor   string
	TextColor         string
	SortOrder         int64
	IsActive          bool
	AccessLevel       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
}

func (q *Queries) CreateFactoryButton(ctx context.Context, arg CreateFactoryButtonParams) (FactoryButton, error) {
	row := q.db.QueryRowContext(ctx, createFactoryButton,
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
		arg.BackgroundColor,
		arg.TextColor,
		arg.SortOrder,
		arg.IsActive,
		arg.AccessLevel,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.UpdatedBy,
	)
	return scanFactoryButton(row)
}

const getFactoryButton = `-- name: GetFactoryButton :one
SELECT ` + factoryButtonColumns + ` FROM factory_buttons WHERE id = ?`

func (q *Queries) GetFactoryButton(ctx context.Context, id int64) (FactoryButton, error) {
	return scanFactoryButton(q.db.QueryRowContext(ctx, getFactoryButton, id))
}

const getFactoryButtonByName = `-- name: GetFactoryButtonByName :one
SELECT ` + factoryButtonColumns + ` FROM factory_buttons WHERE name = ? LIMIT 1`

func (q *Queries) GetFactoryButtonByName(ctx context.Context, name string) (FactoryButton, error) {
	return scanFactoryButton(q.db.QueryRowContext(ctx, getFactoryButtonByName, name))
}

const listFactoryButtons = `-- name: ListFactoryButtons :many
SELECT ` + factoryButtonColumns + ` FROM factory_buttons ORDER BY sort_order, name`

// ListFactoryButtons returns every button, active or not.
func (q *Queries) ListFactoryButtons(ctx context.Context) ([]FactoryButton, error) {
	return q.listFactoryButtons(ctx, listFactoryButtons)
}

const listVisibleFactoryButtons = `-- name: ListVisibleFactoryButtons :many
SELECT ` + factoryButtonColumns + ` FROM factory_buttons
WHERE is_active = 1 AND ` + accessRank + ` <= ?
ORDER BY sort_order, name`

// ListVisibleFactoryButtons returns active buttons whose access level ranks
// at or below maxRank.
func (q *Queries) ListVisibleFactoryButtons(ctx context.Context, maxRank int64) ([]FactoryButton, error) {
	return q.listFactoryButtons(ctx, listVisibleFactoryButtons, maxRank)
}

const updateFactoryButton = `-- name: UpdateFactoryButton :one
UPDATE factory_buttons SET
    name = ?, name_vi = ?, name_zh_hant = ?, name_zh_hans = ?,
    description = ?, description_vi = ?, description_zh_hant = ?, description_zh_hans = ?,
    url = ?, icon = ?, background_color = ?, text_color = ?,
    sort_order = ?, is_active = ?, access_level = ?,
    updated_at = ?, updated_by = ?
WHERE id = ?
RETURNING ` + factoryButtonColumns

type UpdateFactoryButtonParams struct {
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
	BackgroundColor   string
	TextColor         string
	SortOrder         int64
	IsActive          bool
	AccessLevel       string
	UpdatedAt         time.Time
	UpdatedBy         sql.NullInt64
	ID                int64
}

func (q *Queries) UpdateFactoryButton(ctx context.Context, arg UpdateFactoryButtonParams) (FactoryButton, error) {
	row := q.db.QueryRowContext(ctx, updateFactoryButton,
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
		arg.BackgroundColor,
		arg.TextColor,
		arg.SortOrder,
		arg.IsActive,
		arg.AccessLevel,
		arg.UpdatedAt,
		arg.UpdatedBy,
		arg.ID,
	)
	return scanFactoryButton(row)
}

const deleteFactoryButton = `-- name: DeleteFactoryButton :execrows
DELETE FROM factory_buttons WHERE id = ?`

// DeleteFactoryButton removes a button and reports how many rows went.
// Sections pointing at it fall back to the home page.
func (q *Queries) DeleteFactoryButton(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteFactoryButton, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
