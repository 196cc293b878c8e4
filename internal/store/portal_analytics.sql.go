// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const portalAnalyticColumns = `id, card_id, user_id, ip_address, user_agent, browser, os,
device_type, country_code, clicked_at`

func scanPortalAnalytic(row interface{ Scan(...any) error }) (PortalAnalytic, error) {
	var i PortalAnalytic
	err := row.Scan(
		&i.ID,
		&i.CardID,
		&i.UserID,
		&i.IpAddress,
		&i.UserAgent,
		&i.Browser,
		&i.Os,
		&i.DeviceType,
		&i.CountryCode,
		&i.ClickedAt,
	)
	return i, err
}

const createPortalAnalytic = `-- name: CreatePortalAnalytic :one
INSERT INTO portal_analytics (
    card_id, user_id, ip_address, user_agent, browser, os, device_type, country_code, clicked_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + portalAnalyticColumns

type CreatePortalAnalyticParams struct {
	CardID      int64
	UserID      sql.NullInt64
	IpAddress   string
	UserAgent   string
	Browser     string
	Os          string
	DeviceType  string
	CountryCode string
	ClickedAt   time.Time
}

func (q *Queries) CreatePortalAnalytic(ctx context.Context, arg CreatePortalAnalyticParams) (PortalAnalytic, error) {
	row := q.db.QueryRowContext(ctx, createPortalAnalytic,
		arg.CardID,
		arg.UserID,
		arg.IpAddress,
		arg.UserAgent,
		arg.Browser,
		arg.Os,
		arg.DeviceType,
		arg.CountryCode,
		arg.ClickedAt,
	)
	return scanPortalAnalytic(row)
}

const countPortalAnalytics = `-- name: CountPortalAnalytics :one
SELECT COUNT(*) FROM portal_analytics`

func (q *Queries) CountPortalAnalytics(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPortalAnalytics).Scan(&count)
	return count, err
}

const countPortalAnalyticsByCard = `-- name: CountPortalAnalyticsByCard :one
SELECT COUNT(*) FROM portal_analytics WHERE card_id = ?`

func (q *Queries) CountPortalAnalyticsByCard(ctx context.Context, cardID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPortalAnalyticsByCard, cardID).Scan(&count)
	return count, err
}

const listRecentPortalAnalytics = `-- name: ListRecentPortalAnalytics :many
SELECT ` + portalAnalyticColumns + ` FROM portal_analytics
ORDER BY clicked_at DESC, id DESC LIMIT ?`

func (q *Queries) ListRecentPortalAnalytics(ctx context.Context, limit int64) ([]PortalAnalytic, error) {
	rows, err := q.db.QueryContext(ctx, listRecentPortalAnalytics, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []PortalAnalytic{}
	for rows.Next() {
		i, err := scanPortalAnalytic(rows)
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

const listClickCountsByCard = `-- name: ListClickCountsByCard :many
SELECT card_id, COUNT(*) AS clicks FROM portal_analytics GROUP BY card_id`

type ListClickCountsByCardRow struct {
	CardID int64
	Clicks int64
}

func (q *Queries) ListClickCountsByCard(ctx context.Context) ([]ListClickCountsByCardRow, error) {
	rows, err := q.db.QueryContext(ctx, listClickCountsByCard)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ListClickCountsByCardRow
	for rows.Next() {
		var i ListClickCountsByCardRow
		if err := rows.Scan(&i.CardID, &i.Clicks); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
