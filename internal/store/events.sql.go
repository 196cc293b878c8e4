// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, level, category, message, user_id, ip_address, request_url, metadata, created_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var i Event
	err := row.Scan(
		&i.ID,
		&i.Level,
		&i.Category,
		&i.Message,
		&i.UserID,
		&i.IpAddress,
		&i.RequestUrl,
		&i.Metadata,
		&i.CreatedAt,
	)
	return i, err
}

const createEvent = `-- name: CreateEvent :one
INSERT INTO events (level, category, message, user_id, ip_address, request_url, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

type CreateEventParams struct {
	Level      string
	Category   string
	Message    string
	UserID     sql.NullInt64
	IpAddress  string
	RequestUrl string
	Metadata   string
	CreatedAt  time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level,
		arg.Category,
		arg.Message,
		arg.UserID,
		arg.IpAddress,
		arg.RequestUrl,
		arg.Metadata,
		arg.CreatedAt,
	)
	return scanEvent(row)
}

const listRecentEvents = `-- name: ListRecentEvents :many
SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC, id DESC LIMIT ?`

func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Event
	for rows.Next() {
		i, err := scanEvent(rows)
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

const listEventsByCategory = `-- name: ListEventsByCategory :many
SELECT ` + eventColumns + ` FROM events WHERE category = ? ORDER BY created_at DESC, id DESC LIMIT ?`

func (q *Queries) ListEventsByCategory(ctx context.Context, category string, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByCategory, category, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Event
	for rows.Next() {
		i, err := scanEvent(rows)
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
