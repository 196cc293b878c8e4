// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the portal's business rules: visibility,
// the admin CRUD surface, settings, click analytics and uploaded assets.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// EventService writes audit entries to the event log.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:      level,
		Category:   category,
		Message:    message,
		UserID:     util.NullInt64FromPtr(userID),
		IpAddress:  ipAddress,
		RequestUrl: requestURL,
		Metadata:   metadataJSON,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		slog.Debug("failed to log event", "error", err, "category", category)
		return err
	}
	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, userID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, userID, ipAddress, requestURL, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, userID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, userID, ipAddress, requestURL, metadata)
}

// LogAuthEvent logs a login, logout or lockout.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, ipAddress, requestURL, metadata)
}

// LogChange records an admin mutation of a portal entity. Failures are
// logged and swallowed: the mutation itself already succeeded.
func (s *EventService) LogChange(ctx context.Context, category, message string, actor model.Viewer, metadata map[string]any) {
	_ = s.LogEvent(ctx, model.EventLevelInfo, category, message, actor.UserID, "", "", metadata)
}

// Recent returns the newest events, optionally restricted to category.
func (s *EventService) Recent(ctx context.Context, category string, limit int64) ([]store.Event, error) {
	var (
		events []store.Event
		err    error
	)
	if category == "" {
		events, err = s.queries.ListRecentEvents(ctx, limit)
	} else {
		events, err = s.queries.ListEventsByCategory(ctx, category, limit)
	}
	if err != nil {
		return nil, storeErr("listing events", err)
	}
	return events, nil
}
