// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that also persists warnings and
// errors to the portal event log, where the editor shows them to admins.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
)

// EventLogHandler wraps another handler and writes records at or above its
// level to the events table.
type EventLogHandler struct {
	inner       slog.Handler
	queries     *store.Queries
	level       slog.Level
	requestPath func(context.Context) string
	attrs       []slog.Attr
}

// Option configures an EventLogHandler.
type Option func(*EventLogHandler)

// WithLevel sets the minimum level persisted to the event log (default WARN).
func WithLevel(level slog.Level) Option {
	return func(h *EventLogHandler) { h.level = level }
}

// WithRequestPath sets a lookup for the request path carried by the record
// context. The path is stored as the event's request URL.
func WithRequestPath(fn func(context.Context) string) Option {
	return func(h *EventLogHandler) { h.requestPath = fn }
}

// NewEventLogHandler creates an EventLogHandler around inner.
func NewEventLogHandler(inner slog.Handler, db *sql.DB, opts ...Option) *EventLogHandler {
	h := &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(ctx, r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	return &clone
}

func (h *EventLogHandler) writeToEventLog(ctx context.Context, r slog.Record) {
	var requestURL string
	if h.requestPath != nil && ctx != nil {
		requestURL = h.requestPath(ctx)
	}

	// The request context may already be cancelled; the entry is still wanted.
	_, _ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:      slogLevelToEventLevel(r.Level),
		Category:   h.category(r),
		Message:    r.Message,
		UserID:     sql.NullInt64{},
		RequestUrl: requestURL,
		Metadata:   h.metadata(r),
		CreatedAt:  r.Time,
	})
}

func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// category prefers an explicit "category" attribute and otherwise infers one
// from the message.
func (h *EventLogHandler) category(r slog.Record) string {
	var category string
	for _, a := range h.attrs {
		if a.Key == "category" {
			category = a.Value.String()
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "access denied") || strings.Contains(msg, "csrf"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "factory") || strings.Contains(msg, "button"):
		return model.EventCategoryFactory
	case strings.Contains(msg, "section"):
		return model.EventCategorySection
	case strings.Contains(msg, "card") || strings.Contains(msg, "click"):
		return model.EventCategoryCard
	case strings.Contains(msg, "setting") || strings.Contains(msg, "upload") || strings.Contains(msg, "asset"):
		return model.EventCategorySettings
	default:
		return model.EventCategorySystem
	}
}

// metadata renders the handler and record attributes as a JSON object of
// strings.
func (h *EventLogHandler) metadata(r slog.Record) string {
	fields := make(map[string]string, len(h.attrs)+r.NumAttrs())
	add := func(a slog.Attr) bool {
		if a.Key != "category" {
			fields[a.Key] = a.Value.String()
		}
		return true
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(add)

	if len(fields) == 0 {
		return "{}"
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(b)
}
