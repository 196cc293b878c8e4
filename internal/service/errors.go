// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/portal-go/internal/model"
)

// Error classes returned by the services. Callers classify with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrStore      = errors.New("store failure")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StoreError wraps a database failure. Its detail is for logs, not users.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// lookupErr maps a single-row lookup failure onto the service taxonomy.
func lookupErr(entity string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return storeErr("loading "+entity, err)
}

// requireAdmin rejects non-admin actors before any store access.
func requireAdmin(v model.Viewer) error {
	if v.Rank() < model.RankAdmin {
		return fmt.Errorf("%w: administrator access required", ErrPermission)
	}
	return nil
}
