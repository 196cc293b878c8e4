// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the portal's domain vocabulary: user roles,
// access levels, card statuses, viewers and event log constants.
package model

// User roles. Admin is the staff role allowed to edit the portal.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole reports whether role is a known user role.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
