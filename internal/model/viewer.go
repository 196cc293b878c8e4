// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Viewer is the identity a request is served for.
// The zero value is an anonymous viewer.
type Viewer struct {
	UserID          *int64
	Name            string
	IsAuthenticated bool
	IsAdmin         bool
}

// Anonymous is the viewer used when no session user is present.
var Anonymous = Viewer{}

// NewViewer builds an authenticated viewer for a user with the given role.
func NewViewer(userID int64, name, role string) Viewer {
	id := userID
	return Viewer{
		UserID:          &id,
		Name:            name,
		IsAuthenticated: true,
		IsAdmin:         role == RoleAdmin,
	}
}

// Rank returns the viewer's position in the access hierarchy.
// An admin flag without authentication degrades to anonymous.
func (v Viewer) Rank() int {
	switch {
	case v.IsAuthenticated && v.IsAdmin:
		return RankAdmin
	case v.IsAuthenticated:
		return RankAuthenticated
	default:
		return RankAnonymous
	}
}

// ID returns the user id or 0 for anonymous viewers.
func (v Viewer) ID() int64 {
	if v.UserID == nil {
		return 0
	}
	return *v.UserID
}
