// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// AccessLevel is the visibility tier of a card or factory button.
type AccessLevel string

// Access levels in ascending order of restriction.
const (
	AccessPublic        AccessLevel = "public"
	AccessAuthenticated AccessLevel = "authenticated"
	AccessAdmin         AccessLevel = "admin"
)

// Viewer ranks, compared against AccessLevel.Rank.
const (
	RankAnonymous     = 0
	RankAuthenticated = 1
	RankAdmin         = 2
)

// Rank returns the minimum viewer rank that may see an entity at this level.
// Unknown levels rank as admin so they are never leaked to lower tiers.
func (a AccessLevel) Rank() int {
	switch a {
	case AccessPublic:
		return RankAnonymous
	case AccessAuthenticated:
		return RankAuthenticated
	default:
		return RankAdmin
	}
}

// Valid reports whether a is one of the declared access levels.
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPublic, AccessAuthenticated, AccessAdmin:
		return true
	default:
		return false
	}
}

// VisibleTo reports whether a viewer may see an entity at this level.
func (a AccessLevel) VisibleTo(v Viewer) bool {
	return a.Rank() <= v.Rank()
}

// AccessLevels lists the declared levels for form choices.
var AccessLevels = []AccessLevel{AccessPublic, AccessAuthenticated, AccessAdmin}

// CardStatus is the operational state shown on a card.
type CardStatus string

// Card statuses.
const (
	StatusOnline      CardStatus = "online"
	StatusOffline     CardStatus = "offline"
	StatusMaintenance CardStatus = "maintenance"
)

// Valid reports whether s is a declared card status.
func (s CardStatus) Valid() bool {
	switch s {
	case StatusOnline, StatusOffline, StatusMaintenance:
		return true
	default:
		return false
	}
}

// CardStatuses lists the declared statuses for form choices.
var CardStatuses = []CardStatus{StatusOnline, StatusOffline, StatusMaintenance}
