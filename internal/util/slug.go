// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared by the portal handlers and
// services: client address extraction, anchors, URL and color checks.
package util

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// anchorRegex matches anything that is not a lowercase letter, digit or hyphen.
	anchorRegex     = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Anchor converts a section name into an ASCII fragment identifier.
// Vietnamese and CJK names are transliterated, so "監控平台" and
// "Nền tảng giám sát" both yield readable anchors. Names that transliterate
// to nothing fall back to "section-<id>".
func Anchor(name string, id int64) string {
	result := strings.ToLower(unidecode.Unidecode(name))
	result = strings.Join(strings.Fields(result), "-")
	result = anchorRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if result == "" {
		return "section-" + strconv.FormatInt(id, 10)
	}
	return result
}

// IsValidAnchor reports whether s only holds lowercase letters, digits and
// single inner hyphens.
func IsValidAnchor(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}
