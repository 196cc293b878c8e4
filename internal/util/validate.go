// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"regexp"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsLocalPath reports whether s is a same-site absolute path, safe to use
// as a post-login redirect target.
func IsLocalPath(s string) bool {
	if s == "" || s[0] != '/' {
		return false
	}
	// "//host" and "/\host" are treated as network paths by browsers.
	if len(s) > 1 && (s[1] == '/' || s[1] == '\\') {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "" && u.Host == ""
}
