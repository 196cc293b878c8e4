// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http"
	"strings"
)

// privateIPBlocks contains CIDR ranges for private/reserved IP addresses
// per RFC 1918, RFC 4193, RFC 3927, and RFC 5737.
var privateIPBlocks []*net.IPNet

func init() {
	cidrs := []string{
		"10.0.0.0/8",      // RFC 1918 - private
		"172.16.0.0/12",   // RFC 1918 - private
		"192.168.0.0/16",  // RFC 1918 - private
		"127.0.0.0/8",     // RFC 1122 - loopback
		"169.254.0.0/16",  // RFC 3927 - link-local
		"0.0.0.0/8",       // RFC 1122 - "this" network
		"100.64.0.0/10",   // RFC 6598 - shared address (CGNAT)
		"192.0.2.0/24",    // RFC 5737 - documentation
		"198.51.100.0/24", // RFC 5737 - documentation
		"203.0.113.0/24",  // RFC 5737 - documentation
		"::1/128",         // IPv6 loopback
		"fe80::/10",       // IPv6 link-local
		"fc00::/7",        // RFC 4193 - IPv6 unique local
	}
	for _, cidr := range cidrs {
		_, block, err := net.ParseCIDR(cidr)
		if err == nil {
			privateIPBlocks = append(privateIPBlocks, block)
		}
	}
}

// IsPrivateIP reports whether ip is in a private, loopback or reserved
// range. A nil ip counts as private.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return true
	}
	for _, block := range privateIPBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the address a click or login is attributed to: the
// first X-Forwarded-For entry when present, otherwise RemoteAddr without
// its port. The forwarded value is trusted as-is, so deployments must sit
// behind a proxy that overwrites the header.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
