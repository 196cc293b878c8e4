// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves click origins to ISO country codes using a
// MaxMind GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/maxminddb-golang"

	"github.com/olegiv/portal-go/internal/util"
)

// CodeLocal is reported for private and loopback addresses.
const CodeLocal = "LOCAL"

// Resolver maps IP addresses to countries. A Resolver without a database
// still classifies local addresses and returns "" for everything else.
type Resolver struct {
	mu sync.RWMutex
	db *maxminddb.Reader
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path yields a Resolver with
// lookups disabled.
func Open(path string) (*Resolver, error) {
	r := &Resolver{}
	if path == "" {
		return r, nil
	}

	db, err := maxminddb.Open(path)
	if err != nil {
		return r, fmt.Errorf("opening GeoIP database %s: %w", path, err)
	}
	r.db = db
	return r, nil
}

// Country returns the two-letter ISO code for ip, CodeLocal for private
// addresses, or "" when unknown.
func (r *Resolver) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if util.IsPrivateIP(parsed) {
		return CodeLocal
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return ""
	}

	var record countryRecord
	if err := r.db.Lookup(parsed, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// Enabled reports whether a database is loaded.
func (r *Resolver) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db != nil
}

// Close releases the database.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

var countryNames = map[string]string{
	CodeLocal: "Local Network",
	"CN":      "China",
	"HK":      "Hong Kong",
	"MO":      "Macao",
	"TW":      "Taiwan",
	"VN":      "Vietnam",
	"SG":      "Singapore",
	"JP":      "Japan",
	"KR":      "South Korea",
	"TH":      "Thailand",
	"MY":      "Malaysia",
	"ID":      "Indonesia",
	"PH":      "Philippines",
	"IN":      "India",
	"US":      "United States",
	"DE":      "Germany",
	"GB":      "United Kingdom",
}

// CountryName returns a display name for code, falling back to the code.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return code
}
