// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/testutil"
)

type fakeCountries map[string]string

func (f fakeCountries) Country(ip string) string { return f[ip] }

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestRecordClickAppends(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	_, user := viewers(t, db)
	section := testutil.CreateSection(t, db, "Systems", 0)
	card := testutil.CreateCard(t, db, section.ID, "ERP")
	ctx := context.Background()

	svc := NewAnalyticsService(db, fakeCountries{"203.0.113.7": "VN"})
	require.NoError(t, svc.RecordClick(ctx, card.ID, model.Anonymous, "203.0.113.7", chromeMac))
	require.NoError(t, svc.RecordClick(ctx, card.ID, user, "10.0.0.2", ""))
	require.NoError(t, svc.RecordClick(ctx, card.ID, model.Anonymous, "203.0.113.7", chromeMac))

	counts, err := svc.ClickCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[card.ID])

	recent, err := svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	var anonymous, attributed int
	for _, click := range recent {
		if click.UserID.Valid {
			attributed++
			assert.Equal(t, user.ID(), click.UserID.Int64)
			assert.Equal(t, "10.0.0.2", click.IpAddress)
			assert.Empty(t, click.CountryCode)
		} else {
			anonymous++
			assert.Equal(t, "VN", click.CountryCode)
			assert.Equal(t, "Chrome", click.Browser)
			assert.Equal(t, "desktop", click.DeviceType)
		}
	}
	assert.Equal(t, 2, anonymous)
	assert.Equal(t, 1, attributed)
}

func TestRecordClickUnknownCard(t *testing.T) {
	db := testutil.TestMemoryDB(t)

	err := NewAnalyticsService(db, nil).RecordClick(context.Background(), 42, model.Anonymous, "10.0.0.1", "")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countRows(t, db, "portal_analytics"))
}

func TestRecordClickTruncatesUserAgent(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	section := testutil.CreateSection(t, db, "Systems", 0)
	card := testutil.CreateCard(t, db, section.ID, "ERP")
	svc := NewAnalyticsService(db, nil)
	ctx := context.Background()

	require.NoError(t, svc.RecordClick(ctx, card.ID, model.Anonymous, "10.0.0.1", strings.Repeat("x", 2000)))

	recent, err := svc.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Len(t, recent[0].UserAgent, maxUserAgentLength)

	// "é" is two bytes, so the cap falls inside a rune.
	require.NoError(t, svc.RecordClick(ctx, card.ID, model.Anonymous, "10.0.0.1", "a"+strings.Repeat("é", 300)))

	recent, err = svc.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, utf8.ValidString(recent[0].UserAgent))
	assert.Len(t, recent[0].UserAgent, maxUserAgentLength-1)
}

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc"},
		{"aé", 2, "a"},
		{"aé", 3, "aé"},
		{"監控", 4, "監"},
		{"監控", 2, ""},
	}
	for _, tt := range tests {
		if got := truncateUTF8(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateUTF8(%q, %d) = %q; want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestClickCounts(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	section := testutil.CreateSection(t, db, "Systems", 0)
	a := testutil.CreateCard(t, db, section.ID, "A")
	b := testutil.CreateCard(t, db, section.ID, "B")
	c := testutil.CreateCard(t, db, section.ID, "C")
	svc := NewAnalyticsService(db, nil)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, svc.RecordClick(ctx, a.ID, model.Anonymous, "10.0.0.1", ""))
	}
	require.NoError(t, svc.RecordClick(ctx, b.ID, model.Anonymous, "10.0.0.1", ""))

	counts, err := svc.ClickCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[a.ID])
	assert.Equal(t, int64(1), counts[b.ID])
	_, ok := counts[c.ID]
	assert.False(t, ok)
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name   string
		ua     string
		device string
	}{
		{"desktop chrome", chromeMac, "desktop"},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "mobile"},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "tablet"},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "bot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.device, ParseUserAgent(tt.ua).DeviceType)
		})
	}

	assert.Equal(t, ClientInfo{}, ParseUserAgent(""))
}
