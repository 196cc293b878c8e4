// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"time"
	"unicode/utf8"

	"github.com/mileusna/useragent"

	"github.com/olegiv/portal-go/internal/model"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/util"
)

// maxUserAgentLength caps the stored user agent.
const maxUserAgentLength = 512

// CountryResolver maps a client IP to an ISO country code.
type CountryResolver interface {
	Country(ip string) string
}

// AnalyticsService records card clicks. Click rows are append-only.
type AnalyticsService struct {
	queries *store.Queries
	geo     CountryResolver
	now     func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. geo may be nil.
func NewAnalyticsService(db *sql.DB, geo CountryResolver) *AnalyticsService {
	return &AnalyticsService{queries: store.New(db), geo: geo, now: time.Now}
}

// ClientInfo is the parsed form of a user agent string.
type ClientInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent extracts browser, OS and device class from a user agent.
func ParseUserAgent(s string) ClientInfo {
	if s == "" {
		return ClientInfo{}
	}
	ua := useragent.Parse(s)

	info := ClientInfo{Browser: ua.Name, OS: ua.OS}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}

	switch {
	case ua.Bot:
		info.DeviceType = "bot"
	case ua.Tablet:
		info.DeviceType = "tablet"
	case ua.Mobile:
		info.DeviceType = "mobile"
	default:
		info.DeviceType = "desktop"
	}
	return info
}

// RecordClick appends one click for cardID. Anonymous viewers are stored
// with a NULL user. A missing card is a not-found error.
func (s *AnalyticsService) RecordClick(ctx context.Context, cardID int64, viewer model.Viewer, clientIP, userAgent string) error {
	if _, err := s.queries.GetSystemCard(ctx, cardID); err != nil {
		return lookupErr("card", cardID, err)
	}

	userAgent = truncateUTF8(userAgent, maxUserAgentLength)
	info := ParseUserAgent(userAgent)

	var country string
	if s.geo != nil {
		country = s.geo.Country(clientIP)
	}

	var userID sql.NullInt64
	if viewer.IsAuthenticated {
		userID = util.NullInt64FromPtr(viewer.UserID)
	}

	_, err := s.queries.CreatePortalAnalytic(ctx, store.CreatePortalAnalyticParams{
		CardID:      cardID,
		UserID:      userID,
		IpAddress:   clientIP,
		UserAgent:   userAgent,
		Browser:     info.Browser,
		Os:          info.OS,
		DeviceType:  info.DeviceType,
		CountryCode: country,
		ClickedAt:   s.now(),
	})
	if err != nil {
		return storeErr("recording click", err)
	}
	return nil
}

// ClickCounts returns click totals keyed by card id. Cards without clicks
// are absent.
func (s *AnalyticsService) ClickCounts(ctx context.Context) (map[int64]int64, error) {
	rows, err := s.queries.ListClickCountsByCard(ctx)
	if err != nil {
		return nil, storeErr("counting clicks", err)
	}
	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.CardID] = r.Clicks
	}
	return counts, nil
}

// ListRecent returns the newest clicks first.
func (s *AnalyticsService) ListRecent(ctx context.Context, limit int64) ([]store.PortalAnalytic, error) {
	if limit <= 0 {
		limit = 50
	}
	clicks, err := s.queries.ListRecentPortalAnalytics(ctx, limit)
	if err != nil {
		return nil, storeErr("listing clicks", err)
	}
	return clicks, nil
}

// truncateUTF8 shortens s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
