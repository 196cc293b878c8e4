// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale resolves the display text of portal entities for a
// requested locale, falling back to the base-language fields.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies a display language for entity text.
type Locale string

// Supported locales. Base selects the untranslated name and description.
const (
	Base               Locale = "base"
	Vietnamese         Locale = "vi"
	TraditionalChinese Locale = "zh_hant"
	SimplifiedChinese  Locale = "zh_hans"
)

// All lists every supported locale, Base first.
var All = []Locale{Base, Vietnamese, TraditionalChinese, SimplifiedChinese}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// IsAlternate reports whether l selects a translated field set.
func (l Locale) IsAlternate() bool {
	switch l {
	case Vietnamese, TraditionalChinese, SimplifiedChinese:
		return true
	default:
		return false
	}
}

// Tag returns the BCP 47 tag used for HTML lang attributes.
func (l Locale) Tag() string {
	switch l {
	case Vietnamese:
		return "vi"
	case TraditionalChinese:
		return "zh-Hant"
	case SimplifiedChinese:
		return "zh-Hans"
	default:
		return "en"
	}
}

// Parse maps a user-supplied language code onto a supported locale.
// Unknown or empty codes yield Base.
func Parse(s string) Locale {
	code := strings.ToLower(strings.TrimSpace(s))
	code = strings.ReplaceAll(code, "_", "-")

	switch code {
	case "vi", "vi-vn":
		return Vietnamese
	case "zh-hant", "zh-tw", "zh-hk", "zh-mo":
		return TraditionalChinese
	case "zh-hans", "zh-cn", "zh-sg", "zh":
		return SimplifiedChinese
	default:
		return Base
	}
}

// IsSupported reports whether s names one of the supported locales exactly.
func IsSupported(s string) bool {
	for _, l := range All {
		if string(l) == s {
			return true
		}
	}
	return false
}

var (
	matcherTags = []language.Tag{
		language.English,
		language.Vietnamese,
		language.TraditionalChinese,
		language.SimplifiedChinese,
	}
	matcherLocales = []Locale{Base, Vietnamese, TraditionalChinese, SimplifiedChinese}
	matcher        = language.NewMatcher(matcherTags)
)

// Match picks the best supported locale for an Accept-Language header value.
// It returns Base and false when nothing matches with at least low confidence.
func Match(acceptLanguage string) (Locale, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Base, false
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(matcherLocales) {
		return Base, false
	}
	return matcherLocales[idx], true
}
