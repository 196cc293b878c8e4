// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package locale

import "testing"

type entry struct {
	text Text
}

func (e entry) LocaleText() Text { return e.text }

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{"", Base},
		{"en", Base},
		{"fr", Base},
		{"vi", Vietnamese},
		{"VI", Vietnamese},
		{"zh-hant", TraditionalChinese},
		{"zh_hant", TraditionalChinese},
		{"zh-Hant", TraditionalChinese},
		{"zh-TW", TraditionalChinese},
		{"zh-hans", SimplifiedChinese},
		{"zh_hans", SimplifiedChinese},
		{"zh-CN", SimplifiedChinese},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   Locale
		ok     bool
	}{
		{"vi-VN,vi;q=0.9,en;q=0.8", Vietnamese, true},
		{"zh-TW,zh;q=0.9", TraditionalChinese, true},
		{"zh-CN,zh;q=0.9", SimplifiedChinese, true},
		{"en-US,en;q=0.9", Base, true},
		{"", Base, false},
	}

	for _, tt := range tests {
		got, ok := Match(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveOneFallsBackToBase(t *testing.T) {
	e := entry{text: Text{
		Name:        "企業管理系統",
		Description: "企業核心業務管理平台",
		Vietnamese:  Variant{Name: "Hệ thống quản lý"},
	}}

	tests := []struct {
		locale   Locale
		wantName string
		wantDesc string
	}{
		{Base, "企業管理系統", "企業核心業務管理平台"},
		{Vietnamese, "Hệ thống quản lý", "企業核心業務管理平台"},
		{TraditionalChinese, "企業管理系統", "企業核心業務管理平台"},
		{SimplifiedChinese, "企業管理系統", "企業核心業務管理平台"},
		{Locale("fr"), "企業管理系統", "企業核心業務管理平台"},
	}

	for _, tt := range tests {
		r := ResolveOne(e, tt.locale)
		if r.DisplayName != tt.wantName {
			t.Errorf("locale %q: DisplayName = %q, want %q", tt.locale, r.DisplayName, tt.wantName)
		}
		if r.DisplayDescription != tt.wantDesc {
			t.Errorf("locale %q: DisplayDescription = %q, want %q", tt.locale, r.DisplayDescription, tt.wantDesc)
		}
	}
}

// For every supported locale the display name is the translation when
// present and the base name otherwise, so it is never empty for a named entity.
func TestResolveNameProperty(t *testing.T) {
	variants := []Variant{{}, {Name: "translated"}}

	for _, l := range All {
		for _, v := range variants {
			text := Text{Name: "base", Vietnamese: v, TraditionalChinese: v, SimplifiedChinese: v}
			got := ResolveOne(entry{text: text}, l).DisplayName

			want := "base"
			if l.IsAlternate() && v.Name != "" {
				want = v.Name
			}
			if got != want {
				t.Errorf("locale %q variant %+v: got %q, want %q", l, v, got, want)
			}
			if got == "" {
				t.Errorf("locale %q: empty display name", l)
			}
		}
	}
}

func TestResolveManyPreservesOrderAndLength(t *testing.T) {
	items := []entry{
		{text: Text{Name: "b", SimplifiedChinese: Variant{Name: "乙"}}},
		{text: Text{Name: "a"}},
		{text: Text{Name: "c", SimplifiedChinese: Variant{Name: "丙"}}},
	}

	got := ResolveMany(items, SimplifiedChinese)
	if len(got) != len(items) {
		t.Fatalf("len = %d, want %d", len(got), len(items))
	}

	want := []string{"乙", "a", "丙"}
	for i := range want {
		if got[i].DisplayName != want[i] {
			t.Errorf("[%d] DisplayName = %q, want %q", i, got[i].DisplayName, want[i])
		}
		if got[i].Item.text.Name != items[i].text.Name {
			t.Errorf("[%d] item reordered: %q", i, got[i].Item.text.Name)
		}
	}

	if empty := ResolveMany([]entry{}, Vietnamese); len(empty) != 0 {
		t.Errorf("ResolveMany(empty) len = %d", len(empty))
	}
}
