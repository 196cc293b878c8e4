// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package locale

// Variant is the translated text of an entity in one alternate locale.
type Variant struct {
	Name        string
	Description string
}

// Text is the full localizable text of an entity.
type Text struct {
	Name               string
	Description        string
	Vietnamese         Variant
	TraditionalChinese Variant
	SimplifiedChinese  Variant
}

// variant returns the translated fields for l, or a zero Variant for Base.
func (t Text) variant(l Locale) Variant {
	switch l {
	case Vietnamese:
		return t.Vietnamese
	case TraditionalChinese:
		return t.TraditionalChinese
	case SimplifiedChinese:
		return t.SimplifiedChinese
	default:
		return Variant{}
	}
}

// DisplayName returns the name for l, falling back to the base name.
func (t Text) DisplayName(l Locale) string {
	if name := t.variant(l).Name; name != "" {
		return name
	}
	return t.Name
}

// DisplayDescription returns the description for l, falling back to the base description.
func (t Text) DisplayDescription(l Locale) string {
	if desc := t.variant(l).Description; desc != "" {
		return desc
	}
	return t.Description
}

// Localizable is implemented by entities with per-locale name and description fields.
type Localizable interface {
	LocaleText() Text
}

// Resolved pairs an entity with its display text for one locale.
type Resolved[T Localizable] struct {
	Item               T
	DisplayName        string
	DisplayDescription string
}

// ResolveOne annotates a single entity with its display text for l.
func ResolveOne[T Localizable](item T, l Locale) Resolved[T] {
	text := item.LocaleText()
	return Resolved[T]{
		Item:               item,
		DisplayName:        text.DisplayName(l),
		DisplayDescription: text.DisplayDescription(l),
	}
}

// ResolveMany annotates items in order. The result always has len(items) elements.
func ResolveMany[T Localizable](items []T, l Locale) []Resolved[T] {
	out := make([]Resolved[T], len(items))
	for i, item := range items {
		out[i] = ResolveOne(item, l)
	}
	return out
}
