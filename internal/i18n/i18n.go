// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the translated interface strings of the portal.
// Entity names and descriptions are localized separately by package locale.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	defaultLang  string
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// DefaultLanguage is used for unknown languages and missing keys.
const DefaultLanguage = "en"

// SupportedLanguages lists the interface languages as BCP 47 tags.
var SupportedLanguages = []string{"en", "vi", "zh-Hant", "zh-Hans"}

// Init loads every supported language from the embedded catalogs.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  DefaultLanguage,
		logger:       logger,
	}

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}
	return nil
}

// T translates key into lang, falling back to English and then to the key
// itself. args are applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	translation, ok := catalog.translations[canonical(lang)][key]
	if !ok {
		translation, ok = catalog.translations[catalog.defaultLang][key]
		if !ok {
			return key
		}
		if catalog.logger != nil && lang != catalog.defaultLang {
			catalog.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// canonical maps a case-insensitive tag onto its SupportedLanguages spelling.
func canonical(lang string) string {
	for _, supported := range SupportedLanguages {
		if strings.EqualFold(supported, lang) {
			return supported
		}
	}
	return ""
}

// IsSupported reports whether lang is a supported interface language.
func IsSupported(lang string) bool {
	return canonical(lang) != ""
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang string) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	return len(catalog.translations[canonical(lang)])
}
