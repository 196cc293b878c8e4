// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer is shared across requests; bluemonday policies are safe
// for concurrent use once built.
var htmlSanitizer = bluemonday.UGCPolicy()

var (
	styleCloseTag  = regexp.MustCompile(`(?i)</\s*style`)
	scriptCloseTag = regexp.MustCompile(`(?i)</\s*script`)
)

// RenderMarkdown converts an admin-authored message to sanitized HTML.
func RenderMarkdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(htmlSanitizer.Sanitize(template.HTMLEscapeString(src)))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}

// SanitizeCustomCSS returns css safe to place inside a <style> element.
func SanitizeCustomCSS(css string) template.CSS {
	return template.CSS(styleCloseTag.ReplaceAllString(css, `<\/style`))
}

// SanitizeCustomJS returns js safe to place inside a <script> element.
func SanitizeCustomJS(js string) template.JS {
	return template.JS(scriptCloseTag.ReplaceAllString(js, `<\/script`))
}
