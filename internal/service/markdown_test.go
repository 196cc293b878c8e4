// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := string(RenderMarkdown("**Back soon**\n\n<script>alert(1)</script>\n\nSee [docs](https://docs.example.com)."))
	assert.Contains(t, html, "<strong>Back soon</strong>")
	assert.Contains(t, html, `href="https://docs.example.com"`)
	assert.NotContains(t, html, "<script")

	assert.Empty(t, string(RenderMarkdown("")))
}

func TestSanitizeCustomCSS(t *testing.T) {
	css := string(SanitizeCustomCSS("body{color:red}</STYLE><script>alert(1)</script>"))
	assert.False(t, strings.Contains(strings.ToLower(css), "</style"))
	assert.Contains(t, css, "body{color:red}")
}

func TestSanitizeCustomJS(t *testing.T) {
	js := string(SanitizeCustomJS(`console.log("</script><img src=x>")`))
	assert.NotContains(t, strings.ToLower(js), "</script")
}
