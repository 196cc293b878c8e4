// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestName(t *testing.T) {
	if got := (Info{}).Name(); got != "dev" {
		t.Errorf("zero value Name() = %q, want dev", got)
	}
	if got := (Info{Version: "v1.2.3"}).Name(); got != "v1.2.3" {
		t.Errorf("Name() = %q, want v1.2.3", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "injected",
			info: Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"},
			want: "portal v1.0.0 (commit abc1234, built 2025-01-30T12:00:00Z)",
		},
		{
			name: "zero value",
			info: Info{},
			want: "portal dev (commit unknown, built unknown)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
