// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
)

func TestDetectColors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"tty", nil, true, true},
		{"pipe", nil, false, false},
		{"no color wins", map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, true, false},
		{"forced on pipe", map[string]string{"FORCE_COLOR": "1"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			if got := detectColors(getenv, tt.tty); got != tt.want {
				t.Errorf("detectColors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForceColorsEnabled(t *testing.T) {
	defer ForceColorsEnabled(false)

	ForceColorsEnabled(false)
	if ColorsEnabled() {
		t.Error("ColorsEnabled() should be false after ForceColorsEnabled(false)")
	}
	if got := GetColorProfile(); got != termenv.Ascii {
		t.Errorf("GetColorProfile() = %v, want Ascii", got)
	}

	ForceColorsEnabled(true)
	if !ColorsEnabled() {
		t.Error("ColorsEnabled() should be true after ForceColorsEnabled(true)")
	}
}

func TestDebugLogPath(t *testing.T) {
	home := isolateHome(t)

	for _, v := range []string{"", "0", "false"} {
		if got := debugLogPath(v); got != "" {
			t.Errorf("debugLogPath(%q) = %q, want disabled", v, got)
		}
	}

	want := filepath.Join(home, ".i18ngen", "debug.log")
	for _, v := range []string{"1", "true", "yes"} {
		if got := debugLogPath(v); got != want {
			t.Errorf("debugLogPath(%q) = %q, want %q", v, got, want)
		}
	}

	if got := debugLogPath("/tmp/i18ngen-debug.log"); got != "/tmp/i18ngen-debug.log" {
		t.Errorf("debugLogPath(path) = %q", got)
	}
}
