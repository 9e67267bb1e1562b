// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestAdaptiveColorsDefined(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"Purple":      Purple,
		"Cyan":        Cyan,
		"Emerald":     Emerald,
		"Rose":        Rose,
		"Amber":       Amber,
		"SurfaceDim":  SurfaceDim,
		"Overlay":     Overlay,
		"TextPrimary": TextPrimary,
		"TextMuted":   TextMuted,
		"SelectionBg": SelectionBg,
	}

	for name, c := range colors {
		if c.Light == "" || c.Dark == "" {
			t.Errorf("%s should define both light and dark variants", name)
		}
	}
}

func TestStatusIndicatorsUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for _, ind := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
	} {
		if ind == "" {
			t.Error("status indicator should not be empty")
		}
		if seen[ind] {
			t.Errorf("duplicate status indicator %q", ind)
		}
		seen[ind] = true
	}
}

func TestRenderHelpers(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(string) string
		indicator string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("wrote translations.json")
			if !strings.Contains(got, tt.indicator) {
				t.Errorf("output should contain indicator %q, got %q", tt.indicator, got)
			}
			if !strings.Contains(got, "wrote translations.json") {
				t.Errorf("output should contain message, got %q", got)
			}
		})
	}
}
