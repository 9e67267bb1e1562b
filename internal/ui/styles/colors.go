// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// Accent colors. Each one has a single job in the editor.
var (
	// Purple marks focus: the focused row number and the header border.
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Cyan is used for titles and the key column.
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Emerald is the export button and successful writes.
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

	// Rose is the delete control and failed writes.
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Amber flags rows whose blank key keeps them out of the file.
	Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
)

// Surfaces and text.
var (
	SurfaceDim  = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
	Overlay     = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
	SelectionBg = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#2E2A45"}

	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
)

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet holds the ASCII tags printed next to colored status
// text, so the meaning survives NO_COLOR and colorblind palettes.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators is the tag set used by every status helper.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// Darker variants used for one-line CLI status output.
var (
	successStrong = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}
	errorStrong   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	warningStrong = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
)

// RenderSuccess renders "[OK] message".
func RenderSuccess(message string) string {
	return renderTagged(StatusIndicators.Success, successStrong, message)
}

// RenderError renders "[X] message".
func RenderError(message string) string {
	return renderTagged(StatusIndicators.Error, errorStrong, message)
}

// RenderWarning renders "[!] message".
func RenderWarning(message string) string {
	return renderTagged(StatusIndicators.Warning, warningStrong, message)
}

func renderTagged(tag string, color lipgloss.AdaptiveColor, message string) string {
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(tag + " " + message)
}
