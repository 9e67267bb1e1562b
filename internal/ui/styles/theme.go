// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the editor.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	App            lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// ROW STYLES
	// ==========================================================================

	RowNumber        lipgloss.Style
	RowNumberFocused lipgloss.Style
	Cell             lipgloss.Style
	CellFocused      lipgloss.Style
	BlankKeyHint     lipgloss.Style
	DeleteControl    lipgloss.Style
	EmptyState       lipgloss.Style

	// ==========================================================================
	// CONTROL STYLES
	// ==========================================================================

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// ==========================================================================
	// PREVIEW STYLES
	// ==========================================================================

	Preview      lipgloss.Style
	PreviewTitle lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusDesc lipgloss.Style
	StatusInfo lipgloss.Style
}

// NewTheme creates a new theme for the given mode ("auto", "dark" or
// "light"). Unknown modes behave like "auto".
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	// AdaptiveColor resolves against the global renderer
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2).
		MarginBottom(1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Rows
	t.RowNumber = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(4).
		Align(lipgloss.Right).
		PaddingRight(1)

	t.RowNumberFocused = t.RowNumber.
		Foreground(Purple).
		Bold(true)

	// Cells stay one line tall so a row is one terminal line
	t.Cell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.CellFocused = t.Cell.
		Background(SelectionBg).
		Underline(true)

	t.BlankKeyHint = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.DeleteControl = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Padding(0, 1)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		PaddingLeft(4)

	// Controls
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ButtonFocused = t.Button.
		Foreground(TextInverse).
		Background(Emerald).
		BorderForeground(Emerald).
		Bold(true)

	// Preview
	t.Preview = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PreviewTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.StatusDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// String returns the layout mode name.
func (m LayoutMode) String() string {
	switch m {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	case LayoutWide:
		return "wide"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}
