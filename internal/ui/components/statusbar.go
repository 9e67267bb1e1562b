// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/i18ngen/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar is the bottom line of the editor: row counts and export target.
type StatusBar struct {
	Rows       int    // entries in the form
	Exported   int    // distinct keys that will be written
	Blank      int    // rows skipped for a blank key
	OutputPath string // where ctrl+s writes
	Width      int
	theme      *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetCounts updates the row counters.
func (s *StatusBar) SetCounts(rows, exported, blank int) {
	s.Rows = rows
	s.Exported = exported
	s.Blank = blank
}

// SetOutputPath sets the export target shown on the right.
func (s *StatusBar) SetOutputPath(path string) {
	s.OutputPath = path
}

// View renders the status bar for the current width.
func (s *StatusBar) View() string {
	var content string
	switch {
	case s.Width < 60:
		content = s.viewNarrow()
	case s.Width < 100:
		content = s.viewMedium()
	default:
		content = s.viewWide()
	}

	style := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary)
	if s.theme != nil {
		style = s.theme.StatusBar
	}
	if s.Width > 0 {
		style = style.Width(s.Width).MaxWidth(s.Width)
	}
	return style.Render(content)
}

// viewNarrow: "3 rows 2 keys"
func (s *StatusBar) viewNarrow() string {
	return plural(s.Rows, "row") + " " + plural(s.Exported, "key")
}

// viewMedium: "3 rows | 2 keys | 1 blank"
func (s *StatusBar) viewMedium() string {
	parts := []string{plural(s.Rows, "row"), plural(s.Exported, "key")}
	if s.Blank > 0 {
		parts = append(parts, s.renderBlank())
	}
	return strings.Join(parts, s.separator())
}

// viewWide adds the export target.
func (s *StatusBar) viewWide() string {
	left := s.viewMedium()
	if s.OutputPath == "" {
		return left
	}
	return left + s.separator() + "-> " + s.OutputPath
}

func (s *StatusBar) renderBlank() string {
	return lipgloss.NewStyle().
		Foreground(styles.Amber).
		Render(styles.StatusIndicators.Warning + " " + strconv.Itoa(s.Blank) + " blank")
}

func (s *StatusBar) separator() string {
	return lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")
}

// plural formats a count with a noun, adding "s" when needed.
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
