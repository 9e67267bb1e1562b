// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/i18ngen/internal/ui/styles"
)

// =============================================================================
// FIELD INPUT - single-line key/value cell
// =============================================================================

// FieldCharLimit caps a single key or value. Zero would mean unlimited in
// textinput; the cap only keeps one pasted blob from freezing the view.
const FieldCharLimit = 4096

// Placeholders shown in empty cells.
const (
	KeyPlaceholder   = "key"
	ValuePlaceholder = "translation"
)

// NewFieldInput creates a styled text input for one cell of a row.
func NewFieldInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = FieldCharLimit
	ti.Prompt = ""
	if width > 0 {
		ti.Width = width
	}

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Cyan)

	return ti
}

// NewKeyInput creates the input for a row's key cell.
func NewKeyInput(value string, width int) textinput.Model {
	ti := NewFieldInput(KeyPlaceholder, width)
	ti.SetValue(value)
	return ti
}

// NewValueInput creates the input for a row's value cell.
func NewValueInput(value string, width int) textinput.Model {
	ti := NewFieldInput(ValuePlaceholder, width)
	ti.SetValue(value)
	return ti
}
