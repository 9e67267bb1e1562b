// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/ui/components"
	"github.com/jeranaias/i18ngen/internal/ui/styles"
)

// Page text shown in the header.
const (
	Title    = "New i18n File Generator"
	Subtitle = "Easily create localization files"
)

// previewHeight caps the preview pane's content lines.
const previewHeight = 8

// =============================================================================
// VIEW
// =============================================================================

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderRows(),
		m.renderControls(),
	}
	if m.showPreview {
		sections = append(sections, m.renderPreview())
	}
	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		sections = append(sections, components.RenderToastStack(toasts, m.width))
	}
	sections = append(sections, m.statusBar.View(), m.help.View(m.keys))

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(Title)
	subtitle := m.theme.HeaderSubtitle.Render(Subtitle)
	return m.theme.Header.Render(lipgloss.JoinVertical(lipgloss.Left, title, subtitle))
}

func (m Model) renderRows() string {
	if len(m.rows) == 0 {
		return m.theme.EmptyState.Render("No translations yet. Press ctrl+n to add one.")
	}

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lines := make([]string, 0, end-m.offset+2)
	if m.offset > 0 {
		lines = append(lines, m.theme.EmptyState.Render("... "+strconv.Itoa(m.offset)+" above"))
	}
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	if below := len(m.rows) - end; below > 0 {
		lines = append(lines, m.theme.EmptyState.Render("... "+strconv.Itoa(below)+" below"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	focused := i == m.focusRow

	number := m.theme.RowNumber
	if focused {
		number = m.theme.RowNumberFocused
	}

	keyCell, valueCell := m.theme.Cell, m.theme.Cell
	if focused && m.focusField == form.FieldKey {
		keyCell = m.theme.CellFocused
	}
	if focused && m.focusField == form.FieldValue {
		valueCell = m.theme.CellFocused
	}

	parts := []string{
		number.Render(strconv.Itoa(i + 1)),
		keyCell.Render(r.key.View()),
		" ",
		valueCell.Render(r.value.View()),
	}
	if focused {
		parts = append(parts, m.theme.DeleteControl.Render(styles.StatusIndicators.Error))
	}
	if e, ok := m.snapshot.At(i); ok && !e.HasKey() && (e.Value != "" || e.Key != "") {
		parts = append(parts, m.theme.BlankKeyHint.Render("skipped: blank key"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderControls() string {
	add := m.theme.Button.Render("+ Add Translation (ctrl+n)")
	download := m.theme.ButtonFocused.Render("Download JSON (ctrl+s)")
	return lipgloss.JoinHorizontal(lipgloss.Top, add, download)
}

func (m Model) renderPreview() string {
	if m.previewErr != nil {
		return styles.RenderError("preview unavailable: " + m.previewErr.Error())
	}
	p := components.NewJSONPreview(m.preview)
	p.Title = m.exportOpts.Filename
	p.Dark = m.theme.IsDark
	p.Profile = m.theme.ColorProfile
	p.SetMaxWidth(m.width - 2)
	p.SetMaxHeight(previewHeight)
	return p.Render()
}
