// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case snapshotMsg:
		if msg.ok {
			m.applySnapshot(msg.snapshot)
		}
		if m.quitting {
			return m, nil
		}
		return m, tea.Batch(m.focusCmd(), m.feed.wait())

	case ExportDoneMsg:
		if msg.Err != nil {
			m.toasts.AddError("Export failed: " + msg.Err.Error())
		} else {
			m.toasts.AddSuccess("Wrote " + msg.Path)
		}
		return m, m.startToastTicks()

	case components.ToastTickMsg:
		if m.toasts.Tick(msg.Time) > 0 {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input-internal messages
	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches editor shortcuts and forwards everything else to
// the focused cell.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help) && (msg.String() != "?" || len(m.rows) == 0):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.AddRow):
		added := m.store.Add()
		m.syncFromStore()
		for i, r := range m.rows {
			if r.id == added.ID {
				m.setFocusRow(i)
				break
			}
		}
		m.focusField = form.FieldKey
		return m, m.focusCmd()

	case key.Matches(msg, m.keys.DeleteRow):
		if len(m.rows) == 0 {
			return m, nil
		}
		m.store.Remove(m.focusRow)
		m.syncFromStore()
		return m, m.focusCmd()

	case key.Matches(msg, m.keys.Export):
		return m, ExportCmd(m.snapshot, m.exporter, m.exportOpts)

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		m.scrollToFocus()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.moveField(1)
		return m, m.focusCmd()

	case key.Matches(msg, m.keys.PrevField):
		m.moveField(-1)
		return m, m.focusCmd()

	case key.Matches(msg, m.keys.Up):
		m.setFocusRow(m.focusRow - 1)
		return m, m.focusCmd()

	case key.Matches(msg, m.keys.Down):
		m.setFocusRow(m.focusRow + 1)
		return m, m.focusCmd()
	}

	return m.editFocused(msg)
}

// editFocused sends a key to the focused cell and records any change in
// the store.
func (m Model) editFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.focusedInput()
	if in == nil {
		return m, nil
	}

	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if after := in.Value(); after != before {
		m.store.Update(m.focusRow, m.focusField, after)
		m.syncFromStore()
	}
	return m, cmd
}

// moveField steps through cells in reading order, wrapping at both ends.
func (m *Model) moveField(delta int) {
	if len(m.rows) == 0 {
		return
	}
	cell := m.focusRow * 2
	if m.focusField == form.FieldValue {
		cell++
	}
	total := len(m.rows) * 2
	cell = ((cell+delta)%total + total) % total

	m.focusField = form.FieldKey
	if cell%2 == 1 {
		m.focusField = form.FieldValue
	}
	m.setFocusRow(cell / 2)
}

// startToastTicks schedules toast expiry unless a tick loop is running.
func (m *Model) startToastTicks() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}
