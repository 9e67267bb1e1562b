// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the editor's keyboard bindings.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	AddRow    key.Binding
	DeleteRow key.Binding
	Export    key.Binding
	Preview   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "prev row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next row"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "add row"),
		),
		DeleteRow: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete row"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "export"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "preview"),
		),
		// "?" is also a character people type into values, so it only
		// toggles help while no cell has focus. F1 always works.
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddRow, k.DeleteRow, k.Export, k.Preview, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for the expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.NextField, k.PrevField, k.Up, k.Down},
		// Rows
		{k.AddRow, k.DeleteRow},
		// Output
		{k.Export, k.Preview},
		{k.Help, k.Quit},
	}
}
