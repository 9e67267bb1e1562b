// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/i18ngen/internal/export"
	"github.com/jeranaias/i18ngen/internal/form"
)

// =============================================================================
// MESSAGES
// =============================================================================

// snapshotMsg delivers a snapshot published by the store.
type snapshotMsg struct {
	snapshot form.Snapshot
	ok       bool
}

// ExportDoneMsg reports the outcome of an export started with ctrl+s.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// COMMANDS
// =============================================================================

// ExportCmd writes the snapshot to disk off the UI goroutine.
func ExportCmd(snap form.Snapshot, exporter export.Exporter, opts *export.Options) tea.Cmd {
	o := *opts
	return func() tea.Msg {
		path, err := export.ExportToFile(snap, exporter, &o)
		if err != nil {
			log.Printf("TUI_EXPORT_FAILED | error=%v", err)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}
