// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/i18ngen/internal/config"
	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/ui/editor"
)

// DebugEnv enables TUI logging to a file. Set it to a path, or to any
// other non-empty value for ~/.i18ngen/debug.log.
const DebugEnv = "I18NGEN_DEBUG"

// HandleTUI starts the full-screen editor. Without a terminal on stdin and
// stdout it falls back to the line-mode shell.
func HandleTUI(ctx context.Context, args Args) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	store := form.NewStore(cfg.Form.InitialRows)

	if !CanRunTUI() {
		if !args.Quiet {
			fmt.Fprintln(args.Stderr, "No terminal detected; starting the line-mode shell.")
		}
		return runShell(ctx, args, cfg, store)
	}

	closeLog, err := setupTUILogging()
	if err != nil {
		return err
	}
	defer closeLog()

	return editor.Run(ctx, store, editor.Options{
		Theme:       cfg.UI.Theme,
		ShowPreview: cfg.UI.ShowPreview,
		Exporter:    exporterFor(cfg),
		Export:      exportOptionsFor(cfg),
	})
}

// setupTUILogging keeps log output off the screen while the editor runs.
// The returned function restores the previous destination.
func setupTUILogging() (func(), error) {
	prev := log.Writer()
	restore := func() { log.SetOutput(prev) }

	path := debugLogPath(os.Getenv(DebugEnv))
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create debug log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "i18ngen")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() {
		restore()
		f.Close()
	}, nil
}

// debugLogPath maps the I18NGEN_DEBUG value to a log file path. Empty,
// "0" and "false" disable logging.
func debugLogPath(value string) string {
	switch value {
	case "", "0", "false":
		return ""
	case "1", "true", "yes":
		dir, err := config.ConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		return filepath.Join(dir, "debug.log")
	default:
		return value
	}
}
