// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/i18ngen/internal/form"
)

// Run starts the editor full-screen and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, store *form.Store, opts Options) error {
	m := New(store, opts)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
