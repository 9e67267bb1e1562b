// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package editor is the full-screen terminal editor for translation entries.

The Model never owns the entries. Every keystroke that changes a cell
becomes a form.Store Update, and the rows are rebuilt from the snapshot
the store publishes. Row widgets are matched to entries by ID so the
cursor stays put while the rows around it change.

# Keys

	tab / shift+tab   next / previous cell
	up / down         previous / next row
	ctrl+n            add a row
	ctrl+d            delete the focused row
	ctrl+s            export to the configured file
	ctrl+p            toggle the JSON preview
	? or F1           toggle full help (? only when the form is empty)
	esc / ctrl+c      quit

# Usage

	store := form.NewStore(1)
	err := editor.Run(ctx, store, editor.Options{
		Theme:       styles.ModeAuto,
		ShowPreview: true,
		Export:      export.DefaultOptions(),
	})
*/
package editor
