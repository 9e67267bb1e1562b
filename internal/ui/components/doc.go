// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the i18ngen terminal UI.

# Components

FieldInput (input.go) - Styled single-line cells for a row's key and value.
JSONPreview (preview.go) - Export bytes with Chroma syntax highlighting.
StatusBar (statusbar.go) - Row, key and blank counters plus the export target.
ToastManager (toast.go) - Auto-dismissing notifications for export results.

# Toasts

Toasts expire on their own. The editor schedules ToastTickCmd while any toast
is active and calls Tick on each ToastTickMsg:

	toasts.AddSuccess("Wrote ./translations.json")
	return m, components.ToastTickCmd()

# Highlighting

HighlightWithStyle never fails. When Chroma cannot lex or format the input
the text is returned unchanged, so a preview always shows the real bytes.
*/
package components
