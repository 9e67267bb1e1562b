// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the i18ngen editor.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The Theme can also be pinned to a mode from configuration.

# Color System (colors.go)

  - Purple - Focus ring and focused row
  - Cyan - Brand color for the header and key bindings
  - Emerald - Success states and the focused button
  - Amber - Blank keys that export will skip
  - Rose - Errors and the delete control

Every status helper (RenderSuccess, RenderError, ...) prefixes an ASCII
shape so meaning does not depend on color alone.

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	if theme.IsDark {
		// Dark terminal detected or configured
	}
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// Stack key and value cells
	}
*/
package styles
