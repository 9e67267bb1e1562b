// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown is the long help shown on a terminal.
const helpMarkdown = `# i18ngen

Create a flat ` + "`translations.json`" + ` from key/value pairs.

## Commands

| Command | Description |
|---|---|
| ` + "`i18ngen`" + ` | Terminal editor (default) |
| ` + "`i18ngen shell`" + ` | Line-mode editor with history |
| ` + "`i18ngen serve`" + ` | Browser form on http://127.0.0.1:8787/ |
| ` + "`i18ngen export k=v ...`" + ` | Write the file without prompting |
| ` + "`i18ngen config show`" + ` | Print the effective configuration |
| ` + "`i18ngen config init`" + ` | Write a default config file |

## Editor keys

- **tab / shift+tab** move between cells
- **ctrl+n** add a row, **ctrl+d** delete the focused row
- **ctrl+s** export, **ctrl+p** toggle the JSON preview
- **esc** quit

## Export rules

1. Rows whose key is blank after trimming are skipped.
2. When a key repeats, the last value wins.
3. Output is one JSON object with no trailing newline.

## Global flags

- ` + "`--config PATH`" + ` config file (TOML, or JSON by extension)
- ` + "`--output DIR`" + ` output directory, ` + "`-`" + ` for stdout with export
- ` + "`--quiet`" + ` only print errors
`

// RenderHelp renders the long help as styled markdown. It falls back to
// the plain usage text if glamour cannot render.
func RenderHelp(width int) string {
	if width <= 0 || width > 100 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return usageText
	}
	out, err := r.Render(helpMarkdown)
	if err != nil || strings.TrimSpace(out) == "" {
		return usageText
	}
	return out
}
