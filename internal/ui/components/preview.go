// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/i18ngen/internal/ui/styles"
	"github.com/jeranaias/i18ngen/internal/util"
)

// =============================================================================
// JSON PREVIEW
// =============================================================================

// Chroma styles used for dark and light backgrounds.
const (
	DarkHighlightStyle  = "monokai"
	LightHighlightStyle = "github"
)

// JSONPreview renders export bytes with syntax highlighting.
type JSONPreview struct {
	Content   []byte
	Title     string
	MaxWidth  int
	MaxHeight int
	Dark      bool
	Profile   termenv.Profile
}

// NewJSONPreview creates a preview for the given export bytes.
func NewJSONPreview(content []byte) JSONPreview {
	return JSONPreview{
		Content:  content,
		Title:    "translations.json",
		MaxWidth: 80,
		Dark:     true,
		Profile:  termenv.ANSI256,
	}
}

// SetMaxWidth sets the maximum width of the preview box.
func (p *JSONPreview) SetMaxWidth(width int) {
	p.MaxWidth = width
}

// SetMaxHeight caps the number of content lines shown. Zero means no cap.
func (p *JSONPreview) SetMaxHeight(height int) {
	p.MaxHeight = height
}

// Render renders the preview box.
func (p JSONPreview) Render() string {
	lines := strings.Split(string(p.Content), "\n")
	hidden := 0
	if p.MaxHeight > 0 && len(lines) > p.MaxHeight {
		hidden = len(lines) - p.MaxHeight
		lines = lines[:p.MaxHeight]
	}

	inner := p.MaxWidth - 4
	if inner < 10 {
		inner = 10
	}
	for i, line := range lines {
		lines[i] = util.TruncateWidth(line, inner)
	}

	style := LightHighlightStyle
	if p.Dark {
		style = DarkHighlightStyle
	}
	body := HighlightWithStyle(strings.Join(lines, "\n"), "json", style, formatterFor(p.Profile))
	if hidden > 0 {
		body += "\n" + lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("... "+strconv.Itoa(hidden)+" more lines")
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(p.MaxWidth)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(p.Title),
		box.Render(body),
	)
}

// HighlightJSON highlights JSON text for a 256-color terminal.
func HighlightJSON(code string) string {
	return HighlightWithStyle(code, "json", DarkHighlightStyle, "terminal256")
}

// HighlightWithStyle applies chroma highlighting. On any failure the code
// is returned unchanged.
func HighlightWithStyle(code, language, styleName, formatterName string) string {
	if formatterName == "noop" {
		return code
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// formatterFor picks the chroma formatter matching a terminal profile.
func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}
