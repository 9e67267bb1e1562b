// terminal.go - Terminal detection for i18ngen.
//
// The TUI needs a real terminal on both ends; without one the CLI falls
// back to the line-mode shell. Colors follow NO_COLOR and FORCE_COLOR.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool { return isTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return isTerminal(os.Stdout) }

// CanRunTUI reports whether the full-screen editor can take over the terminal.
func CanRunTUI() bool {
	return IsTTY() && IsStdoutTTY()
}

// Help text wraps to the terminal, within these bounds.
const (
	DefaultTerminalWidth = 80
	MinTerminalWidth     = 40
)

// GetTerminalWidth returns the stdout width, DefaultTerminalWidth if unknown.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		return DefaultTerminalWidth
	case width < MinTerminalWidth:
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var colorState struct {
	once    sync.Once
	enabled bool
}

// ColorsEnabled reports whether colored output should be used. NO_COLOR
// (https://no-color.org/) wins over FORCE_COLOR; otherwise colors follow
// whether stdout is a terminal.
func ColorsEnabled() bool {
	colorState.once.Do(func() {
		colorState.enabled = detectColors(os.Getenv, IsStdoutTTY())
	})
	return colorState.enabled
}

func detectColors(getenv func(string) string, tty bool) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("FORCE_COLOR") != "" {
		return true
	}
	return tty
}

// ForceColorsEnabled overrides color detection. Tests only.
func ForceColorsEnabled(enabled bool) {
	colorState.once = sync.Once{}
	colorState.once.Do(func() {
		colorState.enabled = enabled
	})
}

// GetColorProfile returns Ascii when colors are off, otherwise the
// detected profile.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
