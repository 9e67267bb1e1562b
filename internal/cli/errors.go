// errors.go - Error values shared by the CLI commands.
//
// Handlers always return errors and never print them. main decides how to
// show them.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
)

// Exit codes used by main.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// ErrUnknownCommand is returned for a command or shell verb that does not exist.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage marks errors caused by malformed arguments.
var ErrUsage = errors.New("usage")

// ErrNoEntry is returned when a shell position does not name an entry.
var ErrNoEntry = errors.New("no entry at position")

// unknownCommand wraps ErrUnknownCommand with the offending name.
func unknownCommand(name string) error {
	return fmt.Errorf("%w: %q (run 'i18ngen help')", ErrUnknownCommand, name)
}

// usageError wraps ErrUsage with a message.
func usageError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// IsUsageError reports whether err came from bad arguments.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownCommand)
}
