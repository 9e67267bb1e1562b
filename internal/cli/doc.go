// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the i18ngen command line.

ParseArgs turns argv into a Command and Args. Each command has a handler
that returns an error and never exits; main prints "Error: ..." and exits
with status 1.

	i18ngen                     terminal editor (shell fallback without a TTY)
	i18ngen shell               line-mode editor (liner)
	i18ngen serve               browser form
	i18ngen export k=v ...      non-interactive export
	i18ngen config show|path|init
	i18ngen version | help

Global flags (--config, --output, --quiet) may appear anywhere on the
command line. Command flags are parsed by ArgParser.
*/
package cli
