// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing for i18ngen.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdShell
	CmdServe
	CmdExport
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdShell:
		return "shell"
	case CmdServe:
		return "serve"
	case CmdExport:
		return "export"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config
	OutputDir  string // --output; "-" means stdout for export
	Quiet      bool   // --quiet

	// Command-specific
	Subcommand string
	Flags      *ArgParser

	// Streams; Parse fills them with the process's own
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// boolFlags lists command flags that never take a value.
var boolFlags = []string{"stdin", "json", "force", "open"}

const usageText = `i18ngen - create translations.json files from key/value pairs

Usage:
  i18ngen                        Start the terminal editor (default)
  i18ngen tui                    Same
  i18ngen shell                  Line-mode editor with history
  i18ngen serve [--port N] [--host H]
                                 Serve the form at http://host:port/
  i18ngen export [key=value ...] [--stdin] [--indent N] [--filename NAME]
                                 Write translations.json without prompting
  i18ngen config [show|path|init] [--force]
  i18ngen version
  i18ngen help

Global flags:
  --config PATH    Use this config file instead of ~/.i18ngen/config.toml
  --output DIR     Directory for translations.json ("-" for stdout with export)
  -q, --quiet      Only print errors

Export rules:
  Rows whose key is blank after trimming are skipped.
  When a key repeats, the last value wins.

Examples:
  i18ngen export hello=Hello bye=Bye
  printf 'hello=Hello\nbye=Bye\n' | i18ngen export --stdin --output -
  i18ngen serve --port 9000
`

// PrintUsage prints the plain usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "i18ngen %s (commit %s, built %s, %s)\n", Version, GitCommit, BuildDate, runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name). Unknown commands
// return ErrUnknownCommand.
func ParseArgs(argv []string) (Command, Args, error) {
	remaining, args, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, args, err
	}
	args.Stdin = os.Stdin
	args.Stdout = os.Stdout
	args.Stderr = os.Stderr

	if len(remaining) == 0 {
		args.Flags = NewArgParser(nil, boolFlags...)
		return CmdTUI, args, nil
	}

	name := strings.ToLower(remaining[0])
	args.Flags = NewArgParser(remaining[1:], boolFlags...)
	args.Subcommand = args.Flags.Subcommand()

	switch name {
	case "tui", "edit":
		return CmdTUI, args, nil
	case "shell", "sh":
		return CmdShell, args, nil
	case "serve", "server", "web":
		return CmdServe, args, nil
	case "export", "x":
		return CmdExport, args, nil
	case "config", "cfg":
		return CmdConfig, args, nil
	case "version", "-v", "--version":
		return CmdVersion, args, nil
	case "help", "-h", "--help":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, unknownCommand(remaining[0])
	}
}

// parseGlobalFlags pulls global flags out of args wherever they appear.
func parseGlobalFlags(argv []string) ([]string, Args, error) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "--" {
			remaining = append(remaining, argv[i:]...)
			break
		}

		switch {
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "--config" || arg == "--output" || arg == "-o":
			if i+1 >= len(argv) {
				return nil, args, usageError("%s needs a value", arg)
			}
			i++
			if arg == "--config" {
				args.ConfigPath = argv[i]
			} else {
				args.OutputDir = argv[i]
			}
		case strings.HasPrefix(arg, "--config="):
			args.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--output="):
			args.OutputDir = strings.TrimPrefix(arg, "--output=")
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, args, nil
}
