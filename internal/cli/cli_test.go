// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/i18ngen/internal/config"
)

// isolateHome points the config directory at a temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	config.ResetGlobalForTesting()
	return home
}

// testArgs parses argv and swaps the streams for buffers.
func testArgs(t *testing.T, stdin string, argv ...string) (Command, Args, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cmd, args, err := ParseArgs(argv)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %v", argv, err)
	}
	var stdout, stderr bytes.Buffer
	args.Stdin = strings.NewReader(stdin)
	args.Stdout = &stdout
	args.Stderr = &stderr
	return cmd, args, &stdout, &stderr
}

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"shell"}, CmdShell},
		{[]string{"serve", "--port", "9000"}, CmdServe},
		{[]string{"export", "a=1"}, CmdExport},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
		{[]string{"EXPORT"}, CmdExport},
	}
	for _, tt := range tests {
		got, _, err := ParseArgs(tt.argv)
		if err != nil {
			t.Errorf("ParseArgs(%v) error: %v", tt.argv, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, got, tt.want)
		}
	}
}

func TestParseArgsUnknownCommand(t *testing.T) {
	_, _, err := ParseArgs([]string{"frobnicate"})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
	if !IsUsageError(err) {
		t.Error("unknown command should count as a usage error")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error should name the command: %v", err)
	}
}

func TestParseArgsGlobalFlagsAnywhere(t *testing.T) {
	cmd, args, err := ParseArgs([]string{"export", "a=1", "--output", "out", "-q", "--config=/tmp/c.toml"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd != CmdExport {
		t.Errorf("cmd = %v", cmd)
	}
	if args.OutputDir != "out" || !args.Quiet || args.ConfigPath != "/tmp/c.toml" {
		t.Errorf("globals = %+v", args)
	}
	if got := args.Flags.PositionalFrom(0); len(got) != 1 || got[0] != "a=1" {
		t.Errorf("positionals = %v", got)
	}
}

func TestParseArgsOutputDash(t *testing.T) {
	_, args, err := ParseArgs([]string{"--output", "-", "export"})
	if err != nil {
		t.Fatal(err)
	}
	if args.OutputDir != "-" {
		t.Errorf("OutputDir = %q, want -", args.OutputDir)
	}
}

func TestParseArgsMissingGlobalValue(t *testing.T) {
	_, _, err := ParseArgs([]string{"export", "--config"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
}

func TestParseArgsSubcommand(t *testing.T) {
	_, args, err := ParseArgs([]string{"config", "path"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Subcommand != "path" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
}

func TestCommandString(t *testing.T) {
	if CmdServe.String() != "serve" || CmdTUI.String() != "tui" {
		t.Error("unexpected command names")
	}
	if Command(99).String() != "Command(99)" {
		t.Errorf("unknown = %q", Command(99).String())
	}
}

func TestHandleVersion(t *testing.T) {
	_, args, stdout, _ := testArgs(t, "", "version")
	if err := HandleVersion(args); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), "i18ngen "+Version) {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestHandleHelpPlain(t *testing.T) {
	_, args, stdout, _ := testArgs(t, "", "help")
	if err := HandleHelp(args); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "i18ngen export") {
		t.Errorf("help output = %q", stdout.String())
	}
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp(80)
	if !strings.Contains(out, "i18ngen") {
		t.Errorf("rendered help = %q", out)
	}
}
