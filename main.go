// i18ngen - Build translations.json files from key/value rows.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/i18ngen/internal/cli"
	"github.com/jeranaias/i18ngen/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	cmd, args, err := cli.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Error: "+err.Error()))
		if errors.Is(err, cli.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, "Run 'i18ngen help' for usage.")
		}
		return cli.ExitGeneralError
	}

	// Route to appropriate handler
	switch cmd {
	case cli.CmdTUI:
		err = cli.HandleTUI(ctx, args)
	case cli.CmdShell:
		err = cli.HandleShell(ctx, args)
	case cli.CmdServe:
		err = cli.HandleServe(ctx, args)
	case cli.CmdExport:
		err = cli.HandleExport(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	default:
		err = cli.HandleHelp(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitGeneralError
	}
	return cli.ExitSuccess
}
