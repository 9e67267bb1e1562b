// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration management command.
//
// Usage:
//
//	i18ngen config show            Print the effective configuration (TOML)
//	i18ngen config show --json     Same, as JSON
//	i18ngen config path            Print the config file location
//	i18ngen config init [--force]  Write the defaults to the config file
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/i18ngen/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) error {
	switch strings.ToLower(args.Subcommand) {
	case "", "show":
		return handleConfigShow(args)
	case "path":
		return handleConfigPath(args)
	case "init":
		return handleConfigInit(args)
	default:
		return usageError("unknown config subcommand %q (want show, path or init)", args.Subcommand)
	}
}

func handleConfigShow(args Args) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}

	if args.Flags.BoolFlag("json") {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Fprintln(args.Stdout, string(data))
		return nil
	}

	fmt.Fprint(args.Stdout, cfg.String())
	return nil
}

func handleConfigPath(args Args) error {
	path := args.ConfigPath
	if path == "" {
		path = activeConfigPath()
	}
	if path == "" {
		return fmt.Errorf("could not determine config path")
	}

	if args.Quiet {
		fmt.Fprintln(args.Stdout, path)
		return nil
	}
	state := "not created yet"
	if _, err := os.Stat(path); err == nil {
		state = "exists"
	}
	fmt.Fprintln(args.Stdout, RenderLabel("Config file:", path))
	fmt.Fprintln(args.Stdout, RenderLabel("Status:", state))
	return nil
}

func handleConfigInit(args Args) error {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !args.Flags.BoolFlag("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	var err error
	switch {
	case args.ConfigPath == "":
		path, err = config.Save(cfg)
	case strings.EqualFold(filepath.Ext(path), ".json"):
		err = config.SaveJSON(cfg, path)
	default:
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Fprintln(args.Stdout, "Wrote default config to "+path)
	}
	return nil
}
