// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/i18ngen/internal/config"
	"github.com/jeranaias/i18ngen/internal/export"
)

// =============================================================================
// SHARED COMMAND PLUMBING
// =============================================================================

// loadConfig loads the config named by --config, or the default location,
// then applies command-line overrides and installs it as the global config.
// The returned path is the file to watch for changes; it may not exist.
func loadConfig(args Args) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	if args.ConfigPath != "" {
		path = args.ConfigPath
		cfg, err = config.LoadFromPath(path)
	} else {
		path = activeConfigPath()
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}

	applyOverrides(cfg, args)
	config.SetGlobal(cfg)
	return cfg, path, nil
}

// applyOverrides copies global flags that shadow config values.
func applyOverrides(cfg *config.Config, args Args) {
	if args.OutputDir != "" && args.OutputDir != "-" {
		cfg.Export.OutputDir = args.OutputDir
	}
}

// activeConfigPath returns the config file Load would read: TOML if it
// exists, else JSON if it exists, else the TOML path.
func activeConfigPath() string {
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	if jsonPath, err := config.ConfigPathJSON(); err == nil {
		if _, err := os.Stat(jsonPath); err == nil {
			return jsonPath
		}
	}
	return tomlPath
}

// exporterFor builds the JSON exporter the config asks for.
func exporterFor(cfg *config.Config) *export.JSONExporter {
	return export.NewJSONExporter(cfg.Export.Indent)
}

// exportOptionsFor converts the export section into delivery options.
func exportOptionsFor(cfg *config.Config) *export.Options {
	return &export.Options{
		OutputDir:       cfg.Export.OutputDir,
		Filename:        cfg.Export.Filename,
		OpenAfterExport: cfg.Export.OpenAfterExport,
	}
}

// =============================================================================
// SIMPLE COMMANDS
// =============================================================================

// HandleVersion handles "i18ngen version".
func HandleVersion(args Args) error {
	PrintVersion(args.Stdout)
	return nil
}

// HandleHelp handles "i18ngen help".
func HandleHelp(args Args) error {
	if IsStdoutTTY() && !args.Quiet {
		fmt.Fprint(args.Stdout, RenderHelp(GetTerminalWidth()))
		return nil
	}
	PrintUsage(args.Stdout)
	return nil
}
