// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for i18ngen.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Browser form server settings
//   - ExportConfig: Output directory, file name and indent
//   - ValidateErrors: Every problem found by Validate
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (I18NGEN_*)
//   - ~/.i18ngen/config.toml
//   - ~/.i18ngen/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reload on change:
//
//	err := config.Watch(ctx, path, func(cfg *config.Config) { config.SetGlobal(cfg) })
package config
