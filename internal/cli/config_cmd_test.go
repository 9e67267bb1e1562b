// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/i18ngen/internal/config"
)

func TestHandleConfigInitThenShow(t *testing.T) {
	home := isolateHome(t)

	_, args, stdout, _ := testArgs(t, "", "config", "init")
	if err := HandleConfig(args); err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(home, ".i18ngen", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(stdout.String(), path) {
		t.Errorf("init output = %q", stdout.String())
	}

	// A second init refuses to overwrite
	_, args, _, _ = testArgs(t, "", "config", "init")
	if err := HandleConfig(args); err == nil {
		t.Error("second init should fail without --force")
	}
	_, args, _, _ = testArgs(t, "", "config", "init", "--force")
	if err := HandleConfig(args); err != nil {
		t.Errorf("init --force: %v", err)
	}

	_, args, stdout, _ = testArgs(t, "", "config", "show")
	if err := HandleConfig(args); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(stdout.String(), "[server]") || !strings.Contains(stdout.String(), "translations.json") {
		t.Errorf("show output = %q", stdout.String())
	}
}

func TestHandleConfigShowJSON(t *testing.T) {
	isolateHome(t)

	_, args, stdout, _ := testArgs(t, "", "config", "show", "--json", "--output", "/tmp/out")
	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	if err := json.Unmarshal(stdout.Bytes(), &cfg); err != nil {
		t.Fatalf("show --json is not JSON: %v\n%s", err, stdout.String())
	}
	if cfg.Export.OutputDir != "/tmp/out" {
		t.Errorf("--output override not applied: %q", cfg.Export.OutputDir)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestHandleConfigPath(t *testing.T) {
	home := isolateHome(t)

	_, args, stdout, _ := testArgs(t, "", "-q", "config", "path")
	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, ".i18ngen", "config.toml")
	if strings.TrimSpace(stdout.String()) != want {
		t.Errorf("path = %q, want %q", stdout.String(), want)
	}

	_, args, stdout, _ = testArgs(t, "", "config", "path")
	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "not created yet") {
		t.Errorf("path output = %q", stdout.String())
	}
}

func TestHandleConfigInitJSONPath(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "cfg.json")

	_, args, _, _ := testArgs(t, "", "config", "init", "--config", path, "-q")
	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load written JSON: %v", err)
	}
	if cfg.Export.Filename != "translations.json" {
		t.Errorf("filename = %q", cfg.Export.Filename)
	}
}

func TestHandleConfigInvalidFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[export]\nindent = 99\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, args, _, _ := testArgs(t, "", "config", "show", "--config", path)
	err := HandleConfig(args)
	if err == nil || !config.IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestHandleConfigUnknownSubcommand(t *testing.T) {
	isolateHome(t)

	_, args, _, _ := testArgs(t, "", "config", "explode")
	if err := HandleConfig(args); !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
}
