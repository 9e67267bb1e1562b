// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

// isolateHome points the config directory at a fresh temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func(id int) {
			defer wg.Done()
			c := Default()
			c.Server.Port = 9000 + id
			SetGlobal(c)
		}(i)

		go func() {
			defer wg.Done()
			if cfg := Global(); cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() falls back to defaults
// when no config file exists.
func TestConfig_GlobalInitialization(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Export.Filename != DefaultFilename {
		t.Errorf("Expected filename %q, got %q", DefaultFilename, cfg.Export.Filename)
	}
	if Global() != cfg {
		t.Error("Global() should return the same instance on repeated calls")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal replaces the instance.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	_ = Global()
	custom := Default()
	custom.Export.Indent = 4
	SetGlobal(custom)

	if got := Global().Export.Indent; got != 4 {
		t.Errorf("Expected indent 4 after SetGlobal, got %d", got)
	}
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
	if cfg.Export.Filename != "translations.json" {
		t.Errorf("Expected default filename translations.json, got %q", cfg.Export.Filename)
	}
	if cfg.Form.InitialRows != 1 {
		t.Errorf("Expected one initial row, got %d", cfg.Form.InitialRows)
	}
	if cfg.Export.Indent != 0 {
		t.Errorf("Expected compact export by default, got indent %d", cfg.Export.Indent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if got := cfg.Server.SessionTimeout(); got != time.Hour {
		t.Errorf("Expected 1h session timeout, got %v", got)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{name: "port zero picks free port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantField: "server.port"},
		{name: "negative port", mutate: func(c *Config) { c.Server.Port = -1 }, wantField: "server.port"},
		{name: "negative rate limit", mutate: func(c *Config) { c.Server.RateLimit = -1 }, wantField: "server.rate_limit"},
		{name: "filename is a path", mutate: func(c *Config) { c.Export.Filename = "out/x.json" }, wantField: "export.filename"},
		{name: "filename wrong extension", mutate: func(c *Config) { c.Export.Filename = "x.txt" }, wantField: "export.filename"},
		{name: "filename upper-case extension", mutate: func(c *Config) { c.Export.Filename = "X.JSON" }},
		{name: "indent too wide", mutate: func(c *Config) { c.Export.Indent = 9 }, wantField: "export.indent"},
		{name: "indent at max", mutate: func(c *Config) { c.Export.Indent = MaxIndent }},
		{name: "zero initial rows", mutate: func(c *Config) { c.Form.InitialRows = 0 }},
		{name: "too many initial rows", mutate: func(c *Config) { c.Form.InitialRows = 101 }, wantField: "form.initial_rows"},
		{name: "invalid theme", mutate: func(c *Config) { c.UI.Theme = "neon" }, wantField: "ui.theme"},
		{name: "trusted proxy cidr and ip", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/8", "::1"} }},
		{name: "trusted proxy garbage", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"proxy.local"} }, wantField: "server.trusted_proxies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var ve ValidateErrors
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want ValidateErrors", err)
			}
			if ve[0].Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve[0].Field, tt.wantField)
			}
		})
	}
}

// TestConfig_ValidateCollectsAll tests that every problem is reported.
func TestConfig_ValidateCollectsAll(t *testing.T) {
	c := Default()
	c.Server.Port = -5
	c.Export.Indent = 20
	c.UI.Theme = "x"

	err := c.Validate()
	var ve ValidateErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidateErrors, got %v", err)
	}
	if len(ve) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(ve), ve)
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should report true")
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("joined message should separate errors: %q", err.Error())
	}
}

// TestConfig_LoadFromPathTOML tests that a partial TOML file keeps defaults
// for everything it does not set.
func TestConfig_LoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[export]
indent = 2
output_dir = "locales"

[form]
initial_rows = 3
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Export.Indent != 2 {
		t.Errorf("indent = %d, want 2", cfg.Export.Indent)
	}
	if cfg.Export.OutputDir != "locales" {
		t.Errorf("output_dir = %q, want locales", cfg.Export.OutputDir)
	}
	if cfg.Form.InitialRows != 3 {
		t.Errorf("initial_rows = %d, want 3", cfg.Form.InitialRows)
	}
	if cfg.Export.Filename != DefaultFilename {
		t.Errorf("filename = %q, want default", cfg.Export.Filename)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

// TestConfig_LoadFromPathJSON tests the JSON format.
func TestConfig_LoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"server": {"port": 9999}, "ui": {"theme": "light"}}`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
}

// TestConfig_LoadFromPathInvalid tests malformed and invalid files.
func TestConfig_LoadFromPathInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[export\nindent = ")
	if _, err := LoadFromPath(bad); err == nil {
		t.Error("expected decode error for malformed TOML")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	writeFile(t, invalid, "[export]\nindent = 42\n")
	_, err := LoadFromPath(invalid)
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

// TestConfig_LoadPrefersTOML tests the file precedence under the home dir.
func TestConfig_LoadPrefersTOML(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".i18ngen", "config.json"), `{"export": {"indent": 4}}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.Indent != 4 {
		t.Errorf("JSON fallback not used: indent = %d", cfg.Export.Indent)
	}

	writeFile(t, filepath.Join(home, ".i18ngen", "config.toml"), "[export]\nindent = 2\n")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.Indent != 2 {
		t.Errorf("TOML should win over JSON: indent = %d", cfg.Export.Indent)
	}
}

// TestConfig_EnvOverrides tests I18NGEN_* variables.
func TestConfig_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("I18NGEN_PORT", "9100")
	t.Setenv("I18NGEN_HOST", "0.0.0.0")
	t.Setenv("I18NGEN_OUTPUT_DIR", "/tmp/out")
	t.Setenv("I18NGEN_FILENAME", "fr.json")
	t.Setenv("I18NGEN_INDENT", "2")
	t.Setenv("I18NGEN_THEME", "DARK")
	t.Setenv("I18NGEN_INITIAL_ROWS", "5")
	t.Setenv("I18NGEN_SESSION_TIMEOUT", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Export.OutputDir != "/tmp/out" || cfg.Export.Filename != "fr.json" || cfg.Export.Indent != 2 {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.Form.InitialRows != 5 {
		t.Errorf("initial_rows = %d, want 5", cfg.Form.InitialRows)
	}
	if cfg.Server.SessionTimeoutSecs != 60 {
		t.Errorf("session timeout = %d, want 60", cfg.Server.SessionTimeoutSecs)
	}
	if len(cfg.Server.TrustedProxies) != 0 {
		t.Errorf("trusted proxies = %v, want none by default", cfg.Server.TrustedProxies)
	}
}

func TestConfig_EnvTrustedProxies(t *testing.T) {
	isolateHome(t)
	t.Setenv("I18NGEN_TRUSTED_PROXIES", "127.0.0.1,10.0.0.0/8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"127.0.0.1", "10.0.0.0/8"}
	if strings.Join(cfg.Server.TrustedProxies, ",") != strings.Join(want, ",") {
		t.Errorf("trusted proxies = %v, want %v", cfg.Server.TrustedProxies, want)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"127.0.0.1", 8787, "127.0.0.1:8787"},
		{"", 0, ":0"},
		{"::1", 9000, "[::1]:9000"},
	}
	for _, tt := range tests {
		if got := (ServerConfig{Host: tt.host, Port: tt.port}).Addr(); got != tt.want {
			t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

// TestConfig_EnvOverridesBeatFile tests that env wins over the file.
func TestConfig_EnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[server]\nport = 1234\n")
	t.Setenv("I18NGEN_PORT", "4321")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.Port != 4321 {
		t.Errorf("port = %d, want 4321", cfg.Server.Port)
	}
}

// TestConfig_EnvOverridesBadValue tests that unparseable values are errors.
func TestConfig_EnvOverridesBadValue(t *testing.T) {
	t.Setenv("I18NGEN_INDENT", "wide")

	if err := Default().ApplyEnvOverrides(); err == nil {
		t.Error("expected error for non-numeric I18NGEN_INDENT")
	}
}

// TestConfig_SaveRoundTrip tests SaveTOML followed by LoadFromPath.
func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Export.Indent = 2
	cfg.UI.Theme = "light"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if !reflect.DeepEqual(*loaded, *cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}

	jsonPath := filepath.Join(filepath.Dir(path), "config.json")
	if err := SaveJSON(cfg, jsonPath); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}
	loaded, err = LoadFromPath(jsonPath)
	if err != nil {
		t.Fatalf("LoadFromPath(json) error = %v", err)
	}
	if !reflect.DeepEqual(*loaded, *cfg) {
		t.Errorf("JSON round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

// TestConfig_Save tests that Save writes under the config dir.
func TestConfig_Save(t *testing.T) {
	home := isolateHome(t)

	path, err := Save(Default())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := filepath.Join(home, ".i18ngen", "config.toml")
	if path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# i18ngen configuration file") {
		t.Errorf("missing header comment:\n%s", data)
	}
}

// TestConfig_Clone tests that Clone returns an independent copy.
func TestConfig_Clone(t *testing.T) {
	orig := Default()
	clone := orig.Clone()
	clone.Export.Indent = 8

	if orig.Export.Indent == 8 {
		t.Error("modifying clone changed the original")
	}

	orig.Server.TrustedProxies = []string{"10.0.0.1"}
	clone = orig.Clone()
	clone.Server.TrustedProxies[0] = "10.0.0.2"
	if orig.Server.TrustedProxies[0] != "10.0.0.1" {
		t.Error("modifying clone's trusted proxies changed the original")
	}
}

// TestConfig_Watch tests that a rewritten file is reloaded.
func TestConfig_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[export]\nindent = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	if err := WatchWithDebounce(ctx, path, 20*time.Millisecond, func(cfg *Config) {
		reloaded <- cfg
	}); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	cfg := Default()
	cfg.Export.Indent = 6
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	select {
	case got := <-reloaded:
		if got.Export.Indent != 6 {
			t.Errorf("reloaded indent = %d, want 6", got.Export.Indent)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

// TestConfig_WatchSkipsInvalid tests that a broken file does not reach fn.
func TestConfig_WatchSkipsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[export]\nindent = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	if err := WatchWithDebounce(ctx, path, 20*time.Millisecond, func(cfg *Config) {
		reloaded <- cfg
	}); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	writeFile(t, path, "[export]\nindent = 99\n")

	select {
	case got := <-reloaded:
		t.Errorf("invalid config should not be delivered, got %+v", got)
	case <-time.After(300 * time.Millisecond):
	}
}
