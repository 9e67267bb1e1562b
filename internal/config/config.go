// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jeranaias/i18ngen/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete i18ngen configuration.
type Config struct {
	// Server configuration for `i18ngen serve`
	Server ServerConfig `toml:"server" json:"server"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`

	// Form configuration
	Form FormConfig `toml:"form" json:"form"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig contains HTTP form server configuration.
type ServerConfig struct {
	// Host is the interface to bind (default "127.0.0.1")
	Host string `toml:"host" json:"host"`
	// Port is the TCP port; 0 picks a free port
	Port int `toml:"port" json:"port"`
	// RateLimit is the sustained requests per second allowed per client IP
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// SessionTimeoutSecs is how long an idle browser session keeps its form
	SessionTimeoutSecs int `toml:"session_timeout_secs" json:"session_timeout_secs"`
	// MaxBodyBytes caps the size of a submitted form
	MaxBodyBytes int64 `toml:"max_body_bytes" json:"max_body_bytes"`
	// TrustedProxies lists proxy IPs or CIDR ranges whose X-Forwarded-For
	// and X-Real-IP headers are believed. Empty means the client address is
	// always the connection's remote address.
	TrustedProxies []string `toml:"trusted_proxies" json:"trusted_proxies"`
}

// ExportConfig controls where and how translations are written.
type ExportConfig struct {
	// OutputDir is the directory translations.json is written to
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// Filename is the base name of the exported file
	Filename string `toml:"filename" json:"filename"`
	// Indent pretty-prints with this many spaces; 0 is compact
	Indent int `toml:"indent" json:"indent"`
	// OpenAfterExport opens the file in the OS default application
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
}

// FormConfig controls the initial form state.
type FormConfig struct {
	// InitialRows is the number of blank rows a new form starts with
	InitialRows int `toml:"initial_rows" json:"initial_rows"`
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowPreview opens the editor with the JSON preview visible
	ShowPreview bool `toml:"show_preview" json:"show_preview"`
}

// SessionTimeout returns the idle session timeout as a duration.
func (s ServerConfig) SessionTimeout() time.Duration {
	return time.Duration(s.SessionTimeoutSecs) * time.Second
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultPort is the default port for `i18ngen serve`.
	DefaultPort = 8787

	// DefaultFilename is the default export file name.
	DefaultFilename = "translations.json"

	// MaxIndent is the largest accepted export indent.
	MaxIndent = 8

	// MaxInitialRows is the largest accepted initial row count.
	MaxInitialRows = 100
)

// Default returns a Config with all default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "127.0.0.1",
			Port:               DefaultPort,
			RateLimit:          20,
			SessionTimeoutSecs: 3600,
			MaxBodyBytes:       1 << 20,
		},
		Export: ExportConfig{
			OutputDir:       ".",
			Filename:        DefaultFilename,
			Indent:          0,
			OpenAfterExport: false,
		},
		Form: FormConfig{
			InitialRows: 1,
		},
		UI: UIConfig{
			Theme:       "auto",
			ShowPreview: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the i18ngen configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".i18ngen"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default locations.
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension; anything other than .json is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// finish applies env overrides, fills blanks and validates.
func finish(cfg *Config) error {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file and returns its path.
func Save(cfg *Config) (string, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	return path, SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# i18ngen configuration file\n")
	buf.WriteString("# Environment variables (I18NGEN_*) override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"dark", "light", "auto"}

// Validate validates the configuration and returns every problem found
// as ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 0 and 65535, got %d", c.Server.Port),
		})
	}
	for _, proxy := range c.Server.TrustedProxies {
		if !validProxyEntry(proxy) {
			errs = append(errs, ValidationError{
				Field:   "server.trusted_proxies",
				Message: fmt.Sprintf("%q is not an IP address or CIDR range", proxy),
			})
		}
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_limit",
			Message: "must not be negative",
		})
	}
	if c.Server.SessionTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.session_timeout_secs",
			Message: "must not be negative",
		})
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.max_body_bytes",
			Message: "must not be negative",
		})
	}

	name := c.Export.Filename
	switch {
	case name == "":
		errs = append(errs, ValidationError{Field: "export.filename", Message: "must not be empty"})
	case strings.ContainsAny(name, `/\`) || name != filepath.Base(name):
		errs = append(errs, ValidationError{Field: "export.filename", Message: "must be a file name, not a path"})
	case !strings.EqualFold(filepath.Ext(name), ".json"):
		errs = append(errs, ValidationError{Field: "export.filename", Message: "must end in .json"})
	}

	if c.Export.Indent < 0 || c.Export.Indent > MaxIndent {
		errs = append(errs, ValidationError{
			Field:   "export.indent",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxIndent, c.Export.Indent),
		})
	}

	if c.Form.InitialRows < 0 || c.Form.InitialRows > MaxInitialRows {
		errs = append(errs, ValidationError{
			Field:   "form.initial_rows",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxInitialRows, c.Form.InitialRows),
		})
	}

	if !isValidTheme(c.UI.Theme) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(ValidThemes, ", "), c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validProxyEntry(entry string) bool {
	if _, _, err := net.ParseCIDR(entry); err == nil {
		return true
	}
	return net.ParseIP(entry) != nil
}

func isValidTheme(theme string) bool {
	for _, t := range ValidThemes {
		if theme == t {
			return true
		}
	}
	return false
}

// SetDefaults fills empty string and zero-size fields that have no
// meaningful zero value.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.Host == "" {
		c.Server.Host = defaults.Server.Host
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaults.Export.OutputDir
	}
	if c.Export.Filename == "" {
		c.Export.Filename = defaults.Export.Filename
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envOverrides holds raw env values. Pointer fields stay nil when the
// variable is unset so only set variables override the file.
type envOverrides struct {
	Port           *int    `env:"I18NGEN_PORT"`
	Host           *string `env:"I18NGEN_HOST"`
	OutputDir      *string `env:"I18NGEN_OUTPUT_DIR"`
	Filename       *string `env:"I18NGEN_FILENAME"`
	Indent         *int    `env:"I18NGEN_INDENT"`
	Theme          *string `env:"I18NGEN_THEME"`
	InitialRows    *int    `env:"I18NGEN_INITIAL_ROWS"`
	SessionTimeout *int    `env:"I18NGEN_SESSION_TIMEOUT"`

	TrustedProxies []string `env:"I18NGEN_TRUSTED_PROXIES" envSeparator:","`
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - I18NGEN_PORT: overrides server.port
//   - I18NGEN_HOST: overrides server.host
//   - I18NGEN_OUTPUT_DIR: overrides export.output_dir
//   - I18NGEN_FILENAME: overrides export.filename
//   - I18NGEN_INDENT: overrides export.indent
//   - I18NGEN_THEME: overrides ui.theme
//   - I18NGEN_INITIAL_ROWS: overrides form.initial_rows
//   - I18NGEN_SESSION_TIMEOUT: overrides server.session_timeout_secs
//   - I18NGEN_TRUSTED_PROXIES: comma-separated, overrides server.trusted_proxies
func (c *Config) ApplyEnvOverrides() error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if raw.Port != nil {
		c.Server.Port = *raw.Port
	}
	if raw.Host != nil {
		c.Server.Host = *raw.Host
	}
	if raw.OutputDir != nil {
		c.Export.OutputDir = *raw.OutputDir
	}
	if raw.Filename != nil {
		c.Export.Filename = *raw.Filename
	}
	if raw.Indent != nil {
		c.Export.Indent = *raw.Indent
	}
	if raw.Theme != nil {
		c.UI.Theme = strings.ToLower(*raw.Theme)
	}
	if raw.InitialRows != nil {
		c.Form.InitialRows = *raw.InitialRows
	}
	if raw.SessionTimeout != nil {
		c.Server.SessionTimeoutSecs = *raw.SessionTimeout
	}
	if len(raw.TrustedProxies) > 0 {
		c.Server.TrustedProxies = raw.TrustedProxies
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Server.TrustedProxies = append([]string(nil), c.Server.TrustedProxies...)
	return &clone
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// IsValidationError reports whether err carries ValidateErrors.
func IsValidationError(err error) bool {
	var ve ValidateErrors
	return errors.As(err, &ve)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
