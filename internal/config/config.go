// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete deskchat configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend service configuration
	Backend BackendConfig `toml:"backend"`

	// History (conversation persistence) configuration
	History HistoryConfig `toml:"history"`

	// Saved query store configuration
	Queries QueriesConfig `toml:"queries"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains assistant service settings.
type BackendConfig struct {
	// URL is the base URL of the assistant service.
	URL string `toml:"url"`
	// AgentMode is sent with every prompt ("Balanced", "Precise", "Creative").
	AgentMode string `toml:"agent_mode"`
	// TimeoutSecs is the per-request timeout. Turns run SQL against the
	// warehouse before answering, so this defaults generously.
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxRetries is the retry budget for transient failures.
	MaxRetries int `toml:"max_retries"`
}

// HistoryConfig contains conversation persistence settings.
type HistoryConfig struct {
	// Enabled controls whether conversations are saved to disk.
	Enabled bool `toml:"enabled"`
	// Dir is the directory for conversation files (empty = ~/.deskchat/history).
	Dir string `toml:"dir"`
	// MaxConversations caps how many conversation files are kept; the
	// oldest are pruned past this count. 0 = unlimited.
	MaxConversations int `toml:"max_conversations"`
}

// QueriesConfig contains saved-query store settings.
type QueriesConfig struct {
	// Enabled controls whether the /save and /queries commands work.
	Enabled bool `toml:"enabled"`
	// Path is the sqlite database path (empty = ~/.deskchat/queries.db).
	Path string `toml:"path"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// CompactMode uses a tighter layout without message padding.
	CompactMode bool `toml:"compact_mode"`
	// Markdown renders plain-text responses through the markdown renderer.
	Markdown bool `toml:"markdown"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			URL:         "http://127.0.0.1:8000",
			AgentMode:   "Balanced",
			TimeoutSecs: 120,
			MaxRetries:  3,
		},

		History: HistoryConfig{
			Enabled:          true,
			MaxConversations: 200,
		},

		Queries: QueriesConfig{
			Enabled: true,
		},

		UI: UIConfig{
			Theme:    "dark",
			Markdown: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the deskchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".deskchat"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// HistoryDir resolves the conversation history directory for this config.
func (c *Config) HistoryDir() (string, error) {
	if c.History.Dir != "" {
		return c.History.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// QueriesPath resolves the saved-query database path for this config.
func (c *Config) QueriesPath() (string, error) {
	if c.Queries.Path != "" {
		return c.Queries.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "queries.db"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last, then the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the default TOML file with owner-only
// permissions.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# deskchat configuration file")
	fmt.Fprintln(file, "# Generated by deskchat - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS & VALIDATION
// =============================================================================

// SetDefaults fills any missing or zero-value fields with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.AgentMode == "" {
		c.Backend.AgentMode = defaults.Backend.AgentMode
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Backend.MaxRetries == 0 {
		c.Backend.MaxRetries = defaults.Backend.MaxRetries
	}
	if c.History.MaxConversations == 0 {
		c.History.MaxConversations = defaults.History.MaxConversations
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

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

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Backend.URL != "" {
		u, err := url.Parse(c.Backend.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "backend.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Backend.URL),
			})
		}
	}

	validModes := map[string]bool{"balanced": true, "precise": true, "creative": true}
	if !validModes[strings.ToLower(c.Backend.AgentMode)] {
		errs = append(errs, ValidationError{
			Field:   "backend.agent_mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: Balanced, Precise, Creative", c.Backend.AgentMode),
		})
	}

	if c.Backend.TimeoutSecs < 1 || c.Backend.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be 1-600, got %d", c.Backend.TimeoutSecs),
		})
	}

	if c.Backend.MaxRetries < 1 || c.Backend.MaxRetries > 10 {
		errs = append(errs, ValidationError{
			Field:   "backend.max_retries",
			Message: fmt.Sprintf("must be 1-10, got %d", c.Backend.MaxRetries),
		})
	}

	if c.History.MaxConversations < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.max_conversations",
			Message: "must be non-negative",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DESKCHAT_BACKEND_URL: overrides backend.url
//   - DESKCHAT_AGENT_MODE: overrides backend.agent_mode
//   - DESKCHAT_TIMEOUT_SECS: overrides backend.timeout_secs
//   - DESKCHAT_THEME: overrides ui.theme
//   - DESKCHAT_HISTORY_DIR: overrides history.dir
//   - DESKCHAT_NO_HISTORY: set to "1" or "true" to disable persistence
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("DESKCHAT_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	}
	if mode := os.Getenv("DESKCHAT_AGENT_MODE"); mode != "" {
		c.Backend.AgentMode = mode
	}
	if secs := os.Getenv("DESKCHAT_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			c.Backend.TimeoutSecs = n
		}
	}
	if theme := os.Getenv("DESKCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if dir := os.Getenv("DESKCHAT_HISTORY_DIR"); dir != "" {
		c.History.Dir = dir
	}
	if off := os.Getenv("DESKCHAT_NO_HISTORY"); off != "" {
		c.History.Enabled = !(off == "1" || strings.ToLower(off) == "true")
	}
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
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
