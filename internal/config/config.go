// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for indus.
//
// Configuration is read from ~/.indus/config.toml with sensible defaults
// and environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/indus-tui/internal/deepseek"
	"github.com/jeranaias/indus-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete indus configuration.
type Config struct {
	// DefaultModel is the model selected at startup.
	DefaultModel string `toml:"default_model"`

	// API configuration
	API APIConfig `toml:"api"`

	// Upload service configuration
	Upload UploadConfig `toml:"upload"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Export configuration
	Export ExportConfig `toml:"export"`
}

// APIConfig contains DeepSeek API configuration.
type APIConfig struct {
	// Key is the DeepSeek API key.
	Key string `toml:"key"`
	// BaseURL is the API base URL.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the buffered request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UploadConfig contains file upload service configuration.
type UploadConfig struct {
	// URL is the upload endpoint.
	URL string `toml:"url"`
}

// UIConfig contains interface configuration.
type UIConfig struct {
	// Stream enables streamed responses.
	Stream bool `toml:"stream"`
	// WelcomeMessage is shown at the top of each new conversation.
	// Empty disables the greeting.
	WelcomeMessage string `toml:"welcome_message"`
	// Theme selects the color theme ("dark" or "light").
	Theme string `toml:"theme"`
}

// ExportConfig contains conversation export configuration.
type ExportConfig struct {
	// Dir is where exported files are written (empty = ~/.indus/exports).
	Dir string `toml:"dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultWelcome is the greeting seeded into new conversations.
const DefaultWelcome = "Hello! I'm Indus. Ask me anything, or attach a file with /attach."

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DefaultModel: deepseek.ModelChat,
		API: APIConfig{
			BaseURL:     deepseek.DefaultBaseURL,
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			Stream:         true,
			WelcomeMessage: DefaultWelcome,
			Theme:          "dark",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the indus configuration directory (~/.indus).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".indus"), nil
}

// Path returns the config file path (~/.indus/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir creates the configuration directory if needed.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// ExportDir returns the effective export directory.
func (c *Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return c.Export.Dir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

// Timeout returns the buffered request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads configuration from the config file, falling back to defaults
// when the file does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadFile(cfg, path); err != nil {
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

// LoadFile decodes a TOML config file over the given config.
func LoadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// Save writes the configuration to the config file. The key is stored with
// the rest of the config, so the file is written owner-only.
func Save(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	path, err := Path()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# indus configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, []byte(sb.String()), 0o600)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - INDUS_API_KEY: overrides api.key
//   - INDUS_API_URL: overrides api.base_url
//   - INDUS_UPLOAD_URL: overrides upload.url
//   - INDUS_MODEL: overrides default_model
//   - INDUS_STREAM: "1"/"true" or "0"/"false" overrides ui.stream
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("INDUS_API_KEY"); key != "" {
		c.API.Key = key
	}
	if base := os.Getenv("INDUS_API_URL"); base != "" {
		c.API.BaseURL = base
	}
	if uploadURL := os.Getenv("INDUS_UPLOAD_URL"); uploadURL != "" {
		c.Upload.URL = uploadURL
	}
	if model := os.Getenv("INDUS_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if stream := os.Getenv("INDUS_STREAM"); stream != "" {
		c.UI.Stream = stream == "1" || strings.EqualFold(stream, "true")
	}
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills in zero values with defaults.
func (c *Config) SetDefaults() {
	if c.DefaultModel == "" {
		c.DefaultModel = deepseek.ModelChat
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = deepseek.DefaultBaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = 60
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "dark"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %q", c.API.BaseURL)
	}
	if c.Upload.URL != "" {
		if _, err := url.ParseRequestURI(c.Upload.URL); err != nil {
			return fmt.Errorf("upload.url is not a valid URL: %q", c.Upload.URL)
		}
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 600 {
		return fmt.Errorf("api.timeout_secs must be between 1 and 600, got %d", c.API.TimeoutSecs)
	}

	validModel := false
	for _, m := range deepseek.Models() {
		if m.ID == c.DefaultModel {
			validModel = true
			break
		}
	}
	if !validModel {
		return fmt.Errorf("unknown default_model: %q", c.DefaultModel)
	}

	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme must be \"dark\" or \"light\", got %q", c.UI.Theme)
	}
	return nil
}
