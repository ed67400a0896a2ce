// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/indus-tui/internal/deepseek"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, deepseek.ModelChat, cfg.DefaultModel)
	assert.True(t, cfg.UI.Stream)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
default_model = "deepseek-coder"

[api]
key = "sk-test"
timeout_secs = 30

[ui]
stream = false
theme = "light"

[export]
dir = "/tmp/exports"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Default()
	require.NoError(t, LoadFile(cfg, path))
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "deepseek-coder", cfg.DefaultModel)
	assert.Equal(t, "sk-test", cfg.API.Key)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.False(t, cfg.UI.Stream)
	assert.Equal(t, "light", cfg.UI.Theme)

	dir, err := cfg.ExportDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exports", dir)
}

func TestLoadFileKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nkey = \"sk-partial\"\n"), 0o600))

	cfg := Default()
	require.NoError(t, LoadFile(cfg, path))
	cfg.SetDefaults()

	assert.Equal(t, "sk-partial", cfg.API.Key)
	assert.Equal(t, deepseek.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, deepseek.ModelChat, cfg.DefaultModel)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("INDUS_API_KEY", "sk-from-env")
	t.Setenv("INDUS_API_URL", "https://proxy.example.com/v1")
	t.Setenv("INDUS_MODEL", "deepseek-coder")
	t.Setenv("INDUS_STREAM", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "sk-from-env", cfg.API.Key)
	assert.Equal(t, "https://proxy.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, "deepseek-coder", cfg.DefaultModel)
	assert.False(t, cfg.UI.Stream)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad base URL", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"bad upload URL", func(c *Config) { c.Upload.URL = "::broken" }},
		{"timeout too small", func(c *Config) { c.API.TimeoutSecs = 0 }},
		{"timeout too large", func(c *Config) { c.API.TimeoutSecs = 601 }},
		{"unknown model", func(c *Config) { c.DefaultModel = "gpt-9" }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.API.Key = "sk-roundtrip"
	cfg.DefaultModel = deepseek.ModelCoder
	require.NoError(t, Save(cfg))

	path, err := Path()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-roundtrip", loaded.API.Key)
	assert.Equal(t, deepseek.ModelCoder, loaded.DefaultModel)
}
