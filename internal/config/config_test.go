package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "0.0.1", cfg.Version)
	assert.Equal(t, "{{crate_name}}", cfg.BinName)
	assert.Equal(t, "2021", cfg.Edition)
	assert.Equal(t, "nightly", cfg.Toolchain)
	assert.Equal(t, "cargo", cfg.PackageManager)
	assert.Equal(t, "rustfmt", cfg.Formatter)
	assert.Equal(t, "git", cfg.VCS)
	assert.Empty(t, cfg.Baseline)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestWithDefaults(t *testing.T) {
	off := false
	cfg := &Config{
		Edition:  "2024",
		Baseline: []string{"anyhow"},
		Log:      LogConfig{Timestamps: &off},
	}

	out := cfg.WithDefaults()

	assert.Equal(t, "2024", out.Edition)
	assert.Equal(t, "cargo", out.PackageManager)
	assert.Equal(t, []string{"anyhow"}, out.Baseline)
	assert.False(t, *out.Log.Timestamps)
	assert.Empty(t, cfg.PackageManager, "receiver is not modified")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		path := writeConfig(t, `
edition: "2018"
binName: "cargo-{{crate_name}}"
formatter: /opt/bin/rustfmt
baseline:
  - serde -Fderive
  - anyhow
log:
  timestamps: false
`)
		cfg, err := NewLoader().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "2018", cfg.Edition)
		assert.Equal(t, "cargo-{{crate_name}}", cfg.BinName)
		assert.Equal(t, "/opt/bin/rustfmt", cfg.Formatter)
		assert.Equal(t, []string{"serde -Fderive", "anyhow"}, cfg.Baseline)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Edition)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("CARGO_CRAFT_EDITION", "2024")
		t.Setenv("CARGO_CRAFT_PACKAGE_MANAGER", "cross")
		path := writeConfig(t, `edition: "2018"`)

		cfg, err := NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, "2024", cfg.Edition)
		assert.Equal(t, "cross", cfg.PackageManager)
	})

	t.Run("load file ignores env", func(t *testing.T) {
		t.Setenv("CARGO_CRAFT_EDITION", "2024")
		path := writeConfig(t, `edition: "2018"`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "2018", cfg.Edition)
	})

	t.Run("malformed file is a parse error", func(t *testing.T) {
		path := writeConfig(t, "edition: [unterminated")

		_, err := NewLoader().Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrParse))
	})
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := NewLoader().LoadWithDefaults(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "nightly", cfg.Toolchain)
	assert.Equal(t, DefaultReceiptsFile, cfg.ReceiptsFile)
}

func TestConfigFileExists(t *testing.T) {
	exists, err := ConfigFileExists(writeConfig(t, ""))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty path", "", ""},
		{"absolute path", "/absolute/path", "/absolute/path"},
		{"relative path", "relative/path", "relative/path"},
		{"home directory only", "~", homeDir},
		{"path with tilde", "~/.cargo-craft/history", filepath.Join(homeDir, ".cargo-craft/history")},
		{"tilde username not expanded", "~username/file", "~username/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolve(t *testing.T) {
	path := writeConfig(t, `toolchain: stable`)
	t.Setenv("CARGO_CRAFT_EDITION", "2024")

	resolved, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, path, resolved.Path)
	assert.Equal(t, SourceFlag, resolved.PathSource)
	assert.Equal(t, "stable", resolved.Config.Toolchain)
	assert.Equal(t, "2024", resolved.Config.Edition)
	assert.Equal(t, "cargo", resolved.Config.PackageManager)
	assert.Empty(t, resolved.File.Edition)
	assert.Equal(t, "stable", resolved.File.Toolchain)
}
