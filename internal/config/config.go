// Package config provides configuration loading and management.
package config

import (
	"github.com/cargocraft/cli/internal/scaffold"
)

// Defaults for keys not covered by scaffold.DefaultOptions.
const (
	DefaultPackageManager = "cargo"
	DefaultFormatter      = "rustfmt"
	DefaultVCS            = "git"
	DefaultHistoryFile    = "~/.cargo-craft/history"
	DefaultReceiptsFile   = "~/.cargo-craft/receipts.jsonl"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the cargo-craft configuration.
// Loaded from ~/.cargo-craft/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Version is the default crate version.
	// Env: CARGO_CRAFT_VERSION
	Version string `mapstructure:"version" json:"version,omitempty" yaml:"version,omitempty"`

	// BinName is the default binary name template.
	// Env: CARGO_CRAFT_BIN_NAME
	BinName string `mapstructure:"binName" json:"binName,omitempty" yaml:"binName,omitempty"`

	// Env: CARGO_CRAFT_EDITION
	Edition string `mapstructure:"edition" json:"edition,omitempty" yaml:"edition,omitempty"`

	// Env: CARGO_CRAFT_TOOLCHAIN
	Toolchain string `mapstructure:"toolchain" json:"toolchain,omitempty" yaml:"toolchain,omitempty"`

	// PackageManager is the binary used for `add`, `check`, `build`, `test` and `doc`.
	// Env: CARGO_CRAFT_PACKAGE_MANAGER
	PackageManager string `mapstructure:"packageManager" json:"packageManager,omitempty" yaml:"packageManager,omitempty"`

	// Formatter is run on every generated Rust source file.
	// Env: CARGO_CRAFT_FORMATTER
	Formatter string `mapstructure:"formatter" json:"formatter,omitempty" yaml:"formatter,omitempty"`

	// VCS initializes and stages the new project.
	// Env: CARGO_CRAFT_VCS
	VCS string `mapstructure:"vcs" json:"vcs,omitempty" yaml:"vcs,omitempty"`

	// Baseline replaces the built-in serde baseline dependency.
	Baseline []string `mapstructure:"baseline" json:"baseline,omitempty" yaml:"baseline,omitempty"`

	// Env: CARGO_CRAFT_HISTORY_FILE
	HistoryFile string `mapstructure:"historyFile" json:"historyFile,omitempty" yaml:"historyFile,omitempty"`

	// Env: CARGO_CRAFT_RECEIPTS_FILE
	ReceiptsFile string `mapstructure:"receiptsFile" json:"receiptsFile,omitempty" yaml:"receiptsFile,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" json:"log,omitempty" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `cargo-craft config init` to generate the initial config file.
func DefaultConfig() *Config {
	opts := scaffold.DefaultOptions()
	timestamps := true
	return &Config{
		Version:        opts.Version,
		BinName:        opts.BinName,
		Edition:        opts.Edition,
		Toolchain:      opts.Toolchain,
		PackageManager: DefaultPackageManager,
		Formatter:      DefaultFormatter,
		VCS:            DefaultVCS,
		HistoryFile:    DefaultHistoryFile,
		ReceiptsFile:   DefaultReceiptsFile,
		Log:            LogConfig{Timestamps: &timestamps},
	}
}

// WithDefaults returns a copy of c with empty fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()

	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&out.Version, def.Version)
	fill(&out.BinName, def.BinName)
	fill(&out.Edition, def.Edition)
	fill(&out.Toolchain, def.Toolchain)
	fill(&out.PackageManager, def.PackageManager)
	fill(&out.Formatter, def.Formatter)
	fill(&out.VCS, def.VCS)
	fill(&out.HistoryFile, def.HistoryFile)
	fill(&out.ReceiptsFile, def.ReceiptsFile)
	if out.Log.Timestamps == nil {
		out.Log.Timestamps = def.Log.Timestamps
	}
	out.Baseline = append([]string(nil), c.Baseline...)
	return &out
}

// CraftConfig is the configuration in effect for one invocation.
type CraftConfig struct {
	// Config is the merged file and environment configuration with defaults applied.
	Config *Config

	// File holds only the values present in the config file.
	File *Config

	// Path is the config file that was consulted, whether or not it exists.
	Path string

	// PathSource indicates where Path came from.
	PathSource ConfigSource
}

// ResolvedValue records where a configuration value came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}
