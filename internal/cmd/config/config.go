// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for cargo-craft.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// configPath returns the expanded config file path for this invocation.
func configPath(cfg *cmdtypes.GlobalConfig) (string, error) {
	path := ""
	if cfg.Config != nil {
		path = cfg.Config.Path
	}
	if path == "" {
		resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: cfg.ConfigFlag})
		if err != nil {
			return "", err
		}
		path = resolved.ConfigPath
	}
	return config.ExpandPath(path)
}
