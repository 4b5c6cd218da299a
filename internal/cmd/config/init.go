package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/config"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
)

const configHeader = `# cargo-craft configuration
#
# Values here are defaults for "cargo craft new"; flags and CARGO_CRAFT_*
# environment variables take precedence. Check this file with
# "cargo craft config vet".

`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a cargo-craft configuration file with default values.

The configuration file is created at ~/.cargo-craft/config.yaml by default.
Use --config or CARGO_CRAFT_CONFIG to choose a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := configPath(cfg)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return oerrors.IO("checking", path, err)
	}
	if exists && !force {
		return cmdtypes.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
			cmdtypes.ExitGeneralError,
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oerrors.IO("creating directory for", path, err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return oerrors.WithCause(oerrors.KindSerialization, err, "encoding default config")
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oerrors.IO("writing", path, err)
	}

	output.Debug("wrote config file", "path", path, "force", force)
	output.Println(output.FormatCheckmark("Config file created: " + output.StyleNoun.Render(path)))
	return nil
}
