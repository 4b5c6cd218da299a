package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/config"
	"github.com/cargocraft/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Validate the cargo-craft configuration file against the embedded schema.

Unknown keys, invalid versions and editions, and baseline dependency specs
that do not parse are reported with the key they refer to.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := configPath(cfg)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			w := c.ErrOrStderr()
			fmt.Fprintln(w, "Error: config validation failed")
			fmt.Fprintf(w, "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Err: err, Code: cmdtypes.ExitValidationError, Printed: true}
		}
		return err
	}

	output.Println(output.FormatCheckmark("Config file is valid: " + output.StyleNoun.Render(path)))
	return nil
}
