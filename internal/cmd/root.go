// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	cmdconfig "github.com/cargocraft/cli/internal/cmd/config"
	"github.com/cargocraft/cli/internal/cmd/receipts"
	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/config"
	"github.com/cargocraft/cli/internal/output"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	config     string
	verbose    bool
	quiet      bool
	timestamps bool
}

// NewRootCmd creates the root command for cargo-craft.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cmdtypes.GlobalConfig{})
}

func newRootCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "cargo-craft",
		Short: "Scaffold new Rust crates",
		Long: `cargo-craft creates a ready-to-build Rust crate: it renders the manifest and
sources, formats them, adds dependencies, verifies the build and commits the
result to a new repository.

It can be invoked directly or as a cargo subcommand (cargo craft).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &flags, cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: "+config.ConfigEnvVar+")")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Only print warnings and errors")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd(cfg))
	rootCmd.AddCommand(NewHistoryCmd(cfg))
	rootCmd.AddCommand(receipts.NewReceiptsCmd(cfg))
	rootCmd.AddCommand(cmdconfig.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	cfg.ConfigFlag = flags.config
	cfg.Verbose = flags.verbose
	cfg.Quiet = flags.quiet

	// Logging comes up first with flag values only so config loading can log.
	logCfg := output.LogConfig{Verbose: flags.verbose, Quiet: flags.quiet}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	}
	output.SetupLogging(logCfg)

	loaded, err := config.Resolve(flags.config)
	if err != nil {
		// config vet reports a broken file itself; everything else runs on defaults.
		output.Debug("config load error", "error", err)
		loaded = &config.CraftConfig{Config: config.DefaultConfig(), File: &config.Config{}}
	}
	cfg.Config = loaded

	// Timestamps: flag (if explicitly set) > config > default (nil = true).
	if logCfg.Timestamps == nil && loaded.Config.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Config.Log.Timestamps
		output.SetupLogging(logCfg)
	}

	output.Debug("initializing CLI",
		"config", loaded.Path,
		"configSource", loaded.PathSource,
		"receipts", loaded.Config.ReceiptsFile,
		"history", loaded.Config.HistoryFile,
	)

	return nil
}
