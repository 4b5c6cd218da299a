package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/config"
	"github.com/cargocraft/cli/internal/naming"
	"github.com/cargocraft/cli/internal/orchestrator"
	"github.com/cargocraft/cli/internal/output"
	"github.com/cargocraft/cli/internal/render"
	"github.com/cargocraft/cli/internal/scaffold"
	"github.com/cargocraft/cli/internal/shell"
	"github.com/cargocraft/cli/internal/templates"
)

// newFlags are the flags of the new command that do not map one to one
// onto scaffold.Options.
type newFlags struct {
	opts        scaffold.Options
	packageName naming.PackageNameValue
	noRollback  bool
	dryRun      bool
}

// NewNewCmd creates the new command.
func NewNewCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var nf newFlags

	c := &cobra.Command{
		Use:   "new <path>",
		Short: "Create a new crate",
		Long: `Create a new Rust crate at <path>.

The crate name is derived from the last path element. cargo-craft renders the
manifest and sources, runs the formatter, adds the baseline and --dep
dependencies, verifies the crate with check, build and test, and finally
initializes a git repository. When a step fails the new directory is removed
unless --no-rollback is given.

Examples:
  # Library crate
  cargo craft new ./parsers/tomlish

  # CLI crate with two binaries and a dependency with features
  cargo craft new ./tools/k9 --cli --bin k9 --bin cargo-k9 --dep "reqwest -Fjson,blocking"

  # Print the commands instead of running them
  cargo craft new ./tools/k9 --cli --script`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runNew(c, args, &nf, cfg)
		},
	}

	f := c.Flags()
	f.VarP(&nf.packageName, "package-name", "p", "Package (library) name, snake_case")
	f.StringVar(&nf.opts.Version, "version", "", "Crate version (default "+scaffold.DefaultVersion+")")
	f.StringVar(&nf.opts.Description, "description", "", "Crate description")
	f.StringArrayVarP(&nf.opts.Deps, "dep", "d", nil, `Dependency spec, e.g. "reqwest -Fjson --optional" (repeatable)`)
	f.BoolVarP(&nf.opts.CLI, "cli", "c", false, "Generate a command-line application")
	f.BoolVar(&nf.opts.Bare, "bare", false, "Generate a single src/main.rs without a library")
	f.StringVar(&nf.opts.BinName, "bin-name", "", "Default binary name template (default "+scaffold.DefaultBinName+")")
	f.StringArrayVarP(&nf.opts.Bins, "bin", "b", nil, "Binary name (repeatable)")
	f.StringArrayVarP(&nf.opts.Subcommands, "subcommand", "s", nil, "CLI subcommand name (repeatable)")
	f.BoolVarP(&nf.opts.ValueEnum, "value-enum", "V", false, "Generate a clap ValueEnum")
	f.BoolVar(&nf.opts.Main, "main", false, "Use src/main.rs for a single binary")
	f.StringVar(&nf.opts.LibPath, "lib-path", "", "Library directory, relative to src/")
	f.StringVar(&nf.opts.BinPath, "bin-path", "", "Binary directory, relative to the project root")
	f.StringVar(&nf.opts.Edition, "edition", "", "Rust edition (default "+scaffold.DefaultEdition+")")
	f.StringVar(&nf.opts.Toolchain, "toolchain", "", "rust-toolchain channel (default "+scaffold.DefaultToolchain+")")
	f.BoolVar(&nf.opts.Offline, "offline", false, "Pass --offline to the package manager")
	f.BoolVarP(&nf.opts.Force, "force", "f", false, "Delete an existing project at <path> first")
	f.BoolVar(&nf.noRollback, "no-rollback", false, "Keep the project directory when a step fails")
	f.BoolVar(&nf.opts.Script, "script", false, "Print the commands as a shell script instead of running them")
	f.BoolVar(&nf.opts.Doc, "doc", false, "Also build documentation during verification")
	f.BoolVar(&nf.dryRun, "dry-run", false, "Print the planned files and exit without writing")

	return c
}

func runNew(c *cobra.Command, args []string, nf *newFlags, cfg *cmdtypes.GlobalConfig) error {
	recordHistory(cfg, invocation(c, args))

	opts := resolveOptions(c, args[0], nf, cfg)

	fsys := cfg.FS()
	craft, err := scaffold.NewConfig(fsys, opts)
	if err != nil {
		return err
	}

	engine, err := templates.NewEngine()
	if err != nil {
		return err
	}
	plan, err := scaffold.NewPlanner(engine).Build(craft)
	if err != nil {
		return err
	}
	preview := render.Preview(plan)

	if nf.dryRun {
		output.Println(output.FormatStep("would create", craft.CrateName()) + " " + output.StyleDim.Render(craft.ProjectPath()))
		output.Println(output.RenderFileTree(craft.CrateName(), preview))
		return nil
	}

	var runner shell.Runner
	switch {
	case craft.Script():
		runner = shell.NewScriptRunner(c.OutOrStdout())
	case cfg.Verbose:
		runner = shell.NewExecRunner()
	default:
		runner = shell.NewSpinnerRunner()
	}

	receipts, err := cfg.Receipts()
	if err != nil {
		return err
	}

	settings := cfg.Settings()
	orch := orchestrator.New(fsys, runner, engine,
		orchestrator.WithReceipts(receipts),
		orchestrator.WithTools(orchestrator.Tools{
			PackageManager: settings.PackageManager,
			Formatter:      settings.Formatter,
			VCS:            settings.VCS,
		}),
	)

	result, err := orch.Run(c.Context(), craft)
	if err != nil {
		if result != nil && result.RolledBack {
			output.Warn("removed partially created project", "path", result.Root)
		}
		return err
	}
	if craft.Script() {
		// stdout holds the script; keep it runnable.
		return nil
	}

	written := make(map[string]string, len(result.Files))
	for _, path := range result.Files {
		rel, relErr := filepath.Rel(result.Root, path)
		if relErr != nil {
			rel = path
		}
		written[rel] = preview[rel]
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("created %s in %s", craft.CrateName(), result.Root)))
	if !cfg.Quiet {
		output.Println(output.RenderFileTree(craft.CrateName(), written))
	}
	return nil
}

// resolveOptions merges flags with the environment, the config file and the
// built-in defaults.
func resolveOptions(c *cobra.Command, path string, nf *newFlags, cfg *cmdtypes.GlobalConfig) scaffold.Options {
	opts := nf.opts
	opts.Path = path
	opts.PackageName = string(nf.packageName)
	opts.Rollback = !nf.noRollback
	opts.Verbose = cfg.Verbose
	opts.Quiet = cfg.Quiet

	file := &config.Config{}
	if cfg.Config != nil && cfg.Config.File != nil {
		file = cfg.Config.File
	}
	defaults := scaffold.DefaultOptions()

	resolve := func(key, flag string, value *string, fromFile, def string) config.ResolvedValue {
		rv := config.ResolveString(config.ResolveOptions{
			Key:         key,
			FlagValue:   *value,
			FlagSet:     c.Flags().Changed(flag),
			ConfigValue: fromFile,
			Default:     def,
		})
		*value, _ = rv.Value.(string)
		return rv
	}

	config.LogResolvedValues([]config.ResolvedValue{
		resolve("version", "version", &opts.Version, file.Version, defaults.Version),
		resolve("binName", "bin-name", &opts.BinName, file.BinName, defaults.BinName),
		resolve("edition", "edition", &opts.Edition, file.Edition, defaults.Edition),
		resolve("toolchain", "toolchain", &opts.Toolchain, file.Toolchain, defaults.Toolchain),
	})

	opts.Baseline = append([]string(nil), cfg.Settings().Baseline...)
	return opts
}

// invocation reconstructs the command line from the flags that were set.
func invocation(c *cobra.Command, args []string) []string {
	argv := []string{c.Name()}
	c.Flags().Visit(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			for _, v := range sv.GetSlice() {
				argv = append(argv, "--"+f.Name, v)
			}
			return
		}
		if f.Value.Type() == "bool" {
			if b, _ := strconv.ParseBool(f.Value.String()); b {
				argv = append(argv, "--"+f.Name)
			} else {
				argv = append(argv, "--"+f.Name+"=false")
			}
			return
		}
		argv = append(argv, "--"+f.Name, f.Value.String())
	})
	return append(argv, args...)
}

func recordHistory(cfg *cmdtypes.GlobalConfig, argv []string) {
	log, err := cfg.History()
	if err == nil {
		err = log.Record(time.Now(), argv)
	}
	if err != nil {
		output.Warn("could not record history", "err", err)
	}
}
