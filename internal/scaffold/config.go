package scaffold

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"

	"github.com/cargocraft/cli/internal/dependency"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/naming"
)

var editions = []string{"2015", "2018", "2021", "2024"}

// Config is the validated, immutable form of Options. Build it with
// NewConfig and pass it by pointer.
type Config struct {
	opts        Options
	projectPath string
	crateName   string
	packageName string
	structName  string
	deps        []*dependency.Descriptor
	bins        []string
}

// NewConfig validates opts against fsys and derives the crate identifiers.
// Unless opts.Force is set, a target that already holds a Cargo.toml is
// rejected.
func NewConfig(fsys afero.Fs, opts Options) (*Config, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, oerrors.NewValidationError("a target path is required", "", "path", "")
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, oerrors.IO("resolving", opts.Path, err)
	}

	project := abs
	if opts.Force {
		if filepath.Base(project) == naming.ManifestFile {
			if isDir, _ := afero.IsDir(fsys, project); !isDir {
				project = filepath.Dir(project)
			}
		}
	} else {
		if project, err = naming.ValidManifestPath(fsys, abs); err != nil {
			return nil, err
		}
	}

	c := &Config{opts: opts, projectPath: project}
	c.opts.Deps = slices.Clone(opts.Deps)
	c.opts.Subcommands = slices.Clone(opts.Subcommands)
	c.opts.Baseline = slices.Clone(opts.Baseline)

	c.crateName = naming.CrateNameFromPath(project)
	if _, err := naming.AcceptableCrateName(c.crateName); err != nil {
		return nil, invalid("path",
			oerrors.Newf(oerrors.KindParse, "%q is not a valid crate name", filepath.Base(project)),
			"Choose a directory name that starts with a letter.")
	}

	pkg := naming.PackageNameFromStringOrPath(opts.PackageName, project)
	if c.packageName, err = naming.ValidPackageName(pkg); err != nil {
		return nil, invalid("package-name", err, "")
	}
	c.structName = naming.StructNameFromPackageName(c.packageName)

	if c.opts.Version == "" {
		c.opts.Version = DefaultVersion
	}
	if _, err := semver.StrictNewVersion(c.opts.Version); err != nil {
		return nil, invalid("version", oerrors.WithCause(oerrors.KindParse, err, "invalid version %q", c.opts.Version), "Use MAJOR.MINOR.PATCH.")
	}

	if c.opts.BinName == "" {
		c.opts.BinName = DefaultBinName
	}
	if c.opts.Edition == "" {
		c.opts.Edition = DefaultEdition
	}
	if !slices.Contains(editions, c.opts.Edition) {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("unknown edition %q", c.opts.Edition), "", "edition",
			"Valid editions: "+strings.Join(editions, ", "))
	}
	if c.opts.Toolchain == "" {
		c.opts.Toolchain = DefaultToolchain
	}

	if c.deps, err = dependency.ParseAll(opts.Deps); err != nil {
		return nil, err
	}
	if _, err := dependency.ParseAll(opts.Baseline); err != nil {
		return nil, err
	}

	for _, raw := range opts.Bins {
		name, err := naming.ValidCrateName(raw)
		if err != nil {
			return nil, invalid("bin", err, "")
		}
		if !slices.Contains(c.bins, name) {
			c.bins = append(c.bins, name)
		}
	}
	c.opts.Bins = slices.Clone(c.bins)

	for _, sub := range opts.Subcommands {
		if naming.ToPascalCase(sub) == "" {
			return nil, oerrors.NewValidationError(fmt.Sprintf("invalid subcommand %q", sub), "", "subcommand", "")
		}
	}

	if opts.Bare && len(c.bins) > 0 {
		return nil, oerrors.NewValidationError("--bare cannot be combined with --bin", "", "bare",
			"A bare crate has a single src/main.rs binary.")
	}

	return c, nil
}

func invalid(field string, err error, hint string) error {
	return &oerrors.DetailError{
		Type:    "validation failed",
		Message: err.Error(),
		Field:   field,
		Hint:    hint,
		Cause:   err,
	}
}

// Options returns a copy of the options the config was built from, with
// defaults filled in.
func (c *Config) Options() Options {
	out := c.opts
	out.Deps = slices.Clone(c.opts.Deps)
	out.Bins = slices.Clone(c.opts.Bins)
	out.Subcommands = slices.Clone(c.opts.Subcommands)
	out.Baseline = slices.Clone(c.opts.Baseline)
	return out
}

// ProjectPath is the absolute directory the crate is generated in.
func (c *Config) ProjectPath() string { return c.projectPath }

// CrateName is the kebab-case crate name.
func (c *Config) CrateName() string { return c.crateName }

// PackageName is the snake_case package name.
func (c *Config) PackageName() string { return c.packageName }

// StructName is the PascalCase name of the generated entry type.
func (c *Config) StructName() string { return c.structName }

func (c *Config) Version() string     { return c.opts.Version }
func (c *Config) Description() string { return c.opts.Description }
func (c *Config) Edition() string     { return c.opts.Edition }
func (c *Config) Toolchain() string   { return c.opts.Toolchain }
func (c *Config) Bare() bool          { return c.opts.Bare }
func (c *Config) Main() bool          { return c.opts.Main }
func (c *Config) Force() bool         { return c.opts.Force }
func (c *Config) Rollback() bool      { return c.opts.Rollback }
func (c *Config) Offline() bool       { return c.opts.Offline }
func (c *Config) Script() bool        { return c.opts.Script }
func (c *Config) Doc() bool           { return c.opts.Doc }

// Deps returns the parsed user dependencies.
func (c *Config) Deps() []*dependency.Descriptor {
	return slices.Clone(c.deps)
}

// Baseline returns the dependencies every crate receives.
func (c *Config) Baseline() ([]*dependency.Descriptor, error) {
	return dependency.Baseline(c.IsCLI() || c.opts.Bare, c.opts.Baseline)
}

// ExplicitBins returns the validated --bin names in the order given.
func (c *Config) ExplicitBins() []string {
	return slices.Clone(c.bins)
}

// Subcommands returns the requested subcommand names.
func (c *Config) Subcommands() []string {
	return slices.Clone(c.opts.Subcommands)
}

// IsCLI reports whether the crate ships at least one binary.
func (c *Config) IsCLI() bool {
	return c.opts.CLI || len(c.bins) > 0
}

// ValueEnum reports whether the binary gets a clap ValueEnum.
func (c *Config) ValueEnum() bool {
	return c.IsCLI() && c.opts.ValueEnum
}

// LibPath is the library directory relative to the project root.
func (c *Config) LibPath() string {
	if c.opts.Main {
		return "src"
	}
	if c.opts.LibPath != "" {
		return naming.CrateNameFrom(c.opts.LibPath)
	}
	return c.crateName
}

// BinPath is the absolute directory binaries are written to.
func (c *Config) BinPath() string {
	return filepath.Join(c.projectPath, c.binDir())
}

func (c *Config) binDir() string {
	switch {
	case c.opts.BinPath != "":
		return filepath.Clean(c.opts.BinPath)
	case c.opts.Main:
		return "src"
	default:
		return ""
	}
}
