package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/naming"
	"github.com/cargocraft/cli/internal/templates"
)

// Step pairs a template with every file it is written to. A step with no
// entries is skipped by the pipeline.
type Step struct {
	Template string
	Entries  []Entry
}

// Plan is the ordered list of files to generate for one crate. It holds no
// filesystem handles; building it twice from the same Config yields equal
// plans.
type Plan struct {
	// Root is the absolute project directory all entry paths are relative to.
	Root string

	// Manifest is rendered and written before any step.
	Manifest Entry

	Steps []Step
}

// Paths returns every planned path relative to Root, manifest first.
func (p *Plan) Paths() []string {
	paths := []string{p.Manifest.Path}
	for _, s := range p.Steps {
		for _, e := range s.Entries {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Planner builds plans. It needs a renderer to expand the default binary
// name template.
type Planner struct {
	renderer templates.Renderer
}

// NewPlanner creates a Planner.
func NewPlanner(r templates.Renderer) *Planner {
	return &Planner{renderer: r}
}

// BinNames returns the explicit binary names, or the rendered default binary
// name when none were given. The rendered name is normalized and validated
// like an explicit --bin.
func (p *Planner) BinNames(cfg *Config) ([]string, error) {
	if bins := cfg.ExplicitBins(); len(bins) > 0 {
		return bins, nil
	}

	name, err := p.renderer.RenderString(cfg.Options().BinName, InfoContext(cfg))
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, oerrors.Newf(oerrors.KindTemplate, "binary name template %q rendered empty", cfg.Options().BinName)
	}
	valid, err := naming.ValidCrateName(name)
	if err != nil {
		return nil, invalid("bin-name", err, "The rendered binary name must be a valid crate name.")
	}
	return []string{valid}, nil
}

// Binaries returns the [[bin]] entries for cfg. Crates without a command
// line have none.
func (p *Planner) Binaries(cfg *Config) ([]BinaryEntry, error) {
	if !cfg.IsCLI() {
		return nil, nil
	}

	names, err := p.BinNames(cfg)
	if err != nil {
		return nil, err
	}

	dir := cfg.binDir()
	out := make([]BinaryEntry, 0, len(names))
	for i, name := range names {
		file := name + ".rs"
		if cfg.Main() && len(names) == 1 {
			file = "main.rs"
		}
		out = append(out, newBinaryEntry(i, name, filepath.Join(dir, file)))
	}
	return out, nil
}

// LibEntry returns the [lib] entry, or false for bare crates.
func (p *Planner) LibEntry(cfg *Config) (Entry, bool) {
	if cfg.Bare() {
		return Entry{}, false
	}
	return Entry{
		Name: cfg.PackageName(),
		Path: filepath.Join(cfg.LibPath(), templates.Lib),
	}, true
}

// Build computes the plan for cfg.
func (p *Planner) Build(cfg *Config) (*Plan, error) {
	plan := &Plan{
		Root:     cfg.ProjectPath(),
		Manifest: Entry{Name: templates.Manifest, Path: naming.ManifestFile},
	}

	if cfg.Bare() {
		plan.Steps = append(plan.Steps,
			single(templates.BareMain, filepath.Join("src", "main.rs")),
			single(templates.BareCLI, filepath.Join("src", "cli.rs")),
		)
	} else {
		lib := cfg.LibPath()
		plan.Steps = append(plan.Steps,
			single(templates.Lib, filepath.Join(lib, "lib.rs")),
			single(templates.Dispatch, filepath.Join(lib, "dispatch.rs")),
			single(templates.Package, filepath.Join(lib, cfg.PackageName()+".rs")),
			single(templates.Errors, filepath.Join(lib, "errors.rs")),
		)

		bins, err := p.Binaries(cfg)
		if err != nil {
			return nil, err
		}
		step := Step{Template: templates.CLI}
		for _, b := range bins {
			step.Entries = append(step.Entries, b.Entry)
		}
		plan.Steps = append(plan.Steps, step)
	}

	plan.Steps = append(plan.Steps,
		single(templates.GitIgnore, ".gitignore"),
		single(templates.RustFmt, ".rustfmt.toml"),
		single(templates.Toolchain, "rust-toolchain.toml"),
		single(templates.Readme, "README.md"),
	)

	if err := checkCollisions(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// checkCollisions fails when two entries would be written to the same file,
// such as a --main binary named after a library module.
func checkCollisions(plan *Plan) error {
	seen := make(map[string]bool)
	for _, path := range plan.Paths() {
		clean := filepath.Clean(path)
		if seen[clean] {
			return oerrors.NewValidationError(
				fmt.Sprintf("%s would be generated more than once", clean), "", "bin",
				"Rename the binary or move binaries with --bin-path.")
		}
		seen[clean] = true
	}
	return nil
}

func single(template, path string) Step {
	return Step{
		Template: template,
		Entries:  []Entry{{Name: filepath.Base(path), Path: path}},
	}
}
