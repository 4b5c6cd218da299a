// Package dependency parses dependency specs such as "reqwest -Fblocking,json"
// into descriptors that drive `cargo add` and the generated error types.
package dependency

import (
	"io"
	"strings"

	"github.com/spf13/pflag"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/naming"
)

// Descriptor is a single parsed dependency.
type Descriptor struct {
	Name     string
	Features []string
	Dev      bool
	Build    bool
	Optional bool
}

// Parse reads a dependency spec of the form
// "<name> [-F<f1>,<f2>] [--dev | --build] [--optional]".
func Parse(raw string) (*Descriptor, error) {
	var (
		name     naming.CrateNameValue
		features string
		d        Descriptor
	)

	fs := pflag.NewFlagSet("dependency", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&features, "features", "F", "", "comma separated features")
	fs.BoolVar(&d.Dev, "dev", false, "add as a dev dependency")
	fs.BoolVar(&d.Build, "build", false, "add as a build dependency")
	fs.BoolVar(&d.Optional, "optional", false, "mark the dependency optional")

	if err := fs.Parse(strings.Fields(raw)); err != nil {
		return nil, oerrors.WithCause(oerrors.KindParse, err, "invalid dependency %q", raw)
	}

	args := fs.Args()
	switch len(args) {
	case 0:
		return nil, oerrors.Newf(oerrors.KindParse, "dependency %q has no crate name", raw)
	case 1:
	default:
		return nil, oerrors.Newf(oerrors.KindParse, "dependency %q names more than one crate: %s",
			raw, strings.Join(args, ", "))
	}

	if err := name.Set(args[0]); err != nil {
		return nil, err
	}
	if d.Dev && d.Build {
		return nil, oerrors.Newf(oerrors.KindParse, "dependency %q cannot be both --dev and --build", raw)
	}

	d.Name = name.String()
	d.Features = splitFeatures(features)
	return &d, nil
}

// ParseAll parses every spec, stopping at the first failure.
func ParseAll(specs []string) ([]*Descriptor, error) {
	out := make([]*Descriptor, 0, len(specs))
	for _, spec := range specs {
		d, err := Parse(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func splitFeatures(raw string) []string {
	var features []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	return features
}

// Fragment renders the descriptor as `cargo add` arguments in a fixed order.
func (d *Descriptor) Fragment() []string {
	args := []string{d.Name}
	if d.Dev {
		args = append(args, "--dev")
	}
	if d.Build {
		args = append(args, "--build")
	}
	if d.Optional {
		args = append(args, "--optional")
	}
	if len(d.Features) > 0 {
		args = append(args, "-F"+strings.Join(d.Features, ","))
	}
	return args
}

// String returns the fragment joined with spaces.
func (d *Descriptor) String() string {
	return strings.Join(d.Fragment(), " ")
}

// PackageName is the snake_case form used in `use` statements.
func (d *Descriptor) PackageName() string {
	return naming.PackageNameFrom(d.Name)
}

// PascalName is the PascalCase form used for generated type names.
func (d *Descriptor) PascalName() string {
	return naming.StructNameFromPackageName(d.Name)
}

// ErrorTypeName is the name of the error variant generated for this crate.
func (d *Descriptor) ErrorTypeName() string {
	return naming.ErrorTypeName(d.Name)
}

// Runtime reports whether the dependency is linked into the crate itself,
// rather than only its tests or build script.
func (d *Descriptor) Runtime() bool {
	return !d.Dev && !d.Build
}

// ContextEntry is the template view of the descriptor.
func (d *Descriptor) ContextEntry() map[string]any {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return map[string]any{
		"name":         d.Name,
		"package_name": d.PackageName(),
		"features":     features,
		"pascal_case":  d.PascalName(),
		"dev":          d.Dev,
		"build":        d.Build,
		"optional":     d.Optional,
	}
}
