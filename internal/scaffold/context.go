package scaffold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cargocraft/cli/internal/naming"
	"github.com/cargocraft/cli/internal/templates"
)

// ErrorType is a variant of the generated Error enum.
type ErrorType struct {
	Name   string
	Source string

	// Feature gates the variant when the dependency is optional.
	Feature string
}

// InfoContext holds the identifiers every template can use, including the
// default binary name template.
func InfoContext(cfg *Config) templates.Context {
	return templates.Context{
		"crate_name":          cfg.CrateName(),
		"is_cargo_command":    strings.HasPrefix(cfg.CrateName(), cargoPrefix),
		"crate_version":       cfg.Version(),
		"package_name":        cfg.PackageName(),
		"package_description": cfg.Description(),
		"struct_name":         cfg.StructName(),
		"craft_lib":           !cfg.Bare(),
		"craft_cli":           cfg.IsCLI() || cfg.Bare(),
		"craft_bare":          cfg.Bare(),
		"crate_path":          cfg.ProjectPath(),
		"lib_path":            cfg.LibPath(),
		"edition":             cfg.Edition(),
		"toolchain":           cfg.Toolchain(),
	}
}

// Context returns the full template context for cfg.
func (p *Planner) Context(cfg *Config) (templates.Context, error) {
	ctx := InfoContext(cfg)

	bins, err := p.Binaries(cfg)
	if err != nil {
		return nil, err
	}
	binaries := make([]map[string]any, 0, len(bins))
	for _, b := range bins {
		binaries = append(binaries, b.ContextMap())
	}
	ctx["crate_binaries"] = binaries

	var lib map[string]any
	if entry, ok := p.LibEntry(cfg); ok {
		lib = entry.ContextMap()
	}
	ctx["crate_lib"] = lib

	subs := SubcommandVariants(cfg.Subcommands())
	ctx["craft_value_enum"] = cfg.ValueEnum()
	ctx["craft_subcommands"] = len(subs) > 0
	ctx["subcommands"] = subs

	deps := make([]map[string]any, 0, len(cfg.Deps()))
	for _, d := range cfg.Deps() {
		deps = append(deps, d.ContextEntry())
	}
	ctx["craft_dependencies"] = deps

	errs := make([]map[string]any, 0)
	for _, e := range ErrorTypes(cfg) {
		errs = append(errs, map[string]any{"name": e.Name, "source": e.Source, "feature": e.Feature})
	}
	ctx["craft_errors"] = errs

	return ctx, nil
}

// SubcommandVariants returns the case variants templates use for each
// subcommand name.
func SubcommandVariants(names []string) []map[string]any {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{
			"name":       name,
			"lowercase":  lower.String(name),
			"uppercase":  upper.String(name),
			"pascalcase": naming.ToPascalCase(name),
		})
	}
	return out
}

// ErrorTypes lists the Error variants: IOError first, then one per runtime
// dependency. Optional dependencies are only linked with their feature
// enabled, so their variants carry the feature name.
func ErrorTypes(cfg *Config) []ErrorType {
	out := []ErrorType{{Name: "IOError", Source: "std::io::Error"}}
	seen := map[string]bool{"IOError": true}

	for _, d := range cfg.Deps() {
		if !d.Runtime() {
			continue
		}
		name := d.ErrorTypeName()
		if seen[name] {
			continue
		}
		seen[name] = true
		et := ErrorType{Name: name, Source: d.PackageName() + "::Error"}
		if d.Optional {
			et.Feature = d.Name
		}
		out = append(out, et)
	}
	return out
}
