package templates

import "fmt"

var registry = []Template{
	{ID: Manifest, File: "files/Cargo.toml.tmpl", Description: "Cargo manifest"},
	{ID: Lib, File: "files/lib.rs.tmpl", Description: "Library root"},
	{ID: Dispatch, File: "files/dispatch.rs.tmpl", Description: "Command dispatch"},
	{ID: Package, File: "files/package.rs.tmpl", Description: "Package entry type"},
	{ID: Errors, File: "files/errors.rs.tmpl", Description: "Error and Result types"},
	{ID: CLI, File: "files/cli.rs.tmpl", Description: "Binary entry point"},
	{ID: BareMain, File: "files/bare.main.rs.tmpl", Description: "Binary entry point"},
	{ID: BareCLI, File: "files/bare.mod.cli.rs.tmpl", Description: "Argument parser"},
	{ID: GitIgnore, File: "files/gitignore.tmpl", Description: "Git ignore rules"},
	{ID: RustFmt, File: "files/rustfmt.toml.tmpl", Description: "rustfmt settings"},
	{ID: Toolchain, File: "files/rust-toolchain.toml.tmpl", Description: "Toolchain pin"},
	{ID: Readme, File: "files/README.md.tmpl", Description: "Project readme"},
}

// Get returns a template by identifier.
func Get(id string) (Template, error) {
	for _, t := range registry {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q", id)
}

// List returns all templates in registration order.
func List() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)
	return out
}

// Description returns the description of id, or "" if it is unknown.
func Description(id string) string {
	t, err := Get(id)
	if err != nil {
		return ""
	}
	return t.Description
}
