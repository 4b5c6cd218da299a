// Package templates holds the embedded crate templates and renders them.
package templates

// Template identifiers. Each names a single embedded template.
const (
	Manifest  = "Cargo.toml"
	Lib       = "lib.rs"
	Dispatch  = "dispatch.rs"
	Package   = "{{package_name}}.rs"
	Errors    = "errors.rs"
	CLI       = "cli"
	BareMain  = "bare.main.rs"
	BareCLI   = "bare.mod.cli.rs"
	GitIgnore = ".gitignore"
	RustFmt   = ".rustfmt.toml"
	Toolchain = "rust-toolchain.toml"
	Readme    = "README.md"
)

// Template describes one embedded template.
type Template struct {
	// ID is the identifier plans refer to.
	ID string

	// File is the path inside the embedded filesystem.
	File string

	// Description is shown next to generated files in tree listings.
	Description string
}

// Context is the data a template is rendered with.
type Context = map[string]any

// Renderer renders templates by identifier or from inline text.
type Renderer interface {
	Render(id string, ctx Context) (string, error)
	RenderString(text string, ctx Context) (string, error)
}
