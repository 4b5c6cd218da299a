package templates

import (
	"errors"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

func sampleContext() Context {
	return Context{
		"crate_name":          "dummy9",
		"is_cargo_command":    false,
		"crate_version":       "0.0.1",
		"package_name":        "dummy9",
		"package_description": "",
		"struct_name":         "Dummy9",
		"craft_lib":           true,
		"craft_cli":           true,
		"craft_bare":          false,
		"crate_path":          "/tmp/dummy9",
		"lib_path":            "dummy9",
		"edition":             "2021",
		"toolchain":           "nightly",
		"crate_binaries": []map[string]any{
			{"name": "dummy9", "path": "dummy9.rs", "index": 0, "is_cargo": false, "subcommand": "", "doctest": false, "bench": false, "doc": false},
		},
		"crate_lib":          map[string]any{"name": "dummy9", "path": "dummy9/lib.rs", "doctest": false, "bench": false},
		"craft_value_enum":   false,
		"craft_subcommands":  false,
		"subcommands":        []map[string]any{},
		"craft_dependencies": []map[string]any{},
		"craft_errors": []map[string]any{
			{"name": "IOError", "source": "std::io::Error"},
		},
	}
}

func TestRegistryFilesAreEmbedded(t *testing.T) {
	for _, tmpl := range List() {
		t.Run(tmpl.ID, func(t *testing.T) {
			_, err := files.ReadFile(tmpl.File)
			require.NoError(t, err)
			assert.NotEmpty(t, tmpl.Description)
		})
	}
	assert.Len(t, List(), 12)
}

func TestGet(t *testing.T) {
	tmpl, err := Get(Package)
	require.NoError(t, err)
	assert.Equal(t, "files/package.rs.tmpl", tmpl.File)

	_, err = Get("nope")
	assert.Error(t, err)
	assert.Equal(t, "", Description("nope"))
}

func TestRenderEveryTemplate(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	for _, tmpl := range List() {
		t.Run(tmpl.ID, func(t *testing.T) {
			out, err := engine.Render(tmpl.ID, sampleContext())
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestRenderManifest(t *testing.T) {
	engine := MustEngine()

	ctx := sampleContext()
	ctx["package_description"] = `a "quoted" tool`
	out, err := engine.Render(Manifest, ctx)
	require.NoError(t, err)

	assert.Contains(t, out, `name = "dummy9"`)
	assert.Contains(t, out, `description = "a \"quoted\" tool"`)
	assert.Contains(t, out, "[lib]\nname = \"dummy9\"\npath = \"dummy9/lib.rs\"\ndoctest = false\nbench = false")
	assert.Contains(t, out, "[[bin]]\nname = \"dummy9\"\npath = \"dummy9.rs\"")
	assert.Contains(t, out, "doc = false")
}

func TestRenderManifestDescriptionEscaping(t *testing.T) {
	engine := MustEngine()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"control byte", "bell\x07 tool", "bell\x07 tool"},
		{"newline and tab", "line one\n\tline two", "line one\n\tline two"},
		{"backslash", `C:\tools`, `C:\tools`},
		{"invalid utf-8", "caf\xe9", "caf\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := sampleContext()
			ctx["package_description"] = tt.in
			out, err := engine.Render(Manifest, ctx)
			require.NoError(t, err)

			var doc struct {
				Package struct {
					Description string `toml:"description"`
				} `toml:"package"`
			}
			_, err = toml.Decode(out, &doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Package.Description)
		})
	}
}

func TestRenderErrorsFromDependencies(t *testing.T) {
	ctx := sampleContext()
	ctx["craft_errors"] = []map[string]any{
		{"name": "IOError", "source": "std::io::Error"},
		{"name": "ReqwestError", "source": "reqwest::Error"},
	}

	out, err := MustEngine().Render(Errors, ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "ReqwestError(reqwest::Error),")
	assert.Contains(t, out, "impl From<reqwest::Error> for Error {")
	assert.Contains(t, out, "Error::IOError(err) => write!(f, \"IOError: {}\", err),")
}

func TestRenderCLIWithSubcommands(t *testing.T) {
	ctx := sampleContext()
	ctx["crate_name"] = "cargo-dummy"
	ctx["is_cargo_command"] = true
	ctx["craft_value_enum"] = true
	ctx["craft_subcommands"] = true
	ctx["subcommands"] = []map[string]any{
		{"name": "Build", "lowercase": "build", "uppercase": "BUILD", "pascalcase": "Build"},
	}

	out, err := MustEngine().Render(CLI, ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "use clap::{Subcommand, ValueEnum};")
	assert.Contains(t, out, "CargoDummy(Cli),")
	assert.Contains(t, out, "Sub::Build => Command::Build,")
	assert.Contains(t, out, `env = "DUMMY9_NAME"`)

	readme, err := MustEngine().Render(Readme, ctx)
	require.NoError(t, err)
	assert.Contains(t, readme, "cargo dummy --help")
}

func TestRenderString(t *testing.T) {
	engine := MustEngine()
	ctx := sampleContext()

	tests := []struct {
		text string
		want string
	}{
		{"{{crate_name}}", "dummy9"},
		{"{{ .crate_name }}-cli", "dummy9-cli"},
		{"{{ upper crate_name }}", "DUMMY9"},
		{`{{ snake "HelloWorld" }}`, "hello_world"},
		{`{{ kebab "HelloWorld" }}`, "hello-world"},
		{"static", "static"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := engine.RenderString(tt.text, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderFailures(t *testing.T) {
	engine := MustEngine()

	_, err := engine.Render("missing.rs", sampleContext())
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrTemplate))

	_, err = engine.Render(Lib, Context{"crate_name": "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrTemplate))

	_, err = engine.RenderString("{{ .nope }}", sampleContext())
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrTemplate))

	_, err = engine.RenderString("{{ unclosed", sampleContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TemplateError")
}
