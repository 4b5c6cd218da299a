// Package render writes a scaffold plan to disk: each template is rendered
// once and its output copied to every planned target.
package render

import (
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/manifest"
	"github.com/cargocraft/cli/internal/output"
	"github.com/cargocraft/cli/internal/scaffold"
	"github.com/cargocraft/cli/internal/templates"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Pipeline renders plans through a Renderer onto a filesystem.
type Pipeline struct {
	fs       afero.Fs
	renderer templates.Renderer
}

// NewPipeline creates a Pipeline.
func NewPipeline(fsys afero.Fs, r templates.Renderer) *Pipeline {
	return &Pipeline{fs: fsys, renderer: r}
}

// Run writes the manifest and then every step, returning the absolute paths
// written in plan order.
func (p *Pipeline) Run(plan *scaffold.Plan, ctx templates.Context) ([]string, error) {
	path, err := p.WriteManifest(plan, ctx)
	if err != nil {
		return nil, err
	}

	written, err := p.Execute(plan, ctx)
	return append([]string{path}, written...), err
}

// WriteManifest renders Cargo.toml, checks that it decodes and names the
// crate, and writes it.
func (p *Pipeline) WriteManifest(plan *scaffold.Plan, ctx templates.Context) (string, error) {
	text, err := p.renderer.Render(templates.Manifest, ctx)
	if err != nil {
		return "", err
	}

	crate, _ := ctx["crate_name"].(string)
	if _, err := manifest.Validate(text, crate); err != nil {
		return "", err
	}

	target := filepath.Join(plan.Root, plan.Manifest.Path)
	if err := p.write(target, text); err != nil {
		return "", err
	}
	return target, nil
}

// Execute renders each step once and writes it to all of its entries. A
// template failure stops immediately. A write failure names the path and
// leaves earlier files in place. The returned paths are those written before
// any failure.
func (p *Pipeline) Execute(plan *scaffold.Plan, ctx templates.Context) ([]string, error) {
	var written []string

	for _, step := range plan.Steps {
		targets := nonEmpty(step.Entries)
		if len(targets) == 0 {
			output.Debug("skipping template without targets", "template", step.Template)
			continue
		}

		text, err := p.renderer.Render(step.Template, ctx)
		if err != nil {
			return written, err
		}

		for _, e := range targets {
			target := filepath.Join(plan.Root, e.Path)
			if err := p.write(target, text); err != nil {
				return written, err
			}
			written = append(written, target)
		}
	}

	return written, nil
}

func (p *Pipeline) write(path, text string) error {
	if err := p.fs.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return oerrors.IO("creating directory for", path, err)
	}
	if err := afero.WriteFile(p.fs, path, []byte(text), fileMode); err != nil {
		return oerrors.IO("writing", path, err)
	}
	output.Debug("wrote file", "path", path)
	return nil
}

func nonEmpty(entries []scaffold.Entry) []scaffold.Entry {
	out := make([]scaffold.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Path != "" {
			out = append(out, e)
		}
	}
	return out
}

// Preview maps each planned path, relative to the project root, to the
// description of the template that produces it.
func Preview(plan *scaffold.Plan) map[string]string {
	files := map[string]string{
		plan.Manifest.Path: templates.Description(templates.Manifest),
	}
	for _, step := range plan.Steps {
		for _, e := range nonEmpty(step.Entries) {
			files[e.Path] = templates.Description(step.Template)
		}
	}
	return files
}
