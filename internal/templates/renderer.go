package templates

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Engine renders the embedded templates with text/template.
type Engine struct {
	set *template.Template
}

var _ Renderer = (*Engine)(nil)

// NewEngine parses every embedded template.
func NewEngine() (*Engine, error) {
	set := template.New("crate").Funcs(funcMap()).Option("missingkey=error")

	for _, t := range registry {
		content, err := files.ReadFile(t.File)
		if err != nil {
			return nil, oerrors.WithCause(oerrors.KindTemplate, err, "reading template %s", t.ID)
		}
		if _, err := set.New(t.ID).Parse(string(content)); err != nil {
			return nil, oerrors.WithCause(oerrors.KindTemplate, err, "parsing template %s", t.ID)
		}
	}

	return &Engine{set: set}, nil
}

// Render executes the template registered under id.
func (e *Engine) Render(id string, ctx Context) (string, error) {
	t := e.set.Lookup(id)
	if t == nil {
		return "", oerrors.Newf(oerrors.KindTemplate, "unknown template %q", id)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", oerrors.WithCause(oerrors.KindTemplate, err, "rendering %s", id)
	}
	return buf.String(), nil
}

// RenderString executes inline template text. Context keys are also exposed
// as functions, so "{{crate_name}}" and "{{ .crate_name }}" are equivalent.
func (e *Engine) RenderString(text string, ctx Context) (string, error) {
	funcs := funcMap()
	for key, value := range ctx {
		if !identifier.MatchString(key) {
			continue
		}
		funcs[key] = func() any { return value }
	}

	t, err := template.New("inline").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", oerrors.WithCause(oerrors.KindTemplate, err, "parsing %q", text)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", oerrors.WithCause(oerrors.KindTemplate, err, "rendering %q", text)
	}
	return buf.String(), nil
}

// MustEngine is NewEngine for callers that treat a broken embed as fatal.
func MustEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(fmt.Sprintf("templates: %v", err))
	}
	return e
}
