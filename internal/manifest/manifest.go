// Package manifest decodes and checks a rendered Cargo.toml before it is
// written to disk.
package manifest

import (
	"github.com/BurntSushi/toml"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

// Package is the [package] table.
type Package struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Edition     string `toml:"edition"`
	Description string `toml:"description,omitempty"`
}

// Target is a [lib] or [[bin]] table.
type Target struct {
	Name    string `toml:"name"`
	Path    string `toml:"path"`
	Doctest *bool  `toml:"doctest,omitempty"`
	Bench   *bool  `toml:"bench,omitempty"`
	Doc     *bool  `toml:"doc,omitempty"`
}

// Manifest is the subset of Cargo.toml cargo-craft generates.
type Manifest struct {
	Package      Package        `toml:"package"`
	Lib          *Target        `toml:"lib,omitempty"`
	Bin          []Target       `toml:"bin,omitempty"`
	Dependencies map[string]any `toml:"dependencies,omitempty"`
}

// Parse decodes a Cargo.toml document.
func Parse(data string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, oerrors.WithCause(oerrors.KindTemplate, err, "rendered Cargo.toml is not valid TOML")
	}
	return &m, nil
}

// Check verifies the manifest describes crateName and that every target
// has a name and a path.
func (m *Manifest) Check(crateName string) error {
	if m.Package.Name != crateName {
		return oerrors.Newf(oerrors.KindTemplate,
			"rendered Cargo.toml names package %q, expected %q", m.Package.Name, crateName)
	}
	if m.Package.Version == "" {
		return oerrors.New(oerrors.KindTemplate, "rendered Cargo.toml has no package version")
	}

	targets := m.Bin
	if m.Lib != nil {
		targets = append([]Target{*m.Lib}, targets...)
	}
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t.Name == "" || t.Path == "" {
			return oerrors.Newf(oerrors.KindTemplate, "rendered Cargo.toml has a target without name or path: %+v", t)
		}
		if seen[t.Path] {
			return oerrors.Newf(oerrors.KindTemplate, "rendered Cargo.toml lists %s twice", t.Path)
		}
		seen[t.Path] = true
	}
	return nil
}

// Validate parses data and checks it against crateName.
func Validate(data, crateName string) (*Manifest, error) {
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := m.Check(crateName); err != nil {
		return nil, err
	}
	return m, nil
}
