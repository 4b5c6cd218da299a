package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

// ManifestFile is the manifest every generated crate is rooted at.
const ManifestFile = "Cargo.toml"

var (
	crateNamePattern   = regexp.MustCompile(`^[a-z]+([-][a-z0-9]+|[a-z0-9]+)+$`)
	packageNamePattern = regexp.MustCompile(`^[a-z]+([_][a-z0-9]+|[a-z0-9]+)+$`)
)

// AcceptableCrateName checks s against the crate-name pattern without
// normalizing it first.
func AcceptableCrateName(s string) (string, error) {
	if !crateNamePattern.MatchString(s) {
		return "", oerrors.Newf(oerrors.KindParse, "%q does not appear to be a valid crate name", s)
	}
	return s, nil
}

// ValidCrateName normalizes s and returns it if the result is a valid crate name.
func ValidCrateName(s string) (string, error) {
	name := CrateNameFrom(s)
	if !crateNamePattern.MatchString(name) {
		return "", oerrors.Newf(oerrors.KindParse, "%q is not a valid crate name", s)
	}
	return name, nil
}

// ValidPackageName returns s if it matches the package-name pattern.
func ValidPackageName(s string) (string, error) {
	if !packageNamePattern.MatchString(s) {
		return "", oerrors.Newf(oerrors.KindParse, "%q is not a valid package name", s)
	}
	return s, nil
}

// ValidManifestPath checks that raw can host a new crate. A path naming a
// Cargo.toml file resolves to its parent directory. It fails when the
// directory already holds a manifest file.
func ValidManifestPath(fsys afero.Fs, raw string) (string, error) {
	dir := filepath.Clean(raw)
	if filepath.Base(dir) == ManifestFile {
		if isDir, _ := afero.IsDir(fsys, dir); !isDir {
			dir = filepath.Dir(dir)
		}
	}

	manifest := filepath.Join(dir, ManifestFile)
	info, err := fsys.Stat(manifest)
	switch {
	case err == nil && !info.IsDir():
		return "", &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("%s already exists", manifest),
			Location: dir,
			Hint:     "Use --force to replace the existing directory.",
			Cause:    oerrors.ErrValidation,
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", oerrors.IO("inspecting", manifest, err)
	}
	return dir, nil
}
