package scaffold

import (
	"github.com/spf13/afero"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

// PrepareTarget reports whether the project directory existed before this
// run and, when Force is set, removes it.
func PrepareTarget(fsys afero.Fs, cfg *Config) (existed bool, err error) {
	existed, err = afero.Exists(fsys, cfg.ProjectPath())
	if err != nil {
		return false, oerrors.IO("inspecting", cfg.ProjectPath(), err)
	}

	if existed && cfg.Force() {
		if err := fsys.RemoveAll(cfg.ProjectPath()); err != nil {
			return existed, oerrors.IO("removing", cfg.ProjectPath(), err)
		}
	}
	return existed, nil
}
