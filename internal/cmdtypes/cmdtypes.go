// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/receipts, internal/cmd/config).
package cmdtypes

import (
	"github.com/spf13/afero"

	"github.com/cargocraft/cli/internal/config"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/history"
	"github.com/cargocraft/cli/internal/receipt"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config     *config.CraftConfig
	ConfigFlag string // raw --config flag value
	Verbose    bool
	Quiet      bool

	// Fs backs the history and receipt logs. Nil means the OS filesystem.
	Fs afero.Fs
}

// FS returns the filesystem commands read and write through.
func (g *GlobalConfig) FS() afero.Fs {
	if g.Fs == nil {
		return afero.NewOsFs()
	}
	return g.Fs
}

// Settings returns the merged configuration, or the defaults when no
// configuration has been resolved.
func (g *GlobalConfig) Settings() *config.Config {
	if g.Config == nil || g.Config.Config == nil {
		return config.DefaultConfig()
	}
	return g.Config.Config
}

// Receipts opens the receipts log named by the configuration.
func (g *GlobalConfig) Receipts() (*receipt.Log, error) {
	path, err := config.ExpandPath(g.Settings().ReceiptsFile)
	if err != nil {
		return nil, oerrors.IO("expanding", g.Settings().ReceiptsFile, err)
	}
	return receipt.NewLog(g.FS(), path), nil
}

// History opens the history log named by the configuration.
func (g *GlobalConfig) History() (*history.Log, error) {
	path, err := config.ExpandPath(g.Settings().HistoryFile)
	if err != nil {
		return nil, oerrors.IO("expanding", g.Settings().HistoryFile, err)
	}
	return history.NewLog(g.FS(), path), nil
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess            = oerrors.ExitSuccess
	ExitGeneralError       = oerrors.ExitGeneralError
	ExitValidationError    = oerrors.ExitValidationError
	ExitShellCommandError  = oerrors.ExitShellCommandError
	ExitIOError            = oerrors.ExitIOError
	ExitVerificationFailed = oerrors.ExitVerificationFailed
	ExitNotFound           = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// NewExitError wraps err with an exit code.
func NewExitError(err error, code int) *ExitError {
	return oerrors.NewExitError(err, code)
}
