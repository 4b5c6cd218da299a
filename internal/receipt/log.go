package receipt

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
)

// Log is the receipts file. It is read and rewritten in full on every
// append, without locking.
type Log struct {
	fs   afero.Fs
	path string
}

// NewLog returns the receipts log at path.
func NewLog(fsys afero.Fs, path string) *Log {
	return &Log{fs: fsys, path: path}
}

// Path returns the log's location.
func (l *Log) Path() string {
	return l.path
}

// ReadAll returns every record, oldest first. A missing file has no records.
func (l *Log) ReadAll() ([]Receipt, error) {
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oerrors.IO("reading", l.path, err)
	}

	records, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if format != FormatLines {
		output.Debug("receipts log is not in json-lines layout", "path", l.path, "format", string(format))
	}
	return records, nil
}

// Get returns the record at a 1-based index.
func (l *Log) Get(index int) (*Receipt, error) {
	records, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(records) {
		return nil, oerrors.NewNotFoundError(
			"receipt not found",
			l.path,
			"run 'cargo-craft receipts list' to see available receipts",
		)
	}
	return &records[index-1], nil
}

// Append adds r to the log. Existing records in any readable layout are
// rewritten as JSON lines.
func (l *Log) Append(r *Receipt) error {
	records, err := l.ReadAll()
	if err != nil {
		return err
	}
	records = append(records, *r)

	data, err := Encode(records)
	if err != nil {
		return err
	}

	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return oerrors.IO("creating directory for", l.path, err)
	}
	if err := afero.WriteFile(l.fs, l.path, data, 0o644); err != nil {
		return oerrors.IO("writing", l.path, err)
	}
	return nil
}
