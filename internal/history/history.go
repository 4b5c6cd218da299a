// Package history keeps a plain-text log of cargo-craft invocations, newest
// first.
package history

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

// maxLineSize bounds a single history line.
const maxLineSize = 16 << 20

// Entry is one logged invocation.
type Entry struct {
	Time time.Time
	Args string
}

// Line formats an invocation as "<RFC3339> <argv...>". Arguments that do not
// start with "-" are quoted.
func Line(now time.Time, argv []string) string {
	parts := make([]string, 0, len(argv)+1)
	parts = append(parts, now.Format(time.RFC3339))
	for _, arg := range argv {
		if strings.HasPrefix(arg, "-") {
			parts = append(parts, arg)
			continue
		}
		parts = append(parts, strconv.Quote(arg))
	}
	return strings.Join(parts, " ")
}

// Parse splits a history line into its timestamp and argument text.
func Parse(line string) (Entry, error) {
	stamp, rest, _ := strings.Cut(line, " ")
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return Entry{}, oerrors.WithCause(oerrors.KindParse, err, "history line %q has no timestamp", line)
	}
	return Entry{Time: t, Args: rest}, nil
}

// Log is the history file.
type Log struct {
	fs   afero.Fs
	path string
}

// NewLog returns the history log at path.
func NewLog(fsys afero.Fs, path string) *Log {
	return &Log{fs: fsys, path: path}
}

// Path returns the log's location.
func (l *Log) Path() string {
	return l.path
}

// Record prepends an invocation to the log. The whole file is rewritten.
func (l *Log) Record(now time.Time, argv []string) error {
	existing, err := afero.ReadFile(l.fs, l.path)
	if err != nil && !os.IsNotExist(err) {
		return oerrors.IO("reading", l.path, err)
	}

	var buf bytes.Buffer
	buf.WriteString(Line(now, argv))
	buf.WriteByte('\n')
	buf.Write(existing)

	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return oerrors.IO("creating directory for", l.path, err)
	}
	if err := afero.WriteFile(l.fs, l.path, buf.Bytes(), 0o644); err != nil {
		return oerrors.IO("writing", l.path, err)
	}
	return nil
}

// Read returns up to limit lines, newest first. A limit of zero or less
// returns every line. A missing file has no lines.
func (l *Log) Read(limit int) ([]string, error) {
	f, err := l.fs.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oerrors.IO("opening", l.path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if limit > 0 && len(lines) >= limit {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, oerrors.IO("reading", l.path, err)
	}
	return lines, nil
}
