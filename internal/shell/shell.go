// Package shell runs the external tools a scaffold run depends on (cargo,
// rustfmt, git) or prints them as a script instead.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
)

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command as a shell line.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, Quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Runner executes commands and reports their exit status. An error is
// returned only when the process could not be started.
type Runner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands as child processes with stdin closed and output
// passed through.
type ExecRunner struct {
	// Stdout for command output. If nil, os.Stdout is used.
	Stdout io.Writer

	// Stderr for command errors. If nil, os.Stderr is used.
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner bound to the process's stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts cmd and waits for it.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (int, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = nil
	c.Stdout = r.stdout()
	c.Stderr = r.stderr()

	output.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, oerrors.WithCause(oerrors.KindShellCommand, err, "starting `%s`", cmd)
	}
	return 0, nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// SpinnerRunner runs commands behind a spinner with their output captured.
// The captured output is written to Stderr only when a command fails.
type SpinnerRunner struct {
	// Stderr receives the output of failed commands. If nil, os.Stderr is used.
	Stderr io.Writer
}

// NewSpinnerRunner creates a SpinnerRunner reporting failures on os.Stderr.
func NewSpinnerRunner() *SpinnerRunner {
	return &SpinnerRunner{Stderr: os.Stderr}
}

// Run starts cmd and waits for it.
func (r *SpinnerRunner) Run(ctx context.Context, cmd Command) (int, error) {
	var captured bytes.Buffer
	inner := &ExecRunner{Stdout: &captured, Stderr: &captured}

	code := -1
	err := output.RunWithSpinner(ctx, cmd.String(), func(ctx context.Context) error {
		var runErr error
		code, runErr = inner.Run(ctx, cmd)
		return runErr
	})
	if err != nil {
		if _, ok := oerrors.KindOf(err); !ok {
			err = oerrors.WithCause(oerrors.KindShellCommand, err, "running `%s`", cmd)
		}
		return -1, err
	}

	if code != 0 {
		w := r.Stderr
		if w == nil {
			w = os.Stderr
		}
		_, _ = w.Write(captured.Bytes())
	}
	return code, nil
}

// ScriptRunner prints each command as a line of shell instead of running it.
// Every command reports success.
type ScriptRunner struct {
	Out io.Writer

	dir string
}

// NewScriptRunner creates a ScriptRunner writing to out.
func NewScriptRunner(out io.Writer) *ScriptRunner {
	return &ScriptRunner{Out: out}
}

// Run prints cmd, preceded by a cd line when the directory changes.
func (r *ScriptRunner) Run(_ context.Context, cmd Command) (int, error) {
	if cmd.Dir != "" && cmd.Dir != r.dir {
		if _, err := fmt.Fprintf(r.Out, "cd %s\n", Quote(cmd.Dir)); err != nil {
			return -1, oerrors.WithCause(oerrors.KindIO, err, "writing script")
		}
		r.dir = cmd.Dir
	}
	if _, err := fmt.Fprintln(r.Out, cmd.String()); err != nil {
		return -1, oerrors.WithCause(oerrors.KindIO, err, "writing script")
	}
	return 0, nil
}

var safeWord = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// Quote returns s quoted for a POSIX shell when it contains special characters.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if safeWord.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
