package orchestrator

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/receipt"
	"github.com/cargocraft/cli/internal/scaffold"
	"github.com/cargocraft/cli/internal/shell"
	"github.com/cargocraft/cli/internal/templates"
)

// fakeRunner records commands and returns a status per command line prefix.
type fakeRunner struct {
	commands []shell.Command
	status   map[string]int
	spawnErr map[string]error
}

func (r *fakeRunner) Run(_ context.Context, cmd shell.Command) (int, error) {
	r.commands = append(r.commands, cmd)
	line := cmd.String()
	for prefix, err := range r.spawnErr {
		if strings.HasPrefix(line, prefix) {
			return -1, err
		}
	}
	for prefix, code := range r.status {
		if strings.HasPrefix(line, prefix) {
			return code, nil
		}
	}
	return 0, nil
}

func (r *fakeRunner) lines() []string {
	out := make([]string, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.String()
	}
	return out
}

type fixture struct {
	fs       afero.Fs
	runner   *fakeRunner
	receipts *receipt.Log
	exits    []int
	orch     *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		fs:     afero.NewMemMapFs(),
		runner: &fakeRunner{},
	}
	f.receipts = receipt.NewLog(f.fs, "/home/u/.cargo-craft/receipts.jsonl")
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.orch = New(f.fs, f.runner, templates.MustEngine(),
		WithReceipts(f.receipts),
		WithExit(func(code int) { f.exits = append(f.exits, code) }),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	return f
}

func newConfig(t *testing.T, fsys afero.Fs, mutate func(*scaffold.Options)) *scaffold.Config {
	t.Helper()
	opts := scaffold.DefaultOptions()
	opts.Path = "/work/dummy9"
	if mutate != nil {
		mutate(&opts)
	}
	cfg, err := scaffold.NewConfig(fsys, opts)
	require.NoError(t, err)
	return cfg
}

func TestRunSuccess(t *testing.T) {
	f := newFixture(t)
	cfg := newConfig(t, f.fs, func(o *scaffold.Options) {
		o.CLI = true
		o.Deps = []string{"reqwest -Fjson", "k9 --dev"}
		o.Doc = true
	})

	result, err := f.orch.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "/work/dummy9", result.Root)
	assert.False(t, result.RolledBack)
	assert.Equal(t, "/work/dummy9/Cargo.toml", result.Files[0])

	lines := f.runner.lines()
	var rest []string
	for _, l := range lines {
		if strings.HasPrefix(l, "rustfmt ") {
			assert.True(t, strings.HasSuffix(l, ".rs"))
			continue
		}
		rest = append(rest, l)
	}
	assert.Equal(t, []string{
		"cargo add serde -Fderive",
		"cargo add clap -Fderive,env,string,unicode,wrap_help",
		"cargo add reqwest -Fjson",
		"cargo add k9 --dev",
		"cargo check",
		"cargo build",
		"cargo test",
		"cargo doc",
		"git init",
		"git add .",
	}, rest)

	for _, c := range f.runner.commands {
		assert.Equal(t, "/work/dummy9", c.Dir)
	}

	records, err := f.receipts.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Success)
	assert.Equal(t, "/work/dummy9", records[0].Options.Path)
	assert.Equal(t, result.Files, records[0].Files)
	assert.True(t, records[0].FinishedAt.After(records[0].StartedAt))
}

func TestRunOffline(t *testing.T) {
	f := newFixture(t)
	cfg := newConfig(t, f.fs, func(o *scaffold.Options) { o.Offline = true })

	_, err := f.orch.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Contains(t, f.runner.lines(), "cargo add serde -Fderive --offline")
	assert.Contains(t, f.runner.lines(), "cargo check --offline")
}

func TestFormatterFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	f.runner.status = map[string]int{"rustfmt": 1}
	cfg := newConfig(t, f.fs, nil)

	_, err := f.orch.Run(context.Background(), cfg)
	assert.NoError(t, err)
}

func TestCheckFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.runner.status = map[string]int{"cargo check": 101}
	cfg := newConfig(t, f.fs, nil)

	result, err := f.orch.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrShellCommand))
	assert.Equal(t, oerrors.ExitShellCommandError, oerrors.ExitCodeFromError(err))
	assert.Empty(t, f.exits)

	assert.True(t, result.RolledBack)
	exists, _ := afero.DirExists(f.fs, "/work/dummy9")
	assert.False(t, exists)
	assert.NotContains(t, f.runner.lines(), "cargo build")

	records, err := f.receipts.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	require.Len(t, records[0].Errors, 1)
	assert.Equal(t, oerrors.KindShellCommand, records[0].Errors[0].Kind)
}

func TestRollbackDisabled(t *testing.T) {
	f := newFixture(t)
	f.runner.status = map[string]int{"cargo add": 1}
	cfg := newConfig(t, f.fs, func(o *scaffold.Options) { o.Rollback = false })

	result, err := f.orch.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.False(t, result.RolledBack)

	exists, _ := afero.Exists(f.fs, "/work/dummy9/Cargo.toml")
	assert.True(t, exists)
}

func TestNoRollbackOfPreexistingDirectory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fs.MkdirAll("/work/dummy9", 0o755))
	require.NoError(t, afero.WriteFile(f.fs, "/work/dummy9/notes.txt", []byte("keep"), 0o644))
	f.runner.status = map[string]int{"git init": 128}
	cfg := newConfig(t, f.fs, nil)

	result, err := f.orch.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.False(t, result.RolledBack)

	exists, _ := afero.Exists(f.fs, "/work/dummy9/notes.txt")
	assert.True(t, exists)
}

func TestForceClearsExistingProject(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fs.MkdirAll("/work/dummy9", 0o755))
	require.NoError(t, afero.WriteFile(f.fs, "/work/dummy9/Cargo.toml", []byte("old"), 0o644))
	require.NoError(t, afero.WriteFile(f.fs, "/work/dummy9/stale.rs", []byte("old"), 0o644))
	cfg := newConfig(t, f.fs, func(o *scaffold.Options) { o.Force = true })

	_, err := f.orch.Run(context.Background(), cfg)
	require.NoError(t, err)

	exists, _ := afero.Exists(f.fs, "/work/dummy9/stale.rs")
	assert.False(t, exists)
	manifest, err := afero.ReadFile(f.fs, "/work/dummy9/Cargo.toml")
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `name = "dummy9"`)
}

func TestLaterStageFailureExits(t *testing.T) {
	f := newFixture(t)
	f.runner.status = map[string]int{"cargo test": 101}
	cfg := newConfig(t, f.fs, nil)

	_, err := f.orch.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, []int{oerrors.ExitVerificationFailed}, f.exits)
	assert.Equal(t, oerrors.ExitVerificationFailed, oerrors.ExitCodeFromError(err))
	assert.NotContains(t, f.runner.lines(), "git init")

	exists, err := afero.DirExists(f.fs, "/work/dummy9")
	require.NoError(t, err)
	assert.True(t, exists, "a failed later stage leaves the project for inspection")

	records, err := f.receipts.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
}

func TestLaterStageFailureRecordsReceiptBeforeExit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	runner := &fakeRunner{status: map[string]int{"cargo test": 101}}
	log := receipt.NewLog(fsys, "/home/u/.cargo-craft/receipts.jsonl")

	var code int
	orch := New(fsys, runner, templates.MustEngine(),
		WithReceipts(log),
		WithExit(func(c int) {
			code = c
			runtime.Goexit()
		}),
	)
	cfg := newConfig(t, fsys, nil)

	done := make(chan struct{})
	returned := false
	go func() {
		defer close(done)
		_, _ = orch.Run(context.Background(), cfg)
		returned = true
	}()
	<-done

	assert.False(t, returned)
	assert.Equal(t, oerrors.ExitVerificationFailed, code)

	records, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	require.Len(t, records[0].Errors, 1)
	assert.Equal(t, oerrors.KindShellCommand, records[0].Errors[0].Kind)
	assert.Contains(t, records[0].Errors[0].Message, "cargo test")
}

func TestSpawnFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.spawnErr = map[string]error{"cargo": oerrors.New(oerrors.KindShellCommand, "starting `cargo`")}
	cfg := newConfig(t, f.fs, nil)

	_, err := f.orch.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrShellCommand))
}

func TestScriptRunner(t *testing.T) {
	var buf strings.Builder
	fsys := afero.NewMemMapFs()
	orch := New(fsys, shell.NewScriptRunner(&buf), templates.MustEngine(), WithExit(func(int) {
		t.Fatal("exit called")
	}))
	cfg := newConfig(t, fsys, func(o *scaffold.Options) { o.Script = true })

	_, err := orch.Run(context.Background(), cfg)
	require.NoError(t, err)

	script := buf.String()
	assert.True(t, strings.HasPrefix(script, "cd /work/dummy9\n"))
	assert.Contains(t, script, "cargo add serde -Fderive\n")
	assert.Contains(t, script, "git add .\n")
}

func TestReceiptFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, f.receipts.Path(), []byte("corrupt"), 0o644))
	cfg := newConfig(t, f.fs, nil)

	_, err := f.orch.Run(context.Background(), cfg)
	assert.NoError(t, err)
}
