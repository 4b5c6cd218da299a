package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargocraft/cli/internal/cmdtypes"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/history"
	"github.com/cargocraft/cli/internal/receipt"
	"github.com/cargocraft/cli/internal/testutil"
)

type harness struct {
	home string
	fs   afero.Fs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{home: testutil.Isolate(t), fs: afero.NewMemMapFs()}
}

func (h *harness) run(t *testing.T, args ...string) testutil.Result {
	t.Helper()
	root := newRootCmd(&cmdtypes.GlobalConfig{Fs: h.fs})
	return testutil.Execute(t, root, args...)
}

func (h *harness) receipts() *receipt.Log {
	return receipt.NewLog(h.fs, filepath.Join(h.home, ".cargo-craft", "receipts.jsonl"))
}

func (h *harness) history() *history.Log {
	return history.NewLog(h.fs, filepath.Join(h.home, ".cargo-craft", "history"))
}

func TestRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "cargo-craft", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{"config", "verbose", "quiet", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"new", "history", "receipts", "config", "version"})
}

func TestNewScript(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, "new", "/work/dummy9", "--cli", "--dep", "reqwest -Fjson", "--script")
	require.NoError(t, res.Err)

	assert.True(t, strings.HasPrefix(res.Stdout, "cd /work/dummy9\n"))
	assert.Contains(t, res.Stdout, "cargo add serde -Fderive\n")
	assert.Contains(t, res.Stdout, "cargo add reqwest -Fjson\n")
	assert.Contains(t, res.Stdout, "cargo check\n")
	assert.Contains(t, res.Stdout, "git add .\n")
	assert.NotContains(t, res.Stdout, "✔", "script output stays runnable")

	manifest, err := afero.ReadFile(h.fs, "/work/dummy9/Cargo.toml")
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `name = "dummy9"`)
	assert.Contains(t, string(manifest), `edition = "2021"`)

	records, err := h.receipts().ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Success)
	assert.True(t, records[0].Options.CLI)
	assert.Equal(t, []string{"reqwest -Fjson"}, records[0].Options.Deps)

	lines, err := h.history().Read(0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	entry, err := history.Parse(lines[0])
	require.NoError(t, err)
	assert.Contains(t, entry.Args, `"new"`)
	assert.Contains(t, entry.Args, `--dep "reqwest -Fjson"`)
	assert.Contains(t, entry.Args, "--cli")
	assert.Contains(t, entry.Args, `"/work/dummy9"`)
}

func TestNewDryRun(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, "new", "/work/dummy9", "--dry-run")
	require.NoError(t, res.Err)

	assert.Contains(t, res.Stdout, "Cargo.toml")
	assert.Contains(t, res.Stdout, "lib.rs")
	assert.Contains(t, res.Stdout, "rust-toolchain.toml")

	exists, err := afero.Exists(h.fs, "/work/dummy9")
	require.NoError(t, err)
	assert.False(t, exists)

	records, err := h.receipts().ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad version", []string{"new", "/work/dummy9", "--version", "1.0"}, oerrors.ErrParse},
		{"bad edition", []string{"new", "/work/dummy9", "--edition", "2020"}, oerrors.ErrValidation},
		{"bad dependency", []string{"new", "/work/dummy9", "--dep", "k9 --dev --build"}, oerrors.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			res := h.run(t, tt.args...)
			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, tt.want)
		})
	}
}

func TestNewRejectsInvalidPackageName(t *testing.T) {
	h := newHarness(t)
	res := h.run(t, "new", "/work/dummy9", "--package-name", "9")
	assert.Error(t, res.Err)
}

func TestNewSettingsPrecedence(t *testing.T) {
	h := newHarness(t)
	testutil.WriteFile(t, filepath.Join(h.home, ".cargo-craft"), "config.yaml",
		"edition: \"2018\"\ntoolchain: stable\nversion: 1.2.3\n")
	t.Setenv("CARGO_CRAFT_TOOLCHAIN", "beta")

	res := h.run(t, "new", "/work/dummy9", "--script", "--edition", "2024")
	require.NoError(t, res.Err)

	manifest, err := afero.ReadFile(h.fs, "/work/dummy9/Cargo.toml")
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `edition = "2024"`, "flag wins over config")
	assert.Contains(t, string(manifest), `version = "1.2.3"`, "config wins over default")

	toolchain, err := afero.ReadFile(h.fs, "/work/dummy9/rust-toolchain.toml")
	require.NoError(t, err)
	assert.Contains(t, string(toolchain), `channel = "beta"`, "env wins over config")
}

func TestNewExistingProject(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.fs.MkdirAll("/work/dummy9", 0o755))
	require.NoError(t, afero.WriteFile(h.fs, "/work/dummy9/Cargo.toml", []byte("[package]\n"), 0o644))

	res := h.run(t, "new", "/work/dummy9", "--script")
	require.Error(t, res.Err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(res.Err))

	res = h.run(t, "new", "/work/dummy9", "--script", "--force")
	require.NoError(t, res.Err)
}

func TestHistory(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, "history")
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)

	log := h.history()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(base, []string{"new", "first"}))
	require.NoError(t, log.Record(base.Add(time.Minute), []string{"new", "second"}))

	res = h.run(t, "history")
	require.NoError(t, res.Err)
	out := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, out, 2)
	assert.Contains(t, out[0], `"second"`)
	assert.Contains(t, out[1], `"first"`)

	res = h.run(t, "history", "-n", "1")
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Stdout, "first")
}

func TestVersionCmd(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, "version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "cargo-craft version")
	assert.Contains(t, res.Stdout, "CUE SDK")
}

func TestInvocation(t *testing.T) {
	root := newRootCmd(&cmdtypes.GlobalConfig{Fs: afero.NewMemMapFs()})
	newCmd, _, err := root.Find([]string{"new"})
	require.NoError(t, err)

	require.NoError(t, newCmd.ParseFlags([]string{"--bin", "a", "--bin", "b", "--offline", "--edition", "2018"}))
	assert.Equal(t,
		[]string{"new", "--bin", "a", "--bin", "b", "--edition", "2018", "--offline", "/p"},
		invocation(newCmd, []string{"/p"}))
}
