// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/cargocraft/cli/internal/output"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Isolate points HOME and the cargo-craft config at a fresh temp directory
// and returns that directory.
func Isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CARGO_CRAFT_CONFIG", "")
	return home
}

// Result is the captured output of a command run.
type Result struct {
	// Stdout holds output.Println text and the command's own output.
	Stdout string
	Stderr string
	Err    error
}

// Execute runs cmd with args, capturing stdout and stderr.
func Execute(t *testing.T, cmd *cobra.Command, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	restore := output.SetStdout(&stdout)
	defer restore()

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
