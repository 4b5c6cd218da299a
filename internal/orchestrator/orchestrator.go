// Package orchestrator drives a complete scaffold run: it writes the planned
// files, then formats, installs dependencies, verifies, commits to version
// control and records a receipt.
package orchestrator

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
	"github.com/cargocraft/cli/internal/receipt"
	"github.com/cargocraft/cli/internal/render"
	"github.com/cargocraft/cli/internal/scaffold"
	"github.com/cargocraft/cli/internal/shell"
	"github.com/cargocraft/cli/internal/templates"
)

// Tools names the external binaries a run invokes.
type Tools struct {
	PackageManager string
	Formatter      string
	VCS            string
}

// DefaultTools returns cargo, rustfmt and git.
func DefaultTools() Tools {
	return Tools{PackageManager: "cargo", Formatter: "rustfmt", VCS: "git"}
}

// Result describes a finished run.
type Result struct {
	// Root is the absolute project directory.
	Root string

	// Files are the absolute paths written, in plan order.
	Files []string

	// RolledBack is set when a failure caused Root to be removed.
	RolledBack bool

	Receipt *receipt.Receipt
}

// Orchestrator runs scaffolds.
type Orchestrator struct {
	fs       afero.Fs
	runner   shell.Runner
	renderer templates.Renderer
	receipts *receipt.Log
	tools    Tools
	exit     func(int)
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithReceipts records every run in log.
func WithReceipts(log *receipt.Log) Option {
	return func(o *Orchestrator) { o.receipts = log }
}

// WithTools overrides the external binaries.
func WithTools(t Tools) Option {
	return func(o *Orchestrator) { o.tools = t }
}

// WithExit replaces os.Exit for verification stages after check.
func WithExit(exit func(int)) Option {
	return func(o *Orchestrator) { o.exit = exit }
}

// WithClock replaces time.Now for receipt timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator writing through fsys and running commands
// through runner.
func New(fsys afero.Fs, runner shell.Runner, renderer templates.Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fs:       fsys,
		runner:   runner,
		renderer: renderer,
		tools:    DefaultTools(),
		exit:     os.Exit,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run scaffolds the crate described by cfg. When a later verification stage
// fails the receipt is recorded, the project is left in place and the process
// exits with ExitVerificationFailed. On any other error the project directory
// is removed if rollback is enabled and the directory did not exist before
// the run.
func (o *Orchestrator) Run(ctx context.Context, cfg *scaffold.Config) (*Result, error) {
	rec := receipt.Begin(cfg.Options(), o.now())
	result := &Result{Root: cfg.ProjectPath(), Receipt: rec}

	existed, err := scaffold.PrepareTarget(o.fs, cfg)
	prepared := err == nil
	if prepared {
		err = o.run(ctx, cfg, result)
	}

	var stageErr *verificationError
	if errors.As(err, &stageErr) {
		rec.Finish(o.now(), result.Files, stageErr.failure)
		o.record(rec)
		o.exit(oerrors.ExitVerificationFailed)
		// Reached only when exit does not terminate the process.
		return result, &oerrors.ExitError{Err: stageErr.failure, Code: oerrors.ExitVerificationFailed, Printed: true}
	}
	if err != nil && prepared {
		o.rollback(cfg, existed, result)
	}

	rec.Finish(o.now(), result.Files, err)
	o.record(rec)
	return result, err
}

// verificationError is a non-zero status from a stage after check.
type verificationError struct {
	failure error
}

func (e *verificationError) Error() string { return e.failure.Error() }

func (e *verificationError) Unwrap() error { return e.failure }

func (o *Orchestrator) run(ctx context.Context, cfg *scaffold.Config, result *Result) error {
	planner := scaffold.NewPlanner(o.renderer)
	plan, err := planner.Build(cfg)
	if err != nil {
		return err
	}
	tctx, err := planner.Context(cfg)
	if err != nil {
		return err
	}

	written, err := render.NewPipeline(o.fs, o.renderer).Run(plan, tctx)
	result.Files = written
	if err != nil {
		return err
	}
	output.Info("generated crate", "crate", cfg.CrateName(), "files", len(written))

	o.format(ctx, cfg.ProjectPath(), written)

	if err := o.addDependencies(ctx, cfg); err != nil {
		return err
	}
	if err := o.verify(ctx, cfg); err != nil {
		return err
	}
	return o.commit(ctx, cfg.ProjectPath())
}

// format runs the formatter on each Rust source. Failures are warnings.
func (o *Orchestrator) format(ctx context.Context, root string, files []string) {
	for _, path := range files {
		if !strings.HasSuffix(path, ".rs") {
			continue
		}
		cmd := shell.Command{Name: o.tools.Formatter, Args: []string{path}, Dir: root}
		code, err := o.runner.Run(ctx, cmd)
		switch {
		case err != nil:
			output.Warn("formatter could not be started", "cmd", cmd.String(), "err", err)
			return
		case code != 0:
			output.Warn("formatter failed", "path", path, "status", code)
		}
	}
}

func (o *Orchestrator) addDependencies(ctx context.Context, cfg *scaffold.Config) error {
	baseline, err := cfg.Baseline()
	if err != nil {
		return err
	}

	for _, d := range append(baseline, cfg.Deps()...) {
		args := append([]string{"add"}, d.Fragment()...)
		if cfg.Offline() {
			args = append(args, "--offline")
		}
		if err := o.must(ctx, shell.Command{Name: o.tools.PackageManager, Args: args, Dir: cfg.ProjectPath()}); err != nil {
			return err
		}
	}
	return nil
}

// Stages run after check, in order.
var laterStages = []string{"build", "test"}

func (o *Orchestrator) verify(ctx context.Context, cfg *scaffold.Config) error {
	root := cfg.ProjectPath()

	if err := o.must(ctx, o.stage("check", cfg, root)); err != nil {
		return err
	}

	stages := laterStages
	if cfg.Doc() {
		stages = append(slices.Clone(stages), "doc")
	}
	for _, stage := range stages {
		cmd := o.stage(stage, cfg, root)
		code, err := o.runner.Run(ctx, cmd)
		if err != nil {
			return err
		}
		if code != 0 {
			failure := oerrors.ShellCommand(cmd.String(), code)
			output.Error("verification failed", "stage", stage, "err", failure)
			return &verificationError{failure: failure}
		}
		output.Debug("verification stage passed", "stage", stage)
	}
	return nil
}

func (o *Orchestrator) stage(name string, cfg *scaffold.Config, root string) shell.Command {
	args := []string{name}
	if cfg.Offline() {
		args = append(args, "--offline")
	}
	return shell.Command{Name: o.tools.PackageManager, Args: args, Dir: root}
}

func (o *Orchestrator) commit(ctx context.Context, root string) error {
	for _, args := range [][]string{{"init"}, {"add", "."}} {
		if err := o.must(ctx, shell.Command{Name: o.tools.VCS, Args: args, Dir: root}); err != nil {
			return err
		}
	}
	return nil
}

// must runs cmd and turns a non-zero status into a ShellCommandError.
func (o *Orchestrator) must(ctx context.Context, cmd shell.Command) error {
	code, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if code != 0 {
		return oerrors.ShellCommand(cmd.String(), code)
	}
	return nil
}

func (o *Orchestrator) rollback(cfg *scaffold.Config, existed bool, result *Result) {
	root := cfg.ProjectPath()
	switch {
	case !cfg.Rollback():
		output.Debug("rollback disabled, leaving project in place", "path", root)
	case existed:
		output.Warn("not rolling back a directory that existed before this run", "path", root)
	default:
		if err := o.fs.RemoveAll(root); err != nil {
			output.Warn("rollback failed", "path", root, "err", err)
			return
		}
		result.RolledBack = true
		output.Info("rolled back", "path", root)
	}
}

func (o *Orchestrator) record(rec *receipt.Receipt) {
	if o.receipts == nil {
		return
	}
	if err := o.receipts.Append(rec); err != nil {
		output.Warn("could not record receipt", "path", o.receipts.Path(), "err", err)
	}
}
