// Package receipt records each scaffold run in an append-only JSON lines log.
package receipt

import (
	"time"

	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/scaffold"
)

// Receipt is the persisted record of one run.
type Receipt struct {
	Options    scaffold.Options `json:"options"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Success    bool             `json:"success"`
	Errors     []ErrorRecord    `json:"errors,omitempty"`

	// Files are the absolute paths written by the run.
	Files []string `json:"files,omitempty"`
}

// ErrorRecord is a runtime error captured during a run.
type ErrorRecord struct {
	Kind    oerrors.Kind `json:"kind"`
	Message string       `json:"message"`
}

// Begin starts a receipt for a run with the given options.
func Begin(opts scaffold.Options, now time.Time) *Receipt {
	return &Receipt{Options: opts, StartedAt: now}
}

// Finish stamps the end of the run and records its outcome.
func (r *Receipt) Finish(now time.Time, files []string, err error) {
	r.FinishedAt = now
	r.Files = append([]string(nil), files...)
	r.Success = err == nil
	if err != nil {
		r.Errors = append(r.Errors, Record(err))
	}
}

// Record converts err into an ErrorRecord. Unclassified errors are
// recorded as RuntimeError.
func Record(err error) ErrorRecord {
	kind, ok := oerrors.KindOf(err)
	if !ok {
		kind = oerrors.KindRuntime
	}
	return ErrorRecord{Kind: kind, Message: err.Error()}
}

// Duration is the wall time the run took.
func (r *Receipt) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
