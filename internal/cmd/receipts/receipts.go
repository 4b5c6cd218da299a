// Package receipts provides CLI command implementations for the receipts command group.
package receipts

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cargocraft/cli/internal/cmdtypes"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/naming"
	"github.com/cargocraft/cli/internal/output"
	"github.com/cargocraft/cli/internal/receipt"
)

// NewReceiptsCmd creates the receipts command group.
func NewReceiptsCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "receipts",
		Short: "Inspect the receipts of previous runs",
		Long: `Inspect the receipts of previous runs.

Every "new" run appends a receipt with its options, timing, the files it
wrote and any error to ~/.cargo-craft/receipts.jsonl. Receipts are numbered
from 1, oldest first.`,
	}

	c.AddCommand(NewListCmd(cfg))
	c.AddCommand(NewShowCmd(cfg))
	c.AddCommand(NewDiffCmd(cfg))

	return c
}

// parseIndex parses a 1-based receipt index argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, oerrors.NewValidationError(
			fmt.Sprintf("%q is not a receipt number", arg), "", "index",
			"Receipt numbers start at 1; see 'cargo-craft receipts list'.")
	}
	return n, nil
}

func load(cfg *cmdtypes.GlobalConfig, index int) (*receipt.Receipt, error) {
	log, err := cfg.Receipts()
	if err != nil {
		return nil, err
	}
	return log.Get(index)
}

func crateName(r *receipt.Receipt) string {
	return naming.CrateNameFromPath(r.Options.Path)
}

func status(r *receipt.Receipt) string {
	if r.Success {
		return output.StatusSucceeded
	}
	return output.StatusFailed
}
