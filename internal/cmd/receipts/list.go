package receipts

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/output"
)

// NewListCmd creates the receipts list command.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log, err := cfg.Receipts()
			if err != nil {
				return err
			}
			records, err := log.ReadAll()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				output.Info("no receipts recorded", "path", log.Path())
				return nil
			}

			tbl := output.NewTable("#", "CRATE", "PATH", "STARTED", "DURATION", "STATUS")
			for i := range records {
				r := &records[i]
				st := status(r)
				tbl.Row(
					strconv.Itoa(i+1),
					crateName(r),
					r.Options.Path,
					r.StartedAt.Local().Format(time.DateTime),
					r.Duration().Round(time.Millisecond).String(),
					output.StatusStyle(st).Render(st),
				)
			}
			output.Println(tbl.String())
			return nil
		},
	}
}
