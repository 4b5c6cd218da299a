package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cargocraft/cli/internal/cmdtypes"
	"github.com/cargocraft/cli/internal/history"
	"github.com/cargocraft/cli/internal/output"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "Show previous invocations",
		Long: `Show previous cargo-craft new invocations, newest first.

The history file lives at ~/.cargo-craft/history unless historyFile is set in
the config file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log, err := cfg.History()
			if err != nil {
				return err
			}

			lines, err := log.Read(limit)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				output.Info("no history yet", "path", log.Path())
				return nil
			}

			for _, line := range lines {
				entry, err := history.Parse(line)
				if err != nil {
					output.Debug("skipping malformed history line", "err", err)
					output.Println(line)
					continue
				}
				output.Println(output.StyleDim.Render(entry.Time.Local().Format("2006-01-02 15:04:05")) + "  " + entry.Args)
			}
			return nil
		},
	}

	c.Flags().IntVarP(&limit, "number", "n", 0, "Show only the N most recent entries")

	return c
}
