package receipts

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/cargocraft/cli/internal/cmdtypes"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
)

// NewDiffCmd creates the receipts diff command.
func NewDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare the options of two recorded runs",
		Long: `Compare the options of two recorded runs.

Only the option snapshots are compared; timing and file lists are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			var docs [2][]byte
			for i, arg := range args {
				index, err := parseIndex(arg)
				if err != nil {
					return err
				}
				r, err := load(cfg, index)
				if err != nil {
					return err
				}
				if docs[i], err = yaml.Marshal(r.Options); err != nil {
					return oerrors.WithCause(oerrors.KindSerialization, err, "encoding receipt %d", index)
				}
			}

			report, err := output.DiffYAML("#"+args[0], docs[0], "#"+args[1], docs[1], output.ColorEnabled(os.Stdout))
			if err != nil {
				return oerrors.WithCause(oerrors.KindSerialization, err, "comparing receipts")
			}
			if report == "" {
				output.Println(fmt.Sprintf("receipts #%s and #%s have the same options", args[0], args[1]))
				return nil
			}
			output.Println(report)
			return nil
		},
	}
}
