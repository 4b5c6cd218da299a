package receipts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/cargocraft/cli/internal/cmdtypes"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
	"github.com/cargocraft/cli/internal/receipt"
)

// NewShowCmd creates the receipts show command.
func NewShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show <number>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			outFmt, err := output.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			r, err := load(cfg, index)
			if err != nil {
				return err
			}

			text, err := render(r, index, outFmt)
			if err != nil {
				return err
			}
			output.Println(text)
			return nil
		},
	}

	c.Flags().StringVarP(&format, "output", "o", "text", "Output format: "+strings.Join(output.ValidFormats(), ", "))

	return c
}

func render(r *receipt.Receipt, index int, format output.OutputFormat) (string, error) {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", oerrors.WithCause(oerrors.KindSerialization, err, "encoding receipt %d", index)
		}
		return string(data), nil
	case output.FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", oerrors.WithCause(oerrors.KindSerialization, err, "encoding receipt %d", index)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return renderText(r, index), nil
	}
}

func renderText(r *receipt.Receipt, index int) string {
	var b strings.Builder
	st := status(r)

	fmt.Fprintf(&b, "Receipt #%d  %s\n", index, output.StatusStyle(st).Render(st))
	fmt.Fprintf(&b, "  Crate:     %s\n", output.StyleNoun.Render(crateName(r)))
	fmt.Fprintf(&b, "  Path:      %s\n", r.Options.Path)
	fmt.Fprintf(&b, "  Started:   %s\n", r.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(&b, "  Finished:  %s\n", r.FinishedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(&b, "  Duration:  %s\n", r.Duration().Round(time.Millisecond))

	if len(r.Options.Deps) > 0 {
		fmt.Fprintf(&b, "  Deps:      %s\n", strings.Join(r.Options.Deps, "; "))
	}
	if len(r.Files) > 0 {
		b.WriteString("\n  Files:\n")
		for _, f := range r.Files {
			fmt.Fprintf(&b, "    %s\n", f)
		}
	}
	if len(r.Errors) > 0 {
		b.WriteString("\n  Errors:\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "    %s\n", output.GetStyles().Error.Render(e.Message))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
