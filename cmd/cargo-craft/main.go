// Package main is the entry point for cargo-craft.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cargocraft/cli/internal/cmd"
	oerrors "github.com/cargocraft/cli/internal/errors"
	"github.com/cargocraft/cli/internal/output"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	// cargo runs external subcommands as `cargo-craft craft ...`.
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "craft" {
		args = args[1:]
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			// Only print if the command layer hasn't already printed it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		exit(oerrors.ExitCodeFromError(err))
	}
}

func exit(code int) {
	output.Debug("exiting", "code", code, "reason", oerrors.ExitCodeName(code))
	os.Exit(code)
}
