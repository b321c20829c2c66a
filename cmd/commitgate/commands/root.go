// SPDX-License-Identifier: AGPL-3.0-or-later

/*
commitgate - fails a pull request check when a commit message does not follow
the conventional-commit convention or the pull request carries too many commits.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the commitgate root Cobra command.
func NewRootCmd(version string) *cobra.Command {
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "commitgate",
		Short:         "Validate pull request commit messages",
		Long:          "commitgate checks every commit of a pull request against the conventional-commit convention and a commit count limit.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("config", "", "policy file (default: .commitgate.yaml at the project root)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitgate",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitgate version %s\n", version)
		},
	})

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewLintCommand())
	cmd.AddCommand(NewRuleCommand())

	return cmd
}

// verboseLogger returns a stderr logger when --verbose is set, a discarding one otherwise.
func verboseLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "commitgate: ", 0)
}
