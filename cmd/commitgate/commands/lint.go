// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/commitlint"
	"github.com/bartekus/commitgate/internal/report"
)

// NewLintCommand returns the `commitgate lint` command.
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [message]",
		Short: "Validate a single commit message",
		Long: `Validates one message given as an argument, read from --file, or read from
stdin with "-". Suitable as a commit-msg hook: commitgate lint --file "$1".

Lines starting with "#" are dropped from --file and stdin input, as git does,
and so is everything after the scissors line written by git commit -v.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLint,
	}

	cmd.Flags().String("author", "", "identity checked against the automation allow-list")
	cmd.Flags().String("file", "", "read the message from this file")
	cmd.Flags().Bool("require-footer", false, "require an issue-reference footer")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	message, err := readMessage(cmd, args)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("require-footer") {
		cfg.Policy.RequireFooter, _ = cmd.Flags().GetBool("require-footer")
	}

	author, _ := cmd.Flags().GetString("author")
	rule := cfg.Policy.Rule()
	v := commitlint.New(cfg.Policy, rule)

	verdict := v.Check(commitlint.Commit{AuthorName: author, Message: message})
	report.NewWriter(cmd.OutOrStdout(), false).Verdict(verdict)
	verboseLogger(cmd).Printf("rule %s: %s", rule.Name, verdict.Reason)

	if !verdict.Valid {
		return exitFor(&commitlint.InvalidMessageError{Commit: verdict.Commit, Rule: rule.Name})
	}
	return nil
}

func readMessage(cmd *cobra.Command, args []string) (string, error) {
	path, _ := cmd.Flags().GetString("file")

	switch {
	case path != "" && len(args) > 0:
		return "", errors.New("give either a message argument or --file, not both")
	case path != "":
		data, err := os.ReadFile(path) //nolint:gosec // G304: path is the commit message file
		if err != nil {
			return "", fmt.Errorf("reading message: %w", err)
		}
		return cleanMessage(string(data)), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return cleanMessage(string(data)), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New("no message given (pass it as an argument, --file, or - for stdin)")
	}
}

// scissorsLine marks the start of the diff `git commit -v` appends to the message file.
const scissorsLine = "# ------------------------ >8 ------------------------"

// cleanMessage drops git comment lines, everything from the scissors line on,
// and trailing whitespace, the way `git commit --cleanup=strip` would before
// storing the message.
func cleanMessage(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line == scissorsLine {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}
