// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/commitlint"
)

type ruleOutput struct {
	Name                 string   `json:"name"`
	Expr                 string   `json:"expr"`
	Types                []string `json:"types"`
	MaxCommits           int      `json:"max_commits"`
	AutomationIdentities []string `json:"automation_identities"`
	AllowMerge           bool     `json:"allow_merge"`
	RequireFooter        bool     `json:"require_footer"`
}

// NewRuleCommand returns the `commitgate rule` command.
func NewRuleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Print the active commit message rule and policy",
		Args:  cobra.NoArgs,
		RunE:  runRule,
	}

	cmd.Flags().String("format", "text", "Output format: text (default) or json")

	return cmd
}

func runRule(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rule := cfg.Policy.Rule()
	out := ruleOutput{
		Name:                 rule.Name,
		Expr:                 rule.Expr(),
		Types:                commitlint.Types,
		MaxCommits:           cfg.Policy.MaxCommits,
		AutomationIdentities: cfg.Policy.AutomationIdentities,
		AllowMerge:           cfg.Policy.AllowMerge,
		RequireFooter:        cfg.Policy.RequireFooter,
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text":
		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "rule:        %s\n", out.Name)
		_, _ = fmt.Fprintf(w, "types:       %s\n", strings.Join(out.Types, ", "))
		_, _ = fmt.Fprintf(w, "max commits: %d\n", out.MaxCommits)
		_, _ = fmt.Fprintf(w, "automation:  %s\n", strings.Join(out.AutomationIdentities, ", "))
		_, _ = fmt.Fprintf(w, "allow merge: %t\n", out.AllowMerge)
		_, _ = fmt.Fprintf(w, "footer:      %t\n", out.RequireFooter)
		_, _ = fmt.Fprintf(w, "expr:        %s\n", out.Expr)
		return nil

	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	default:
		return clierr.Newf(clierr.ExitUsage, "invalid format: %s (must be 'text' or 'json')", format)
	}
}
