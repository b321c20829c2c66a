// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/commitlint"
	"github.com/bartekus/commitgate/internal/config"
	"github.com/bartekus/commitgate/internal/report"
	"github.com/bartekus/commitgate/internal/source"
)

// NewCheckCommand returns the `commitgate check` command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every commit of a pull request",
		Long: `Lists the commits of a pull request and validates each message.

Fails when the pull request carries max-commits commits or more, or at the
first commit whose message does not follow the convention. Commits made by
automation identities are always accepted.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().String("api-url", "", "GitHub API base URL (default: GITHUB_API_URL or https://api.github.com)")
	cmd.Flags().String("base", "", "base revision for the git source")
	cmd.Flags().String("dir", ".", "repository directory for the git source")
	cmd.Flags().String("event-path", "", "event payload file (default: GITHUB_EVENT_PATH)")
	cmd.Flags().String("head", "", "head revision for the git source (default: the event head SHA, then HEAD)")
	cmd.Flags().Int("max-commits", commitlint.DefaultMaxCommits, "fail when the pull request has this many commits or more (0 disables)")
	cmd.Flags().Int("pr", 0, "pull request number (default: from GITHUB_REF or the event payload)")
	cmd.Flags().String("repo", "", "repository as owner/name (default: GITHUB_REPOSITORY)")
	cmd.Flags().String("report-file", "", "write a JSON report to this path")
	cmd.Flags().Bool("require-footer", false, "require an issue-reference footer on every message")
	cmd.Flags().String("source", source.NameGitHub, "commit source: github, event or git")
	cmd.Flags().String("token", "", "GitHub token (default: INPUT_TOKEN or GITHUB_TOKEN)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := verboseLogger(cmd)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	applyCheckFlags(cmd, &cfg)
	fillFromEvent(&cfg)

	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.ExitUsage, "invalid configuration", err)
	}

	w := report.NewWriter(cmd.OutOrStdout(), cfg.Annotations)
	dir, _ := cmd.Flags().GetString("dir")
	lister := newLister(cfg, dir)

	// Only the github source needs a well-formed pull request reference.
	pr, _ := cfg.PullRequest()
	logger.Printf("listing commits from the %s source (%s)", cfg.Source, pr)

	rule := cfg.Policy.Rule()
	result, err := listAndValidate(cmd, cfg, lister, pr, rule, w)
	if err != nil {
		// An upstream failure is still a failed run: record it like any other.
		result = commitlint.Report{Err: err}
	}
	w.Summary(result)

	return exitFor(errors.Join(result.Err, writeArtifacts(cfg, rule, result)))
}

func listAndValidate(cmd *cobra.Command, cfg config.Config, lister source.Lister, pr source.PullRequest, rule commitlint.Rule, w *report.Writer) (commitlint.Report, error) {
	logger := verboseLogger(cmd)

	commits, err := lister.ListCommits(cmd.Context(), pr)
	if err != nil {
		return commitlint.Report{}, err
	}
	logger.Printf("%d commits", len(commits))

	v := commitlint.New(cfg.Policy, rule)
	v.OnVerdict(func(verdict commitlint.Verdict) {
		logger.Printf("COMMITTER: %s (%s)", verdict.Commit.Identity(), verdict.Reason)
		w.Verdict(verdict)
	})
	return v.Validate(commits), nil
}

// writeArtifacts writes the JSON report and the step summary. Both are
// attempted; their errors are joined.
func writeArtifacts(cfg config.Config, rule commitlint.Rule, result commitlint.Report) error {
	var errs []error
	if cfg.ReportFile != "" {
		errs = append(errs, report.WriteFile(cfg.ReportFile, report.Build(rule.Name, result)))
	}
	if cfg.StepSummary != "" {
		errs = append(errs, report.AppendStepSummary(cfg.StepSummary, result))
	}
	return errors.Join(errs...)
}

func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("repo") {
		cfg.Repository, _ = flags.GetString("repo")
	}
	if flags.Changed("pr") {
		cfg.PullNumber, _ = flags.GetInt("pr")
	}
	if flags.Changed("token") {
		cfg.Token, _ = flags.GetString("token")
	}
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("event-path") {
		cfg.EventPath, _ = flags.GetString("event-path")
	}
	if flags.Changed("base") {
		cfg.BaseRef, _ = flags.GetString("base")
	}
	if flags.Changed("max-commits") {
		cfg.Policy.MaxCommits, _ = flags.GetInt("max-commits")
	}
	if flags.Changed("require-footer") {
		cfg.Policy.RequireFooter, _ = flags.GetBool("require-footer")
	}
	if flags.Changed("report-file") {
		cfg.ReportFile, _ = flags.GetString("report-file")
	}
	if flags.Changed("head") {
		cfg.HeadRef, _ = flags.GetString("head")
	}
}

// fillFromEvent completes the pull request reference and git range from the
// event payload when they were not given explicitly.
func fillFromEvent(cfg *config.Config) {
	if cfg.EventPath == "" {
		return
	}
	ev, err := source.LoadEvent(cfg.EventPath)
	if err != nil {
		return
	}
	if cfg.PullNumber == 0 {
		cfg.PullNumber = ev.PullRequestNumber()
	}
	if cfg.Repository == "" {
		cfg.Repository = ev.RepositoryName()
	}
	if cfg.BaseRef == "" {
		cfg.BaseRef = ev.BaseSHA()
	}
	if cfg.HeadRef == "" {
		cfg.HeadRef = ev.HeadSHA()
	}
}

func newLister(cfg config.Config, dir string) source.Lister {
	switch cfg.Source {
	case source.NameEvent:
		return source.EventFile{Path: cfg.EventPath}
	case source.NameGit:
		return source.GitRepo{Path: dir, Base: cfg.BaseRef, Head: cfg.HeadRef}
	default:
		return source.NewGitHubClient(
			source.WithToken(cfg.Token),
			source.WithBaseURL(cfg.APIURL),
			source.WithCommitLimit(cfg.Policy.MaxCommits),
		)
	}
}
