// SPDX-License-Identifier: AGPL-3.0-or-later

package commitlint

import (
	"slices"
	"strings"
)

const (
	// DefaultMaxCommits matches the page size of the pull request commits API.
	DefaultMaxCommits = 100

	mergePrefix = "Merge "
)

// DefaultAutomationIdentities are committer names exempt from message checks.
var DefaultAutomationIdentities = []string{"GitHub", "github-actions"}

// Policy controls a validation pass.
type Policy struct {
	// MaxCommits fails any pull request with this many commits or more. Zero disables the cap.
	MaxCommits int
	// AutomationIdentities are exact, case-sensitive identities treated as always valid.
	AutomationIdentities []string
	// AllowMerge accepts any message starting with "Merge ".
	AllowMerge bool
	// RequireFooter makes the issue-reference footer mandatory.
	RequireFooter bool
}

// DefaultPolicy returns the canonical policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxCommits:           DefaultMaxCommits,
		AutomationIdentities: slices.Clone(DefaultAutomationIdentities),
		AllowMerge:           true,
	}
}

// Rule returns the message rule implied by the policy.
func (p Policy) Rule() Rule {
	if p.RequireFooter {
		return ConventionalRule(WithRequiredFooter())
	}
	return ConventionalRule()
}

// Validator applies a Policy and a Rule to a commit list.
type Validator struct {
	policy    Policy
	rule      Rule
	onVerdict func(Verdict)
}

// New creates a Validator.
func New(policy Policy, rule Rule) *Validator {
	return &Validator{policy: policy, rule: rule}
}

// OnVerdict registers fn to be called with each verdict as it is produced.
func (v *Validator) OnVerdict(fn func(Verdict)) {
	v.onVerdict = fn
}

// Validate checks commits in order. The count cap is checked before any message,
// and the pass stops at the first invalid commit.
func (v *Validator) Validate(commits []Commit) Report {
	report := Report{Total: len(commits)}

	if v.policy.MaxCommits > 0 && len(commits) >= v.policy.MaxCommits {
		report.Err = &CountExceededError{Count: len(commits), Max: v.policy.MaxCommits}
		return report
	}

	for _, c := range commits {
		verdict := v.Check(c)
		report.Verdicts = append(report.Verdicts, verdict)
		if v.onVerdict != nil {
			v.onVerdict(verdict)
		}
		if !verdict.Valid {
			report.Err = &InvalidMessageError{Commit: c, Rule: v.rule.Name}
			return report
		}
	}

	return report
}

// Check returns the verdict for a single commit, ignoring the count cap.
func (v *Validator) Check(c Commit) Verdict {
	switch {
	case v.isAutomation(c.Identity()):
		return Verdict{Commit: c, Valid: true, Reason: ReasonAutomation}
	case v.policy.AllowMerge && strings.HasPrefix(c.Message, mergePrefix):
		return Verdict{Commit: c, Valid: true, Reason: ReasonMerge}
	case v.rule.Match(c.Message):
		return Verdict{Commit: c, Valid: true, Reason: ReasonPattern}
	default:
		return Verdict{Commit: c, Valid: false, Reason: ReasonMismatch}
	}
}

func (v *Validator) isAutomation(identity string) bool {
	if identity == "" {
		return false
	}
	return slices.Contains(v.policy.AutomationIdentities, identity)
}
