// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commitlint validates pull request commit messages against a
// conventional-commit rule and a commit count policy.
package commitlint

// Commit is a single commit as reported by a commit source.
type Commit struct {
	SHA           string `json:"sha,omitempty"`
	AuthorName    string `json:"author_name,omitempty"`
	CommitterName string `json:"committer_name,omitempty"`
	Message       string `json:"message"`
}

// Identity returns the name matched against the automation allow-list.
// The committer wins over the author when both are set.
func (c Commit) Identity() string {
	if c.CommitterName != "" {
		return c.CommitterName
	}
	return c.AuthorName
}

// Reason records why a verdict was reached.
type Reason string

const (
	ReasonAutomation Reason = "automation"
	ReasonMerge      Reason = "merge"
	ReasonPattern    Reason = "pattern"
	ReasonMismatch   Reason = "mismatch"
)

// Verdict is the outcome for one inspected commit.
type Verdict struct {
	Commit Commit `json:"commit"`
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason"`
}

// Report is the outcome of one validation pass.
// Verdicts only holds the commits that were inspected before the pass stopped.
type Report struct {
	Total    int
	Verdicts []Verdict
	Err      error
}

// OK reports whether the pass succeeded.
func (r Report) OK() bool { return r.Err == nil }

// Failed returns the first invalid verdict, or nil.
func (r Report) Failed() *Verdict {
	for i := range r.Verdicts {
		if !r.Verdicts[i].Valid {
			return &r.Verdicts[i]
		}
	}
	return nil
}
