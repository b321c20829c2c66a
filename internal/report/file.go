// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bartekus/commitgate/internal/commitlint"
)

// Status values of a File.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// File is the JSON report written with --report-file.
type File struct {
	Status    string               `json:"status"`
	Rule      string               `json:"rule"`
	Total     int                  `json:"total"`
	Checked   int                  `json:"checked"`
	FailedSHA string               `json:"failed_sha,omitempty"`
	Error     string               `json:"error,omitempty"`
	Verdicts  []commitlint.Verdict `json:"verdicts"`
}

// Build converts a validation report.
func Build(rule string, r commitlint.Report) File {
	f := File{
		Status:   StatusPass,
		Rule:     rule,
		Total:    r.Total,
		Checked:  len(r.Verdicts),
		Verdicts: r.Verdicts,
	}
	if f.Verdicts == nil {
		f.Verdicts = []commitlint.Verdict{}
	}
	if r.Err != nil {
		f.Status = StatusFail
		f.Error = r.Err.Error()
		if failed := r.Failed(); failed != nil {
			f.FailedSHA = failed.Commit.SHA
		}
	}
	return f
}

// WriteFile writes f as indented JSON, creating parent directories.
func WriteFile(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	out, err := os.Create(path) //nolint:gosec // G304: path is a user-supplied output location
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer func() { _ = out.Close() }()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return out.Close()
}

// ReadFile loads a report written by WriteFile.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied report location
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &f, nil
}

// Markdown renders the step summary table.
func Markdown(r commitlint.Report) string {
	var b strings.Builder
	b.WriteString("### Commit messages\n\n")

	var countErr *commitlint.CountExceededError
	if errors.As(r.Err, &countErr) {
		fmt.Fprintf(&b, "❌ %d commits, the limit is fewer than %d.\n", countErr.Count, countErr.Max)
		return b.String()
	}
	if r.Err != nil && r.Failed() == nil {
		fmt.Fprintf(&b, "❌ %s\n", r.Err)
		return b.String()
	}

	b.WriteString("| Commit | Result | Subject |\n")
	b.WriteString("|--------|--------|---------|\n")
	for _, v := range r.Verdicts {
		result := "✅ " + string(v.Reason)
		if !v.Valid {
			result = "❌ " + string(v.Reason)
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", shortSHA(v.Commit.SHA), result, subject(v.Commit.Message))
	}
	if skipped := r.Total - len(r.Verdicts); skipped > 0 {
		fmt.Fprintf(&b, "\n%d commit(s) not checked after the first failure.\n", skipped)
	}
	return b.String()
}

// AppendStepSummary appends the markdown summary to the file named by GITHUB_STEP_SUMMARY.
func AppendStepSummary(path string, r commitlint.Report) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: path comes from the runner environment
	if err != nil {
		return fmt.Errorf("opening step summary: %w", err)
	}
	if _, err := f.WriteString(Markdown(r)); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing step summary: %w", err)
	}
	return f.Close()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.ReplaceAll(line, "|", `\|`)
}
