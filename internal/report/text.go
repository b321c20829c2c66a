// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders validation results for humans and for the CI runner.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/commitgate/internal/commitlint"
)

// Writer prints verdict lines and, when annotate is set, GitHub workflow
// commands that surface failures on the check run.
type Writer struct {
	out      io.Writer
	annotate bool
}

// NewWriter creates a Writer.
func NewWriter(out io.Writer, annotate bool) *Writer {
	return &Writer{out: out, annotate: annotate}
}

// Verdict prints one verdict line.
func (w *Writer) Verdict(v commitlint.Verdict) {
	if v.Valid {
		_, _ = fmt.Fprintf(w.out, "VALID: %s\n", v.Commit.Message)
		return
	}
	_, _ = fmt.Fprintf(w.out, "INVALID: %s\n", v.Commit.Message)
}

// Summary prints the outcome of a pass. Failures are annotated.
func (w *Writer) Summary(r commitlint.Report) {
	var countErr *commitlint.CountExceededError
	switch {
	case errors.As(r.Err, &countErr):
		w.Fail(fmt.Sprintf("Pull request must contain fewer than %d commits.", countErr.Max))
	case r.Err != nil:
		if failed := r.Failed(); failed != nil {
			w.Fail("INVALID: " + failed.Commit.Message)
			return
		}
		w.Fail(r.Err.Error())
	default:
		_, _ = fmt.Fprintf(w.out, "✓ %d of %d commits valid\n", len(r.Verdicts), r.Total)
	}
}

// Fail reports a terminal failure. Without annotations it prints nothing:
// the returned command error already reaches stderr.
func (w *Writer) Fail(message string) {
	if !w.annotate {
		return
	}
	_, _ = fmt.Fprintf(w.out, "::error title=commitgate::%s\n", EscapeData(message))
}

// EscapeData escapes a workflow command message.
func EscapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
