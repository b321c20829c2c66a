// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrUpstream matches every failure to list commits.
	ErrUpstream = errors.New("listing commits failed")

	ErrInvalidRepository = errors.New("invalid repository, expected owner/name")
	ErrNotFound          = errors.New("pull request not found (404)")
	ErrRateLimited       = errors.New("GitHub API rate limit exceeded")
	ErrUnauthorized      = errors.New("GitHub API authentication failed")
	ErrAPI               = errors.New("GitHub API error")
	ErrNetwork           = errors.New("network error connecting to GitHub")
	ErrNoCommits         = errors.New("event payload has no commits array")
	ErrNoBase            = errors.New("base revision is required")
)

// UpstreamError wraps a failure from a named source.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s source: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

func upstream(source string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Source: source, Err: err}
}
