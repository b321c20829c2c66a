// SPDX-License-Identifier: AGPL-3.0-or-later

// Package source lists the commits of a pull request from the GitHub API,
// a workflow event payload, or a local git repository.
package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bartekus/commitgate/internal/commitlint"
)

// Names of the available sources.
const (
	NameGitHub = "github"
	NameEvent  = "event"
	NameGit    = "git"
)

// Names lists every source name in a stable order.
var Names = []string{NameGitHub, NameEvent, NameGit}

// PullRequest identifies a pull request.
type PullRequest struct {
	Owner  string
	Repo   string
	Number int
}

func (pr PullRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", pr.Owner, pr.Repo, pr.Number)
}

// Lister lists the commits of a pull request, oldest first.
type Lister interface {
	ListCommits(ctx context.Context, pr PullRequest) ([]commitlint.Commit, error)
}

var repositoryPattern = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

// ParseRepository splits an "owner/name" repository slug.
func ParseRepository(slug string) (owner, repo string, err error) {
	m := repositoryPattern.FindStringSubmatch(strings.TrimSpace(slug))
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, slug)
	}
	return m[1], m[2], nil
}
