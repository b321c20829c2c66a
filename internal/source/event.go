// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bartekus/commitgate/internal/commitlint"
)

// Event is the subset of a GitHub workflow event payload used here.
type Event struct {
	Number      int          `json:"number"`
	PullRequest *eventPR     `json:"pull_request"`
	Commits     []eventEntry `json:"commits"`
	Repository  *eventRepo   `json:"repository"`
}

type eventPR struct {
	Number int `json:"number"`
	Base   struct {
		SHA string `json:"sha"`
	} `json:"base"`
	Head struct {
		SHA string `json:"sha"`
	} `json:"head"`
}

type eventRepo struct {
	FullName string `json:"full_name"`
}

type eventPerson struct {
	Name string `json:"name"`
}

type eventEntry struct {
	ID        string      `json:"id"`
	SHA       string      `json:"sha"`
	Message   string      `json:"message"`
	Author    eventPerson `json:"author"`
	Committer eventPerson `json:"committer"`
}

// LoadEvent reads and decodes an event payload file.
func LoadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the runner environment
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parsing event payload %s: %w", path, err)
	}
	return &ev, nil
}

// PullRequestNumber returns the pull request number carried by the event, or 0.
func (e *Event) PullRequestNumber() int {
	if e.PullRequest != nil && e.PullRequest.Number > 0 {
		return e.PullRequest.Number
	}
	return e.Number
}

// RepositoryName returns the "owner/name" slug of the event repository, or "".
func (e *Event) RepositoryName() string {
	if e.Repository == nil {
		return ""
	}
	return e.Repository.FullName
}

// BaseSHA and HeadSHA return the pull request range, when present.
func (e *Event) BaseSHA() string {
	if e.PullRequest == nil {
		return ""
	}
	return e.PullRequest.Base.SHA
}

func (e *Event) HeadSHA() string {
	if e.PullRequest == nil {
		return ""
	}
	return e.PullRequest.Head.SHA
}

// CommitList converts the payload commits array.
func (e *Event) CommitList() ([]commitlint.Commit, error) {
	if e.Commits == nil {
		return nil, ErrNoCommits
	}
	commits := make([]commitlint.Commit, 0, len(e.Commits))
	for _, entry := range e.Commits {
		sha := entry.ID
		if sha == "" {
			sha = entry.SHA
		}
		commits = append(commits, commitlint.Commit{
			SHA:           sha,
			AuthorName:    entry.Author.Name,
			CommitterName: entry.Committer.Name,
			Message:       entry.Message,
		})
	}
	return commits, nil
}

// EventFile lists commits from a pre-supplied event payload.
type EventFile struct {
	Path string
}

// ListCommits implements Lister. The pull request argument is not consulted:
// the payload already belongs to one pull request.
func (s EventFile) ListCommits(_ context.Context, _ PullRequest) ([]commitlint.Commit, error) {
	ev, err := LoadEvent(s.Path)
	if err != nil {
		return nil, upstream(NameEvent, err)
	}
	commits, err := ev.CommitList()
	return commits, upstream(NameEvent, err)
}
