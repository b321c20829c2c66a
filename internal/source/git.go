// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/bartekus/commitgate/internal/commitlint"
	"github.com/bartekus/commitgate/internal/projectroot"
)

// DefaultHead is the head revision used when GitRepo.Head is empty.
const DefaultHead = "HEAD"

// GitRepo lists the commits reachable from Head but not from Base in a local repository.
type GitRepo struct {
	Path string
	Base string
	Head string
}

// ListCommits implements Lister. The pull request argument is not consulted.
func (s GitRepo) ListCommits(ctx context.Context, _ PullRequest) ([]commitlint.Commit, error) {
	commits, err := s.listCommits(ctx)
	return commits, upstream(NameGit, err)
}

func (s GitRepo) listCommits(ctx context.Context) ([]commitlint.Commit, error) {
	if s.Base == "" {
		return nil, ErrNoBase
	}
	head := s.Head
	if head == "" {
		head = DefaultHead
	}

	repo, err := openRepository(s.Path)
	if err != nil {
		return nil, err
	}

	baseCommit, err := resolveCommit(repo, s.Base)
	if err != nil {
		return nil, err
	}
	headCommit, err := resolveCommit(repo, head)
	if err != nil {
		return nil, err
	}

	excluded := map[plumbing.Hash]bool{}
	err = object.NewCommitPreorderIter(baseCommit, nil, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		excluded[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.Base, err)
	}

	var walked []*object.Commit
	err = object.NewCommitPreorderIter(headCommit, excluded, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		walked = append(walked, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", head, err)
	}

	// Preorder follows first parents before merged branches; oldest first
	// means committer time, with walk order breaking ties.
	slices.Reverse(walked)
	slices.SortStableFunc(walked, func(a, b *object.Commit) int {
		return a.Committer.When.Compare(b.Committer.When)
	})

	commits := make([]commitlint.Commit, 0, len(walked))
	for _, c := range walked {
		commits = append(commits, commitlint.Commit{
			SHA:           c.Hash.String(),
			AuthorName:    c.Author.Name,
			CommitterName: c.Committer.Name,
			Message:       strings.TrimRight(c.Message, "\n"),
		})
	}
	return commits, nil
}

func openRepository(path string) (*git.Repository, error) {
	if path == "" {
		path = "."
	}
	root, err := projectroot.Find(path)
	if err != nil {
		return nil, err
	}

	dotGit := projectroot.GitDir(root)
	if dotGit == "" {
		// Linked worktree or submodule: let go-git follow the .git file.
		repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
		if err != nil {
			return nil, fmt.Errorf("open repository: %w", err)
		}
		return repo, nil
	}

	storage := filesystem.NewStorage(osfs.New(dotGit), cache.NewObjectLRUDefault())
	repo, err := git.Open(storage, osfs.New(root))
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, nil
}

func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", rev, err)
	}
	c, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", rev, err)
	}
	return c, nil
}
