// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bartekus/commitgate/internal/commitlint"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the request rate, per second, toward the API.
	DefaultRateLimit = 5.0

	// PerPage is the maximum page size of the pull request commits endpoint.
	PerPage = 100
)

// GitHubClient lists pull request commits from the GitHub REST API.
type GitHubClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
	limit      int
}

// GitHubOption configures a GitHubClient.
type GitHubOption func(*GitHubClient)

// WithToken sets the token for authenticated requests.
func WithToken(token string) GitHubOption {
	return func(c *GitHubClient) {
		c.token = token
	}
}

// WithBaseURL sets the API base URL (GitHub Enterprise, tests).
func WithBaseURL(u string) GitHubOption {
	return func(c *GitHubClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) GitHubOption {
	return func(c *GitHubClient) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the request rate per second. Zero or less removes the throttle.
func WithRateLimit(perSecond float64) GitHubOption {
	return func(c *GitHubClient) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithCommitLimit stops paging once n commits have been collected. Zero fetches every page.
func WithCommitLimit(n int) GitHubOption {
	return func(c *GitHubClient) {
		c.limit = n
	}
}

// NewGitHubClient creates a GitHub API client.
func NewGitHubClient(opts ...GitHubOption) *GitHubClient {
	c := &GitHubClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiCommit is one element of GET /repos/{owner}/{repo}/pulls/{n}/commits.
type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
		Committer struct {
			Name string `json:"name"`
		} `json:"committer"`
	} `json:"commit"`
}

// ListCommits implements Lister.
func (c *GitHubClient) ListCommits(ctx context.Context, pr PullRequest) ([]commitlint.Commit, error) {
	commits, err := c.listCommits(ctx, pr)
	return commits, upstream(NameGitHub, err)
}

func (c *GitHubClient) listCommits(ctx context.Context, pr PullRequest) ([]commitlint.Commit, error) {
	if pr.Owner == "" || pr.Repo == "" {
		return nil, ErrInvalidRepository
	}
	if pr.Number <= 0 {
		return nil, fmt.Errorf("invalid pull request number %d", pr.Number)
	}

	var commits []commitlint.Commit
	for page := 1; ; page++ {
		batch, hasNext, err := c.fetchPage(ctx, pr, page)
		if err != nil {
			return nil, fmt.Errorf("fetching %s page %d: %w", pr, page, err)
		}
		for _, ac := range batch {
			commits = append(commits, commitlint.Commit{
				SHA:           ac.SHA,
				AuthorName:    ac.Commit.Author.Name,
				CommitterName: ac.Commit.Committer.Name,
				Message:       ac.Commit.Message,
			})
		}

		if c.limit > 0 && len(commits) >= c.limit {
			return commits[:c.limit], nil
		}
		if !hasNext || len(batch) < PerPage {
			return commits, nil
		}
	}
}

func (c *GitHubClient) fetchPage(ctx context.Context, pr PullRequest, page int) ([]apiCommit, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/commits?%s",
		c.baseURL,
		url.PathEscape(pr.Owner),
		url.PathEscape(pr.Repo),
		pr.Number,
		url.Values{
			"per_page": {fmt.Sprint(PerPage)},
			"page":     {fmt.Sprint(page)},
		}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "commitgate")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, false, ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return nil, false, ErrRateLimited
		}
		return nil, false, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, false, ErrRateLimited
	default:
		return nil, false, fmt.Errorf("%w: status %d", ErrAPI, resp.StatusCode)
	}

	var batch []apiCommit
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, false, fmt.Errorf("%w: decoding response: %v", ErrAPI, err)
	}

	return batch, hasNextLink(resp.Header.Get("Link")), nil
}

// hasNextLink reports whether an RFC 8288 Link header carries rel="next".
func hasNextLink(header string) bool {
	for _, part := range strings.Split(header, ",") {
		for _, param := range strings.Split(part, ";")[1:] {
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return true
			}
		}
	}
	return false
}
