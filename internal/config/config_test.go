package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitgate/internal/commitlint"
	"github.com/bartekus/commitgate/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 100, cfg.Policy.MaxCommits)
	assert.Equal(t, []string{"GitHub", "github-actions"}, cfg.Policy.AutomationIdentities)
	assert.True(t, cfg.Policy.AllowMerge)
	assert.False(t, cfg.Policy.RequireFooter)
	assert.Equal(t, source.NameGitHub, cfg.Source)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
max_commits: 20
automation_identities: [actions-user]
allow_merge: false
require_footer: true
source: event
`)

	f, err := LoadFile(path)
	require.NoError(t, err)

	cfg := Defaults()
	cfg.ApplyFile(f)
	assert.Equal(t, commitlint.Policy{
		MaxCommits:           20,
		AutomationIdentities: []string{"actions-user"},
		AllowMerge:           false,
		RequireFooter:        true,
	}, cfg.Policy)
	assert.Equal(t, source.NameEvent, cfg.Source)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "max_commits: 0\n")

	f, err := LoadFile(path)
	require.NoError(t, err)

	cfg := Defaults()
	cfg.ApplyFile(f)
	assert.Zero(t, cfg.Policy.MaxCommits)
	assert.True(t, cfg.Policy.AllowMerge)
	assert.Equal(t, commitlint.DefaultAutomationIdentities, cfg.Policy.AutomationIdentities)
}

func TestLoadFile_Missing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Nil(t, f)

	cfg := Defaults()
	cfg.ApplyFile(f)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFile_Empty(t *testing.T) {
	f, err := LoadFile(writeFile(t, t.TempDir(), FileName, ""))
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestLoadFile_UnknownKey(t *testing.T) {
	_, err := LoadFile(writeFile(t, t.TempDir(), FileName, "max_commit: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_commit")
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	cfg.ApplyEnv(envMap(map[string]string{
		"INPUT_TOKEN":         "input-token",
		"GITHUB_TOKEN":        "env-token",
		"GITHUB_API_URL":      "https://ghe.example.com/api/v3",
		"GITHUB_REPOSITORY":   "octo/widgets",
		"GITHUB_EVENT_PATH":   "/tmp/event.json",
		"GITHUB_STEP_SUMMARY": "/tmp/summary.md",
		"GITHUB_REF":          "refs/pull/42/merge",
		"GITHUB_ACTIONS":      "true",
	}))

	assert.Equal(t, "input-token", cfg.Token)
	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.APIURL)
	assert.Equal(t, "octo/widgets", cfg.Repository)
	assert.Equal(t, "/tmp/event.json", cfg.EventPath)
	assert.Equal(t, "/tmp/summary.md", cfg.StepSummary)
	assert.Equal(t, 42, cfg.PullNumber)
	assert.True(t, cfg.Annotations)

	pr, err := cfg.PullRequest()
	require.NoError(t, err)
	assert.Equal(t, source.PullRequest{Owner: "octo", Repo: "widgets", Number: 42}, pr)
}

func TestApplyEnv_Fallbacks(t *testing.T) {
	cfg := Defaults()
	cfg.ApplyEnv(envMap(map[string]string{
		"GITHUB_TOKEN": "env-token",
		"GITHUB_REF":   "refs/heads/main",
	}))
	assert.Equal(t, "env-token", cfg.Token)
	assert.Zero(t, cfg.PullNumber)
	assert.False(t, cfg.Annotations)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "COMMITGATE_TEST_TOKEN=from-dotenv\nCOMMITGATE_TEST_SET=from-dotenv\n")

	t.Setenv("COMMITGATE_TEST_SET", "from-env")
	t.Setenv("COMMITGATE_TEST_TOKEN", "")
	require.NoError(t, os.Unsetenv("COMMITGATE_TEST_TOKEN"))

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "from-dotenv", os.Getenv("COMMITGATE_TEST_TOKEN"))
	assert.Equal(t, "from-env", os.Getenv("COMMITGATE_TEST_SET"))

	require.NoError(t, LoadDotEnv(t.TempDir()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "github ok",
			mutate: func(c *Config) {
				c.Repository = "octo/widgets"
				c.PullNumber = 1
			},
		},
		{
			name:    "github missing repo",
			mutate:  func(c *Config) { c.PullNumber = 1 },
			wantErr: "invalid repository",
		},
		{
			name:    "github missing number",
			mutate:  func(c *Config) { c.Repository = "octo/widgets" },
			wantErr: "pull request number",
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Source = "svn" },
			wantErr: "unknown source",
		},
		{
			name: "negative cap",
			mutate: func(c *Config) {
				c.Source = source.NameEvent
				c.EventPath = "e.json"
				c.Policy.MaxCommits = -1
			},
			wantErr: "max_commits",
		},
		{
			name:    "event missing path",
			mutate:  func(c *Config) { c.Source = source.NameEvent },
			wantErr: "event path",
		},
		{
			name:    "git missing base",
			mutate:  func(c *Config) { c.Source = source.NameGit },
			wantErr: "base revision",
		},
		{
			name: "git ok",
			mutate: func(c *Config) {
				c.Source = source.NameGit
				c.BaseRef = "origin/main"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
