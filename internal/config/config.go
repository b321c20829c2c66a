// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves the commitgate policy and CI context from a policy
// file, a .env file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/commitgate/internal/commitlint"
	"github.com/bartekus/commitgate/internal/source"
)

// FileName is the policy file looked up at the project root.
const FileName = ".commitgate.yaml"

// File is the on-disk policy file. Pointer fields distinguish "unset" from zero values.
type File struct {
	MaxCommits           *int     `yaml:"max_commits"`
	AutomationIdentities []string `yaml:"automation_identities"`
	AllowMerge           *bool    `yaml:"allow_merge"`
	RequireFooter        *bool    `yaml:"require_footer"`
	Source               string   `yaml:"source"`
}

// Config is the resolved configuration of one run.
type Config struct {
	Policy commitlint.Policy

	Source     string
	Token      string
	APIURL     string
	Repository string
	PullNumber int

	EventPath string
	BaseRef   string
	HeadRef   string

	ReportFile  string
	StepSummary string
	Annotations bool
}

// Defaults returns the canonical configuration.
func Defaults() Config {
	return Config{
		Policy: commitlint.DefaultPolicy(),
		Source: source.NameGitHub,
	}
}

// LoadFile reads a policy file. A missing file yields (nil, nil).
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the configured policy file
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &file, nil
}

// ApplyFile overlays the values set in f.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.MaxCommits != nil {
		c.Policy.MaxCommits = *f.MaxCommits
	}
	if f.AutomationIdentities != nil {
		c.Policy.AutomationIdentities = slices.Clone(f.AutomationIdentities)
	}
	if f.AllowMerge != nil {
		c.Policy.AllowMerge = *f.AllowMerge
	}
	if f.RequireFooter != nil {
		c.Policy.RequireFooter = *f.RequireFooter
	}
	if f.Source != "" {
		c.Source = f.Source
	}
}

var pullRefPattern = regexp.MustCompile(`^refs/pull/(\d+)/`)

// ApplyEnv overlays the CI environment read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if token := getenv("INPUT_TOKEN"); token != "" {
		c.Token = token
	} else if token := getenv("GITHUB_TOKEN"); token != "" {
		c.Token = token
	}
	if v := getenv("GITHUB_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := getenv("GITHUB_REPOSITORY"); v != "" {
		c.Repository = v
	}
	if v := getenv("GITHUB_EVENT_PATH"); v != "" {
		c.EventPath = v
	}
	if v := getenv("GITHUB_STEP_SUMMARY"); v != "" {
		c.StepSummary = v
	}
	if m := pullRefPattern.FindStringSubmatch(getenv("GITHUB_REF")); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.PullNumber = n
		}
	}
	c.Annotations = getenv("GITHUB_ACTIONS") == "true"
}

// LoadDotEnv loads dir/.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// PullRequest returns the pull request addressed by the configuration.
func (c Config) PullRequest() (source.PullRequest, error) {
	owner, repo, err := source.ParseRepository(c.Repository)
	if err != nil {
		return source.PullRequest{}, err
	}
	return source.PullRequest{Owner: owner, Repo: repo, Number: c.PullNumber}, nil
}

// Validate checks that the configuration is usable by its source.
func (c Config) Validate() error {
	if !slices.Contains(source.Names, c.Source) {
		return fmt.Errorf("unknown source %q (must be one of %v)", c.Source, source.Names)
	}
	if c.Policy.MaxCommits < 0 {
		return fmt.Errorf("max_commits must not be negative, got %d", c.Policy.MaxCommits)
	}

	switch c.Source {
	case source.NameGitHub:
		if _, err := c.PullRequest(); err != nil {
			return err
		}
		if c.PullNumber <= 0 {
			return errors.New("pull request number is required for the github source (--pr or GITHUB_REF)")
		}
	case source.NameEvent:
		if c.EventPath == "" {
			return errors.New("event path is required for the event source (--event-path or GITHUB_EVENT_PATH)")
		}
	case source.NameGit:
		if c.BaseRef == "" {
			return errors.New("base revision is required for the git source (--base)")
		}
	}
	return nil
}
