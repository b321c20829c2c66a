// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/commitlint"
	"github.com/bartekus/commitgate/internal/config"
	"github.com/bartekus/commitgate/internal/projectroot"
	"github.com/bartekus/commitgate/internal/source"
)

// resolveConfig layers defaults, the policy file and the environment.
// Command flags are applied by the caller.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}

	if err := config.LoadDotEnv(wd); err != nil {
		return config.Config{}, clierr.Wrap(clierr.ExitUsage, "", err)
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = defaultConfigPath(wd)
	}

	file, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, clierr.Wrap(clierr.ExitUsage, "", err)
	}

	cfg := config.Defaults()
	cfg.ApplyFile(file)
	cfg.ApplyEnv(os.Getenv)

	verboseLogger(cmd).Printf("policy file: %s (found: %t)", path, file != nil)
	return cfg, nil
}

func defaultConfigPath(wd string) string {
	root, err := projectroot.Find(wd)
	if err != nil {
		return filepath.Join(wd, config.FileName)
	}
	return filepath.Join(root, config.FileName)
}

// exitFor maps a domain error onto the process exit code.
func exitFor(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, commitlint.ErrCountExceeded):
		return clierr.Wrap(clierr.ExitCountExceeded, "", err)
	case errors.Is(err, commitlint.ErrInvalidMessage):
		return clierr.Wrap(clierr.ExitInvalid, "", err)
	case errors.Is(err, source.ErrUpstream):
		return clierr.Wrap(clierr.ExitUpstream, "", err)
	default:
		return fmt.Errorf("commitgate: %w", err)
	}
}
