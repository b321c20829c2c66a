// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/bartekus/commitgate/cmd/commitgate/commands"
	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
)

// version is set via ldflags at build time.
var version = "0.0.0-dev"

func main() {
	root := commands.NewRootCmd(version)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(clierr.ExitCodeOf(err))
	}
}
