// Package main provides the entry point for the svnop CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/svnop/internal/cli"
	"github.com/mrz1836/svnop/internal/signal"
)

// Set at build time via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // ldflags target
	commit  = "none"    //nolint:gochecknoglobals // ldflags target
	date    = "unknown" //nolint:gochecknoglobals // ldflags target
)

func main() {
	h := signal.NewHandler(context.Background())
	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	interrupted := h.WasInterrupted()
	h.Stop()

	if interrupted {
		os.Exit(signal.ExitCode)
	}
	os.Exit(cli.ExitCodeForError(err))
}
