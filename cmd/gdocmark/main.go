// Package main is the entry point for the gdocmark CLI.
package main

import (
	"errors"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/gdocmark/internal/cli"
	"github.com/yaklabco/gdocmark/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.Default()

	// Match GOMAXPROCS to the container CPU quota; the worker pool is sized from it.
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Debugf)); err != nil {
		logger.Debug("could not set GOMAXPROCS", logging.FieldError, err)
	}

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Conversion failures have already been reported.
		if !errors.Is(err, cli.ErrConversionFailed) {
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
