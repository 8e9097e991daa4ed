// Package runner converts many files concurrently.
package runner

import (
	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = fsutil.StdinName

// Options controls a multi-file conversion.
type Options struct {
	// Paths are the user-specified files or directories to process. "-"
	// reads standard input. If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// ignore patterns. If empty, the process working directory is used.
	WorkingDir string

	// Extensions selects files when walking directories. Files named
	// explicitly in Paths are converted whatever their extension.
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths, relative to
	// WorkingDir. Empty means everything that matches Extensions.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers. 0 or negative
	// means runtime.GOMAXPROCS(0).
	Jobs int

	// OutDir, when set, receives one request body per converted file.
	OutDir string

	// Compact writes request bodies on a single line.
	Compact bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutDir:       cfg.OutDir,
		Compact:      cfg.Compact,
		Config:       cfg,
	}
}

// DefaultExtensions returns the file extensions converted by default.
func DefaultExtensions() []string {
	return formatdetect.DefaultExtensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
