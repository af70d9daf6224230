// Package runner lints many manuscripts at once: it discovers files under
// the given paths and runs each through a lint.Pipeline on a worker pool.
package runner

import (
	"github.com/yaklabco/novelint/pkg/config"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob patterns. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions lists the file extensions (with leading dot) picked up when
	// walking directories. Empty means config.DefaultExtensions(). Files
	// named explicitly are linted whatever their extension.
	Extensions []string

	// IncludeGlobs, when set, restricts discovery to matching paths.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of files processed concurrently. Zero or
	// negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig builds runner options for paths from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
