// Package runner parses batches of Kumihan source files concurrently.
package runner

import "github.com/yaklabco/kumihan/pkg/parser"

// Options controls a multi-file parse run.
type Options struct {
	// Paths are the user-specified files or directories to parse.
	// Explicit files are always parsed; directories are walked for files
	// with a matching extension. Empty means the working directory.
	Paths []string

	// WorkingDir is the base directory that Ignore patterns are relative
	// to. If empty, the process working directory is used.
	WorkingDir string

	// Extensions lists the file extensions (with leading dot) picked up
	// when walking directories. Defaults to DefaultExtensions().
	Extensions []string

	// Ignore holds glob patterns ("**" allowed) for files and
	// directories to skip while walking.
	Ignore []string

	// Jobs bounds the number of files parsed concurrently.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// ParseOptions is passed to every parse call.
	ParseOptions parser.Options
}

// DefaultExtensions returns the extensions of Kumihan source files.
func DefaultExtensions() []string {
	return []string{".txt", ".kumihan"}
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
