package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the output. Nil means os.Stdout.
	Writer io.Writer

	// Format selects tree or JSON output. Empty means tree.
	Format Format

	// Color is "auto", "always" or "never"; only tree output is styled.
	Color string

	// ShowMetadata prints node and result metadata in tree output.
	ShowMetadata bool

	// ShowSummary ends tree output with a one-line tally.
	ShowSummary bool

	// Compact disables JSON indentation.
	Compact bool

	// Version is recorded in JSON output.
	Version string
}

// DefaultOptions returns tree output to stdout with automatic color and
// a summary line.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatTree,
		Color:       "auto",
		ShowSummary: true,
	}
}
