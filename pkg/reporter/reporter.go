// Package reporter writes parse results as a styled tree or as JSON.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/kumihan/internal/ui/pretty"
	"github.com/yaklabco/kumihan/pkg/ast"
)

// Document is one parsed input.
type Document struct {
	// Path names the input ("-" for stdin).
	Path string

	// Result is the parse outcome. It is nil when the input could not be read.
	Result *ast.ParseResult

	// Err is set when the input could not be read or parsed at all.
	Err error
}

// Failed reports whether the document has no usable result.
func (d Document) Failed() bool {
	return d.Err != nil || d.Result == nil || !d.Result.IsSuccessful()
}

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given documents.
	// It returns the number of failed documents and any write errors.
	Report(ctx context.Context, docs []Document) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatTree
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTree:
		return NewTreeReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Tally aggregates statistics over docs.
func Tally(docs []Document) pretty.Stats {
	stats := pretty.Stats{Documents: len(docs)}
	for _, doc := range docs {
		if doc.Failed() {
			stats.Failed++
		}
		if doc.Err != nil {
			stats.Errors++
		}
		if doc.Result == nil {
			continue
		}
		stats.Errors += len(doc.Result.Errors)
		stats.Warnings += len(doc.Result.Warnings)
		stats.Nodes += ast.Count(doc.Result.Node)
	}
	return stats
}
