// Package parser provides the notation parser contract and the Coordinator
// that selects, sequences and falls back across registered parsers.
package parser

import (
	"errors"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// FailedParserType is the ParserType of a result no parser could produce.
const FailedParserType = "failed"

// Sentinel errors used for coordinator-level failures.
var (
	ErrEmptyContent = errors.New("empty content")
	ErrNoParsers    = errors.New("no parsers registered")
	ErrAllFailed    = errors.New("all parsers failed")
)

// Parser recognizes one notation dialect and builds a node tree from it.
//
// The coordinator defines this interface and the notation packages
// (block, keyword, list, markdown, content) implement it.
//
// Implementations must be:
//   - deterministic for a given (content, options) pair,
//   - stateless across calls, apart from caches keyed by content,
//   - safe for concurrent use by multiple goroutines.
type Parser interface {
	// Type returns the parser identity.
	Type() Type

	// CanParse reports whether content looks like this parser's notation.
	// It must not modify any state.
	CanParse(content string) bool

	// Parse builds a tree from content. Recoverable problems are reported
	// in the result's Warnings/Errors; a returned error is a parser-internal
	// failure and is converted into an error result by the coordinator.
	Parse(content string, opts Options) (*ast.ParseResult, error)
}

// LineLocal is implemented by parsers whose result for an input equals
// the concatenation of their results for its chunks, as cut by
// SplitChunks, when each chunk is parsed with Options.LineOffset set to
// the number of input lines before it. Such a parser builds its root with
// ast.Collapse over its top-level nodes and reports line numbers
// relative to LineOffset.
//
// Chunked only fans out across chunks for LineLocal parsers.
type LineLocal interface {
	Parser

	// LineLocal marks the parser; it has no behavior.
	LineLocal()
}
