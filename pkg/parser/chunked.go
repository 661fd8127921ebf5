package parser

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/kumihan/internal/logging"
	"github.com/yaklabco/kumihan/pkg/ast"
)

// DefaultChunkLines is the target number of lines per chunk.
const DefaultChunkLines = 500

// The block patterns mirror the block parser's, so that a cut never falls
// inside anything it treats as a block.
var (
	chunkBlockOpen   = regexp.MustCompile(`^\s*#(?:[^#\[\]\s\x{3000}]|\[[^\]]*\])+#`)
	chunkBlockSingle = regexp.MustCompile(`^\s*#(?:[^#\[\]\s\x{3000}]|\[[^\]]*\])+#.*##\s*$`)
	chunkBlockClose  = regexp.MustCompile(`^\s*##\s*$`)
	chunkFence       = regexp.MustCompile("^\\s*(```|~~~)")
)

// Chunked splits large inputs into line ranges and parses them concurrently
// through a Coordinator, merging the results in document order.
//
// The result equals a single Coordinator.Parse of the whole input. The
// parser is chosen once for the whole input; only a LineLocal parser is
// run chunk by chunk, and if any chunk fails the whole input is parsed in
// one call so that fallback sees the same content it would unchunked.
// Chunks are only cut at blank lines outside open blocks and code fences.
type Chunked struct {
	// Coordinator parses each chunk.
	Coordinator *Coordinator

	// ChunkLines is the target number of lines per chunk.
	// 0 or negative means DefaultChunkLines.
	ChunkLines int

	// Jobs bounds the number of concurrent chunk parses.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

// Parse parses content, fanning out across chunks when it is large enough.
// The only error returned is context cancellation.
func (c *Chunked) Parse(ctx context.Context, content string, opts Options) (*ast.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	chunkLines := c.ChunkLines
	if chunkLines <= 0 {
		chunkLines = DefaultChunkLines
	}

	chunks := SplitChunks(content, chunkLines)
	if len(chunks) < 2 {
		return c.Coordinator.Parse(content, opts), nil
	}

	p, warnings := c.lineLocalParser(content, opts)
	if p == nil {
		return c.Coordinator.Parse(content, opts), nil
	}

	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]*ast.ParseResult, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	offset := opts.LineOffset
	for i, chunk := range chunks {
		chunkOpts := opts
		chunkOpts.LineOffset = offset
		offset += strings.Count(chunk, "\n") + 1

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = c.Coordinator.tryParse(p, chunk, chunkOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	merged, ok := mergeChunks(p.Type(), results)
	if !ok {
		c.Coordinator.logger.Debug("chunk failed, parsing whole input",
			logging.FieldParser, p.Type(),
			logging.FieldChunks, len(chunks),
		)
		return c.Coordinator.Parse(content, opts), nil
	}

	if len(warnings) > 0 {
		merged.Warnings = append(warnings, merged.Warnings...)
	}
	merged.SetMeta("chunks", len(chunks))
	return merged, nil
}

// lineLocalParser returns the parser a whole-input parse would try first,
// together with the selection warnings, or nil when that parser cannot
// run chunk by chunk.
func (c *Chunked) lineLocalParser(content string, opts Options) (Parser, []string) {
	var (
		p        Parser
		warnings []string
	)
	if opts.Parser != TypeUnknown {
		p, _ = c.Coordinator.Get(opts.Parser)
	} else {
		p, warnings = c.Coordinator.Select(content)
	}

	if _, ok := p.(LineLocal); !ok {
		return nil, nil
	}
	return p, warnings
}

// mergeChunks joins chunk results in index order. It reports false when
// any chunk failed. Chunk roots are expanded back into their top-level
// nodes and collapsed again, as the parser does for the whole input.
func mergeChunks(t Type, results []*ast.ParseResult) (*ast.ParseResult, bool) {
	var (
		nodes    []*ast.Node
		warnings []string
	)

	for _, result := range results {
		if !result.IsSuccessful() {
			return nil, false
		}
		if root := result.Node; root.Type == ast.TypeDocument {
			nodes = append(nodes, root.Children...)
		} else {
			nodes = append(nodes, root)
		}
		warnings = append(warnings, result.Warnings...)
	}

	merged := ast.NewResult(ast.Collapse(nodes), t.String())
	merged.Warnings = warnings
	return merged, true
}

// SplitChunks splits content into pieces of roughly chunkLines lines.
// A cut happens only after a blank line that is outside any #keyword# block
// and any fenced code block, so constructs are never split across chunks.
// Joining the chunks with "\n" reproduces content.
func SplitChunks(content string, chunkLines int) []string {
	lines := strings.Split(content, "\n")
	if chunkLines <= 0 || len(lines) < chunkLines*2 {
		return []string{content}
	}

	var (
		chunks  []string
		start   int
		depth   int
		inFence bool
	)

	for i, line := range lines {
		if chunkFence.MatchString(line) {
			inFence = !inFence
		}
		switch {
		case chunkBlockClose.MatchString(line):
			if depth > 0 {
				depth--
			}
		case chunkBlockOpen.MatchString(line) && !chunkBlockSingle.MatchString(line):
			depth++
		}

		atBoundary := strings.TrimSpace(line) == "" && depth == 0 && !inFence
		if atBoundary && i+1-start >= chunkLines && i+1 < len(lines) {
			chunks = append(chunks, strings.Join(lines[start:i+1], "\n"))
			start = i + 1
		}
	}

	if start < len(lines) {
		tail := strings.Join(lines[start:], "\n")
		if strings.TrimSpace(tail) == "" && len(chunks) > 0 {
			chunks[len(chunks)-1] += "\n" + tail
		} else {
			chunks = append(chunks, tail)
		}
	}

	return chunks
}
