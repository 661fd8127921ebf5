package parser_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/builtin"
)

func paragraphs(n int) string {
	parts := make([]string, 0, n)
	for i := range n {
		parts = append(parts, fmt.Sprintf("line %d", i))
	}
	return strings.Join(parts, "\n\n")
}

// lineLocal marks a mock as safe to run chunk by chunk.
type lineLocal struct{ *mockParser }

func (lineLocal) LineLocal() {}

// lineParser emits one text node per non-blank line.
func lineParser() lineLocal {
	return lineLocal{&mockParser{typ: parser.TypeContent, parse: func(content string, _ parser.Options) (*ast.ParseResult, error) {
		doc := ast.NewDocument()
		for _, line := range strings.Split(content, "\n") {
			if strings.TrimSpace(line) != "" {
				ast.AppendChild(doc, ast.NewText(line))
			}
		}
		return ast.NewResult(doc, "content"), nil
	}}}
}

func TestSplitChunks_RoundTrips(t *testing.T) {
	t.Parallel()

	content := paragraphs(50)
	chunks := parser.SplitChunks(content, 10)

	require.Greater(t, len(chunks), 1)
	assert.Equal(t, content, strings.Join(chunks, "\n"))
}

func TestSplitChunks_SmallInputIsOneChunk(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a\n\nb"}, parser.SplitChunks("a\n\nb", 10))
	assert.Len(t, parser.SplitChunks(paragraphs(50), 0), 1)
}

func TestSplitChunks_NeverSplitsBlocksOrFences(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("#引用#\n")
	for i := range 10 {
		fmt.Fprintf(&sb, "quoted %d\n\n", i)
	}
	sb.WriteString("##\n\n```\n")
	for i := range 10 {
		fmt.Fprintf(&sb, "code %d\n\n", i)
	}
	sb.WriteString("```\n\ntail\n\nend")

	chunks := parser.SplitChunks(sb.String(), 2)
	for _, chunk := range chunks {
		assert.Equal(t, strings.Count(chunk, "#引用#"), strings.Count(chunk, "\n##"),
			"block open and close must share a chunk: %q", chunk)
		assert.Equal(t, 0, strings.Count(chunk, "```")%2, "fence split: %q", chunk)
	}
	assert.Equal(t, sb.String(), strings.Join(chunks, "\n"))
}

func TestChunked_MatchesSequentialOrder(t *testing.T) {
	t.Parallel()

	coord := parser.NewCoordinator()
	coord.Register(lineParser(), 10)

	content := paragraphs(200)
	chunked := &parser.Chunked{Coordinator: coord, ChunkLines: 20, Jobs: 4}

	result, err := chunked.Parse(context.Background(), content, parser.Options{})
	require.NoError(t, err)

	sequential := coord.Parse(content, parser.Options{})

	assert.Equal(t, "content", result.ParserType)
	assert.True(t, result.IsSuccessful())
	require.Len(t, result.Node.Children, len(sequential.Node.Children))
	for i := range sequential.Node.Children {
		assert.Equal(t, sequential.Node.Children[i].Content, result.Node.Children[i].Content)
	}
	assert.Greater(t, result.Metadata["chunks"], 1)
}

func TestChunked_SmallInputDelegates(t *testing.T) {
	t.Parallel()

	coord := parser.NewCoordinator()
	coord.Register(lineParser(), 10)

	chunked := &parser.Chunked{Coordinator: coord}
	result, err := chunked.Parse(context.Background(), "a\nb", parser.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Node.Children, 2)
	_, hasChunks := result.Metadata["chunks"]
	assert.False(t, hasChunks)
}

func TestChunked_Cancelled(t *testing.T) {
	t.Parallel()

	coord := parser.NewCoordinator()
	coord.Register(lineParser(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunked := &parser.Chunked{Coordinator: coord, ChunkLines: 5}
	_, err := chunked.Parse(ctx, paragraphs(100), parser.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunked_SkipsParsersThatAreNotLineLocal(t *testing.T) {
	t.Parallel()

	whole := &mockParser{typ: parser.TypeContent}
	coord := parser.NewCoordinator()
	coord.Register(whole, 10)

	chunked := &parser.Chunked{Coordinator: coord, ChunkLines: 5}
	result, err := chunked.Parse(context.Background(), paragraphs(100), parser.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, whole.calls())
	assert.Equal(t, paragraphs(100), result.Node.Content)
	_, hasChunks := result.Metadata["chunks"]
	assert.False(t, hasChunks)
}

func repeat(n int, format string) string {
	parts := make([]string, 0, n)
	for i := range n {
		parts = append(parts, fmt.Sprintf(format, i))
	}
	return strings.Join(parts, "\n\n")
}

// nodeLines lists metadata.line of every node in document order.
func nodeLines(root *ast.Node) []int {
	var lines []int
	_ = ast.Walk(root, func(n *ast.Node) error {
		if line, ok := n.MetaInt("line"); ok {
			lines = append(lines, line)
		}
		return nil
	})
	return lines
}

func TestChunked_SameResultAsCoordinator(t *testing.T) {
	t.Parallel()

	coord, err := builtin.NewCoordinator(builtin.Options{})
	require.NoError(t, err)

	tests := []struct {
		name        string
		content     string
		opts        parser.Options
		wantParser  string
		wantChunked bool
	}{
		{
			name:        "block document with markdown lines",
			content:     "#太字#top##\n\n" + repeat(30, "# Heading %d\n\nSome *italic* text"),
			wantParser:  "block",
			wantChunked: true,
		},
		{
			name:        "multi-line blocks",
			content:     repeat(40, "#引用#\nquoted %d\n\nmore\n##\n\n#太字#a## #下線#b##"),
			wantParser:  "block",
			wantChunked: true,
		},
		{
			name:        "inline keywords",
			content:     repeat(60, "#太字 bold# and text %d\n\nplain"),
			wantParser:  "keyword",
			wantChunked: true,
		},
		{
			name:       "markdown is parsed whole",
			content:    repeat(40, "# Heading %d\n\nSome *italic* text\n\n[ref]: https://example.com"),
			wantParser: "markdown",
		},
		{
			name:       "plain prose is parsed whole",
			content:    repeat(60, "これは段落 %d です。"),
			wantParser: "content",
		},
		{
			name:       "strict failure in one chunk falls back on the whole input",
			content:    repeat(30, "#太字#a%d##") + "\n\n#引用#\nnever closed\n\n" + repeat(30, "#太字#b%d##"),
			opts:       parser.Options{Strict: true},
			wantParser: "keyword",
		},
		{
			name:        "forced parser",
			content:     repeat(60, "#太字 bold# %d"),
			opts:        parser.Options{Parser: parser.TypeBlock},
			wantParser:  "block",
			wantChunked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chunked := &parser.Chunked{Coordinator: coord, ChunkLines: 20, Jobs: 4}
			require.Greater(t, len(parser.SplitChunks(tt.content, 20)), 1, "input must span several chunks")

			got, err := chunked.Parse(context.Background(), tt.content, tt.opts)
			require.NoError(t, err)
			want := coord.Parse(tt.content, tt.opts)

			assert.Equal(t, tt.wantParser, want.ParserType)
			assert.Equal(t, want.ParserType, got.ParserType)
			assert.True(t, ast.Equal(want.Node, got.Node), "trees differ")
			assert.Equal(t, nodeLines(want.Node), nodeLines(got.Node))
			assert.Equal(t, want.Errors, got.Errors)
			assert.Equal(t, want.Warnings, got.Warnings)

			_, hasChunks := got.Metadata["chunks"]
			assert.Equal(t, tt.wantChunked, hasChunks)
		})
	}
}
