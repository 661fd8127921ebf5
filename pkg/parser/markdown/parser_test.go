package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/markdown"
)

func parse(t *testing.T, content string) *ast.Node {
	t.Helper()

	result, err := markdown.New().Parse(content, parser.Options{})
	require.NoError(t, err)
	require.True(t, result.IsSuccessful())
	assert.Equal(t, "markdown", result.ParserType)
	return result.Node
}

func TestNew_Flavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []markdown.Option
		flavor string
	}{
		{name: "default", flavor: markdown.FlavorGFM},
		{name: "commonmark", opts: []markdown.Option{markdown.WithFlavor(markdown.FlavorCommonMark)}, flavor: markdown.FlavorCommonMark},
		{name: "invalid", opts: []markdown.Option{markdown.WithFlavor("bogus")}, flavor: markdown.FlavorGFM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.flavor, markdown.New(tt.opts...).Flavor())
		})
	}
}

func TestParser_CanParse(t *testing.T) {
	t.Parallel()

	p := markdown.New()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "heading", content: "# Heading\n\ntext", want: true},
		{name: "fence", content: "```go\nx\n```", want: true},
		{name: "quote", content: "> quoted", want: true},
		{name: "emphasis", content: "Some *italic* text", want: true},
		{name: "strong", content: "a **b** c", want: true},
		{name: "code span", content: "use `go test`", want: true},
		{name: "link", content: "[site](https://example.com)", want: true},
		{name: "rule", content: "a\n\n---\n\nb", want: true},
		{name: "table", content: "| a | b |\n|---|---|\n| 1 | 2 |", want: true},
		{name: "strikethrough", content: "~~gone~~", want: true},
		{name: "plain list", content: "- a\n- b", want: false},
		{name: "block notation", content: "#太字#hello##", want: false},
		{name: "inline keyword", content: "#太字 hello#", want: false},
		{name: "plain", content: "just words", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.CanParse(tt.content))
		})
	}
}

func TestParser_HeadingAndEmphasis(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# Heading\n\nSome *italic* text")

	require.Equal(t, ast.TypeDocument, doc.Type)
	require.Len(t, doc.Children, 2)

	heading := doc.Children[0]
	assert.Equal(t, ast.TypeHeading, heading.Type)
	assert.Equal(t, "Heading", heading.Content)
	level, _ := heading.AttrInt("level")
	assert.Equal(t, 1, level)

	para := doc.Children[1]
	assert.Equal(t, ast.TypeParagraph, para.Type)
	require.Len(t, para.Children, 3)
	assert.Equal(t, "Some ", para.Children[0].Content)
	assert.Equal(t, ast.TypeItalic, para.Children[1].Type)
	assert.Equal(t, "italic", para.Children[1].Content)
	assert.Equal(t, " text", para.Children[2].Content)

	line, _ := para.MetaInt("line")
	assert.Equal(t, 3, line)
}

func TestParser_InlineSpans(t *testing.T) {
	t.Parallel()

	para := parse(t, "**bold** `code` [link](https://example.com \"T\") ![alt](cat.png) ~~gone~~")
	require.Equal(t, ast.TypeParagraph, para.Type)

	bold := ast.FindByType(para, ast.TypeBold)
	require.Len(t, bold, 1)
	assert.Equal(t, "bold", bold[0].Content)

	code := ast.FindByType(para, ast.TypeCode)
	require.Len(t, code, 1)
	assert.Equal(t, "code", code[0].Content)

	link := ast.FindByType(para, ast.TypeLink)
	require.Len(t, link, 1)
	assert.Equal(t, "https://example.com", link[0].AttrString("href"))
	assert.Equal(t, "T", link[0].AttrString("title"))
	assert.Equal(t, "link", link[0].Content)

	image := ast.FindByType(para, ast.TypeImage)
	require.Len(t, image, 1)
	assert.Equal(t, "cat.png", image[0].AttrString("src"))
	assert.Equal(t, "alt", image[0].AttrString("alt"))

	strike := ast.FindByType(para, ast.TypeStrikethrough)
	require.Len(t, strike, 1)
	assert.Equal(t, "gone", strike[0].Content)
}

func TestParser_FencedCode(t *testing.T) {
	t.Parallel()

	t.Run("info string", func(t *testing.T) {
		t.Parallel()

		node := parse(t, "```ruby\nputs 1\n```")
		assert.Equal(t, ast.TypeCodeBlock, node.Type)
		assert.Equal(t, "ruby", node.AttrString("language"))
		assert.Equal(t, "puts 1", node.Content)
	})

	t.Run("detected", func(t *testing.T) {
		t.Parallel()

		node := parse(t, "```\npackage main\n```")
		assert.Equal(t, "go", node.AttrString("language"))
		detected, _ := node.Meta("language_detected")
		assert.Equal(t, true, detected)
	})
}

func TestParser_BlockquoteAndRule(t *testing.T) {
	t.Parallel()

	doc := parse(t, "> quoted *text*\n\n---\n\nafter")
	require.Len(t, doc.Children, 3)

	quote := doc.Children[0]
	assert.Equal(t, ast.TypeQuote, quote.Type)
	require.Len(t, quote.Children, 1)
	assert.Equal(t, ast.TypeParagraph, quote.Children[0].Type)

	assert.Equal(t, ast.TypeHorizontalRule, doc.Children[1].Type)
	assert.Equal(t, "after", doc.Children[2].Content)
}

func TestParser_Lists(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# Tasks\n\n- [x] done\n- [ ] todo\n\n3. three\n4. four")
	require.Len(t, doc.Children, 3)

	tasks := doc.Children[1]
	assert.Equal(t, ast.TypeList, tasks.Type)
	assert.Equal(t, "checklist", tasks.AttrString("list_type"))
	require.Len(t, tasks.Children, 2)
	assert.Equal(t, "done", tasks.Children[0].Content)
	checked, _ := tasks.Children[0].Attr("checked")
	assert.Equal(t, true, checked)
	checked, _ = tasks.Children[1].Attr("checked")
	assert.Equal(t, false, checked)

	ordered := doc.Children[2]
	assert.Equal(t, "ordered", ordered.AttrString("list_type"))
	number, _ := ordered.Children[1].AttrInt("number")
	assert.Equal(t, 4, number)
}

func TestParser_NestedList(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# L\n\n- a\n  - b\n- c")
	list := doc.Children[1]
	require.Len(t, list.Children, 2)

	first := list.Children[0]
	assert.Equal(t, "a", first.Content)
	require.Len(t, first.Children, 1)
	assert.Equal(t, ast.TypeList, first.Children[0].Type)
	assert.Equal(t, "b", first.Children[0].Children[0].Content)
}

func TestParser_Table(t *testing.T) {
	t.Parallel()

	table := parse(t, "| a | b |\n|:--|--:|\n| 1 | 2 |")
	require.Equal(t, ast.TypeTable, table.Type)
	assert.Equal(t, []string{"left", "right"}, table.Attributes["alignments"])
	require.Len(t, table.Children, 2)

	header := table.Children[0]
	isHeader, _ := header.Meta("header")
	assert.Equal(t, true, isHeader)
	assert.Equal(t, "a", header.Children[0].Content)
	assert.Equal(t, "2", table.Children[1].Children[1].Content)
}

func TestParser_CommonMarkHasNoTables(t *testing.T) {
	t.Parallel()

	p := markdown.New(markdown.WithFlavor(markdown.FlavorCommonMark))
	result, err := p.Parse("| a | b |\n|---|---|\n| 1 | 2 |", parser.Options{})
	require.NoError(t, err)
	assert.Empty(t, ast.FindByType(result.Node, ast.TypeTable))
}

func TestParser_Deterministic(t *testing.T) {
	t.Parallel()

	content := "# T\n\n- a\n- b\n\n> q\n\n```\nx := 1\n```"
	first := parse(t, content)
	for range 5 {
		assert.True(t, ast.Equal(first, parse(t, content)))
	}
}
