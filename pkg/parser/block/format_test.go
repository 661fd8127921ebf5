package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/block"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "single line", content: "#太字#hello##", want: "#太字#hello##"},
		{name: "image", content: "#画像#cat.png|A cat##", want: "#画像#cat.png|A cat##"},
		{name: "attributes kept", content: "#太字[color:red]#x##", want: "#太字[color:red]#x##"},
		{name: "multi line", content: "#引用#\na\nb\n##", want: "#引用#\na\nb\n##"},
		{name: "opening line content", content: "#引用#a\nb\n##", want: "#引用#\na\nb\n##"},
		{name: "compound", content: "#太字+イタリック#x##", want: "#太字+イタリック#x##"},
		{name: "nested", content: "#重要#\n#太字#x##\n##", want: "#重要#\n#太字#x##\n##"},
		{name: "text between", content: "a\n#太字#x##\nb", want: "a\n#太字#x##\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := block.New(nil).Parse(tt.content, parser.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, block.Format(result.Node))
		})
	}
}

func TestFormat_RoundTripIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"#太字#hello##",
		"#画像#cat.png|A cat##",
		"#見出し3#Title##",
		"#引用#\nquoted\n##",
		"#重要#\n#太字[color:#00ff00]#x##\nplain\n##",
	}

	p := block.New(nil)
	for _, input := range inputs {
		first, err := p.Parse(input, parser.Options{})
		require.NoError(t, err)

		second, err := p.Parse(block.Format(first.Node), parser.Options{})
		require.NoError(t, err)

		assert.True(t, ast.Equal(first.Node, second.Node), "round trip changed %q", input)
	}
}

func TestFormat_DropsErrors(t *testing.T) {
	t.Parallel()

	doc := ast.NewDocument()
	ast.AppendChild(doc, ast.NewError("boom"), ast.NewText("kept"))
	assert.Equal(t, "kept", block.Format(doc))
	assert.Empty(t, block.Format(nil))
}
