package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/kumihan/pkg/parser"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, typ := range parser.AllTypes() {
		got, ok := parser.ParseType(typ.String())
		assert.True(t, ok, typ.String())
		assert.Equal(t, typ, got)
		assert.True(t, typ.IsValid())
	}

	got, ok := parser.ParseType(" Markdown ")
	assert.True(t, ok)
	assert.Equal(t, parser.TypeMarkdown, got)

	_, ok = parser.ParseType("failed")
	assert.False(t, ok)
	assert.False(t, parser.TypeUnknown.IsValid())
	assert.Equal(t, "unknown", parser.TypeUnknown.String())
}

func TestCollector(t *testing.T) {
	t.Parallel()

	lenient := parser.NewCollector(false)
	lenient.Issue("unknown keyword %q", "foo")
	assert.False(t, lenient.HasErrors())
	assert.Equal(t, []string{`unknown keyword "foo"`}, lenient.Warnings())

	strict := parser.NewCollector(true)
	strict.Issue("unterminated block")
	strict.Warn("note")
	assert.True(t, strict.HasErrors())

	result := strict.Result(nil, parser.TypeBlock)
	assert.Equal(t, "block", result.ParserType)
	assert.Equal(t, []string{"unterminated block"}, result.Errors)
	assert.Equal(t, []string{"note"}, result.Warnings)
}
