// Package content provides the fallback parser. It accepts any input,
// classifies it and segments it into paragraphs.
package content

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
)

// Parser is the fallback parser. It never rejects input.
type Parser struct {
	cache *parser.Cache
}

// Option configures a Parser.
type Option func(*Parser)

// WithCache memoizes parse results in cache.
func WithCache(cache *parser.Cache) Option {
	return func(p *Parser) {
		p.cache = cache
	}
}

// New creates a content parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Type implements parser.Parser.
func (p *Parser) Type() parser.Type {
	return parser.TypeContent
}

// CanParse accepts any non-empty input.
func (p *Parser) CanParse(content string) bool {
	return content != ""
}

// Parse implements parser.Parser. The root is always a document whose
// metadata holds the analysis and whose children are paragraphs.
// Invalid UTF-8 is replaced and reported as a warning.
func (p *Parser) Parse(content string, opts parser.Options) (*ast.ParseResult, error) {
	if cached, ok := p.cache.Get(parser.TypeContent, content, opts); ok {
		return cached, nil
	}

	c := parser.NewCollector(opts.Strict)
	text := content
	if !utf8.ValidString(text) {
		c.Warn("content is not valid UTF-8; invalid bytes replaced")
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	analysis := Analyze(text)

	doc := ast.NewDocument()
	for _, para := range analysis.Paragraphs {
		node := ast.NewNode(ast.TypeParagraph)
		node.Content = para.Text
		node.SetMeta("line", para.Line)
		node.SetMeta("sentence_count", para.Sentences)
		ast.AppendChild(doc, node)
	}

	doc.SetMeta("content_type", analysis.ContentType)
	doc.SetMeta("language", analysis.Language)
	doc.SetMeta("japanese_ratio", analysis.JapaneseRatio)
	doc.SetMeta("ascii_ratio", analysis.ASCIIRatio)
	doc.SetMeta("fullwidth_ratio", analysis.FullwidthRatio)
	doc.SetMeta("paragraph_count", len(analysis.Paragraphs))
	doc.SetMeta("sentence_count", analysis.Sentences)
	doc.SetMeta("entities", analysis.Entities.asMap())

	result := c.Result(doc, parser.TypeContent)
	result.SetMeta("content_type", analysis.ContentType)
	p.cache.Put(parser.TypeContent, content, opts, result)
	return result, nil
}
