package keyword

import (
	"strings"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var patterns = parser.MustPatterns(map[string]string{
	// #keyword[attrs] content#
	"inline": `#((?:[^#\s\[\]]|\[[^\]]*\])+)[ \t\x{3000}]+([^#\n]*[^#\s])[ \t]*#`,
})

// Parser recognizes inline keyword directives of the form
// "#keyword[key:value] content#" and turns each into a node.
type Parser struct {
	vocab *Vocabulary
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

// New creates a keyword parser over vocab. A nil vocab uses the built-in
// vocabulary.
func New(vocab *Vocabulary, opts ...Option) *Parser {
	if vocab == nil {
		vocab = NewVocabulary()
	}
	p := &Parser{vocab: vocab}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Vocabulary returns the vocabulary the parser resolves keywords against.
func (p *Parser) Vocabulary() *Vocabulary {
	return p.vocab
}

// Type implements parser.Parser.
func (p *Parser) Type() parser.Type {
	return parser.TypeKeyword
}

// LineLocal implements parser.LineLocal; every line is parsed on its own.
func (p *Parser) LineLocal() {}

// CanParse reports whether some line holds a directive with a known
// keyword. Unknown keywords alone do not claim the input, so stray
// hashtags are left to other parsers.
func (p *Parser) CanParse(content string) bool {
	for _, m := range patterns.Get("inline").FindAllStringSubmatch(content, -1) {
		if _, _, ok := p.vocab.Lookup(m[1]); ok {
			return true
		}
	}
	return false
}

// Parse implements parser.Parser. Each non-blank line becomes a node: the
// directive itself when it spans the whole line, a text node when the line
// holds none, and a paragraph mixing text and directives otherwise.
func (p *Parser) Parse(content string, opts parser.Options) (*ast.ParseResult, error) {
	if cached, ok := p.cache.Get(parser.TypeKeyword, content, opts); ok {
		return cached, nil
	}

	c := parser.NewCollector(opts.Strict)
	var nodes []*ast.Node

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		node := p.parseLine(trimmed, c)
		node.SetMeta("line", opts.LineOffset+i+1)
		nodes = append(nodes, node)
	}

	result := c.Result(ast.Collapse(nodes), parser.TypeKeyword)
	p.cache.Put(parser.TypeKeyword, content, opts, result)
	return result, nil
}

func (p *Parser) parseLine(line string, c *parser.Collector) *ast.Node {
	matches := patterns.Get("inline").FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return ast.NewText(line)
	}

	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(line) {
		m := matches[0]
		return p.vocab.Build(line[m[2]:m[3]], line[m[4]:m[5]], nil, c)
	}

	paragraph := ast.NewNode(ast.TypeParagraph)
	last := 0
	for _, m := range matches {
		if text := line[last:m[0]]; text != "" {
			ast.AppendChild(paragraph, ast.NewText(text))
		}
		ast.AppendChild(paragraph, p.vocab.Build(line[m[2]:m[3]], line[m[4]:m[5]], nil, c))
		last = m[1]
	}
	if text := line[last:]; text != "" {
		ast.AppendChild(paragraph, ast.NewText(text))
	}
	return paragraph
}
