// Package markdown provides the Markdown compatibility parser. Block
// structure and inline spans are recognized with goldmark and mapped onto
// the document tree.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var patterns = parser.MustPatterns(map[string]string{
	"heading":    `(?m)^ {0,3}#{1,6}[ \t]+\S`,
	"fence":      "(?m)^ {0,3}(```|~~~)",
	"quote":      `(?m)^ {0,3}>`,
	"rule":       `(?m)^ {0,3}(?:(?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`,
	"table":      `(?m)^ {0,3}\|?[ \t]*:?-{3,}:?[ \t]*(?:\|[ \t]*:?-{3,}:?[ \t]*)+\|?[ \t]*$`,
	"strong":     `\*\*[^*\s][^*]*\*\*|__[^_\s][^_]*__`,
	"emphasis":   `(?:^|[^*\w])\*[^*\s][^*\n]*\*(?:[^*\w]|$)|(?:^|[^_\w])_[^_\s][^_\n]*_(?:[^_\w]|$)`,
	"codeSpan":   "`[^`\n]+`",
	"link":       `!?\[[^\]\n]+\]\([^)\s]+[^)]*\)`,
	"strike":     `~~[^~\s][^~]*~~`,
	"blockStart": `^\s*#[^#\s]`,
})

// Parser implements parser.Parser for Markdown.
type Parser struct {
	flavor string
	md     goldmark.Markdown
	cache  *parser.Cache
}

// Option configures a Parser.
type Option func(*Parser)

// WithFlavor selects the Markdown flavor. Unknown flavors fall back to
// GFM.
func WithFlavor(flavor string) Option {
	return func(p *Parser) {
		p.flavor = flavorOrDefault(flavor)
	}
}

// WithCache memoizes parse results in cache.
func WithCache(cache *parser.Cache) Option {
	return func(p *Parser) {
		p.cache = cache
	}
}

// New creates a Markdown parser. The default flavor is GFM.
func New(opts ...Option) *Parser {
	p := &Parser{flavor: FlavorGFM}
	for _, opt := range opts {
		opt(p)
	}
	p.md = newGoldmarkInstance(p.flavor)
	return p
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Type implements parser.Parser.
func (p *Parser) Type() parser.Type {
	return parser.TypeMarkdown
}

// CanParse reports whether content holds a construct that is specific to
// Markdown: headings, fences, quotes, rules, tables, emphasis, code spans
// or links. Plain bullet lists are left to the list parser.
func (p *Parser) CanParse(content string) bool {
	for _, name := range []string{"heading", "fence", "quote", "rule", "table", "strong", "codeSpan", "link"} {
		if patterns.Match(name, content) {
			return true
		}
	}
	if p.flavor == FlavorGFM && patterns.Match("strike", content) {
		return true
	}
	for _, line := range strings.Split(content, "\n") {
		if !patterns.Match("blockStart", line) && patterns.Match("emphasis", line) {
			return true
		}
	}
	return false
}

// Parse implements parser.Parser.
func (p *Parser) Parse(content string, opts parser.Options) (*ast.ParseResult, error) {
	if cached, ok := p.cache.Get(parser.TypeMarkdown, content, opts); ok {
		return cached, nil
	}

	source := []byte(content)
	doc := p.md.Parser().Parse(text.NewReader(source), gparser.WithContext(gparser.NewContext()))

	c := parser.NewCollector(opts.Strict)
	m := newMapper(source, c)
	nodes := m.mapBlocks(doc)

	result := c.Result(ast.Collapse(nodes), parser.TypeMarkdown)
	result.SetMeta("flavor", p.flavor)
	p.cache.Put(parser.TypeMarkdown, content, opts, result)
	return result, nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
