// Package block parses the Kumihan block notation: single-line
// "#keyword#content##" and multi-line "#keyword#" ... "##" blocks, which
// may nest.
package block

import (
	"fmt"
	"strings"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/langdetect"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/keyword"
)

// Block kinds recorded in metadata.block_type.
const (
	SingleLine = "single_line"
	MultiLine  = "multi_line"
)

// keywordSegment matches a keyword with optional [key:value] attributes.
// Whitespace is only allowed inside brackets, and brackets may contain '#'
// so hex colors survive.
const keywordSegment = `((?:[^#\[\]\s\x{3000}]|\[[^\]]*\])+)`

//nolint:gochecknoglobals // Compiled once, read-only.
var patterns = parser.MustPatterns(map[string]string{
	"single": `^\s*#` + keywordSegment + `#(.*)##\s*$`,
	"inline": `#` + keywordSegment + `#(.*?)##(?:\s+|$)`,
	"open":   `^\s*#` + keywordSegment + `#(.*)$`,
	"close":  `^\s*##\s*$`,
	"marker": `#` + keywordSegment + `#`,
})

// Parser recognizes block notation.
type Parser struct {
	vocab *keyword.Vocabulary
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

// New creates a block parser resolving keywords through vocab.
// A nil vocab uses the built-in vocabulary.
func New(vocab *keyword.Vocabulary, opts ...Option) *Parser {
	if vocab == nil {
		vocab = keyword.NewVocabulary()
	}
	p := &Parser{vocab: vocab}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Type implements parser.Parser.
func (p *Parser) Type() parser.Type {
	return parser.TypeBlock
}

// LineLocal implements parser.LineLocal; chunks are only cut between
// top-level blocks.
func (p *Parser) LineLocal() {}

// CanParse reports whether content holds a single-line block, a block
// opening line, or at least one keyword marker together with a close
// marker.
func (p *Parser) CanParse(content string) bool {
	markers, closes := 0, 0
	for _, line := range strings.Split(content, "\n") {
		if patterns.Match("single", line) || isOpen(line) {
			return true
		}
		if patterns.Match("close", line) {
			closes++
		}
		if patterns.Match("marker", line) {
			markers++
		}
	}
	return markers > 0 && closes > 0
}

// isOpen reports whether line opens a multi-line block.
func isOpen(line string) bool {
	return patterns.Match("open", line) && !patterns.Match("single", line)
}

// Parse implements parser.Parser.
func (p *Parser) Parse(content string, opts parser.Options) (*ast.ParseResult, error) {
	if cached, ok := p.cache.Get(parser.TypeBlock, content, opts); ok {
		return cached, nil
	}

	c := parser.NewCollector(opts.Strict)
	nodes := p.parseLines(strings.Split(content, "\n"), opts.LineOffset, c)

	result := c.Result(ast.Collapse(nodes), parser.TypeBlock)
	p.cache.Put(parser.TypeBlock, content, opts, result)
	return result, nil
}

// parseLines parses a run of lines. offset is the 0-based index of
// lines[0] in the whole input, used for line numbers.
func (p *Parser) parseLines(lines []string, offset int, c *parser.Collector) []*ast.Node {
	var nodes []*ast.Node

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineNo := offset + i + 1

		if patterns.Match("single", line) {
			nodes = append(nodes, p.singleLine(line, lineNo, c)...)
			continue
		}

		if isOpen(line) {
			m := patterns.Submatch("open", line)
			end := findClose(lines, i)
			if end < 0 {
				c.Issue("line %d: unterminated block #%s#", lineNo, m[1])
				errNode := ast.NewError(fmt.Sprintf("unterminated block #%s# opened at line %d", m[1], lineNo))
				errNode.SetAttr("keyword", m[1]).SetMeta("line", lineNo)
				nodes = append(nodes, errNode)
				continue
			}

			body := lines[i+1 : end]
			bodyOffset := offset + i + 1
			if first := strings.TrimSpace(m[2]); first != "" {
				body = append([]string{first}, body...)
				bodyOffset--
			}

			var node *ast.Node
			if !p.verbatim(m[1]) && containsBlocks(body) {
				node = p.buildBlock(m[1], "", p.parseLines(body, bodyOffset, c), c)
			} else {
				node = p.buildBlock(m[1], strings.Join(body, "\n"), nil, c)
			}
			node.SetMeta("block_type", MultiLine).SetMeta("line", lineNo)
			nodes = append(nodes, node)
			i = end
			continue
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" && !patterns.Match("close", line) {
			text := ast.NewText(trimmed)
			text.SetMeta("line", lineNo)
			nodes = append(nodes, text)
		} else if trimmed != "" {
			c.Warn("line %d: close marker without an open block", lineNo)
		}
	}

	return nodes
}

// singleLine parses a line holding one or more "#keyword#content##"
// blocks. A close marker ends a block only when followed by whitespace or
// the end of the line, so "#a#x## #b#y##" is two blocks while "#a#x##y##"
// is one. Text between blocks becomes text nodes.
func (p *Parser) singleLine(line string, lineNo int, c *parser.Collector) []*ast.Node {
	line = strings.TrimSpace(line)

	var nodes []*ast.Node
	text := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			nodes = append(nodes, ast.NewText(s).SetMeta("line", lineNo))
		}
	}

	last := 0
	for _, m := range patterns.Get("inline").FindAllStringSubmatchIndex(line, -1) {
		text(line[last:m[0]])
		node := p.buildBlock(line[m[2]:m[3]], line[m[4]:m[5]], nil, c)
		node.SetMeta("block_type", SingleLine).SetMeta("line", lineNo)
		nodes = append(nodes, node)
		last = m[1]
	}
	text(line[last:])

	return nodes
}

// findClose returns the index of the close marker matching the block
// opened at lines[open], or -1.
func findClose(lines []string, open int) int {
	depth := 1
	for j := open + 1; j < len(lines); j++ {
		switch {
		case patterns.Match("close", lines[j]):
			depth--
			if depth == 0 {
				return j
			}
		case isOpen(lines[j]):
			depth++
		}
	}
	return -1
}

// verbatim reports whether the block body is kept as raw text.
func (p *Parser) verbatim(segment string) bool {
	compound, def, ok := p.vocab.Lookup(segment)
	return ok && !compound.IsCompound() && def.Name == keyword.NameCode
}

func containsBlocks(lines []string) bool {
	for _, line := range lines {
		if patterns.Match("single", line) || isOpen(line) {
			return true
		}
	}
	return false
}

// buildBlock creates the node for one block. Known keywords with a
// dedicated handler get it; other known keywords go through the
// vocabulary; unknown keywords yield a generic block node.
func (p *Parser) buildBlock(segment, content string, children []*ast.Node, c *parser.Collector) *ast.Node {
	segment = strings.TrimSpace(segment)
	rest, attrs := parser.ExtractAttributes(segment)
	compound, def, known := p.vocab.Lookup(segment)

	var node *ast.Node
	switch {
	case !known:
		c.Issue("unknown block keyword %q", compound.Primary)
		node = ast.NewNode(ast.TypeBlock)
		node.SetAttr("keyword", rest)
		attachBody(node, content, children)
		keyword.ApplyAttributes(node, attrs, c)
	case compound.IsCompound():
		node = p.vocab.Build(segment, content, children, c)
	default:
		handler, ok := handlers[def.Name]
		if !ok {
			node = p.vocab.Build(segment, content, children, c)
			break
		}
		node = handler(def, content, children)
		node.SetAttr("keyword", rest)
		keyword.ApplyAttributes(node, attrs, c)
		if def.Name == keyword.NameCode {
			detectLanguage(node)
		}
	}

	if segment != rest {
		node.SetMeta("segment", segment)
	}
	return node
}

// handler builds the node for a keyword with dedicated semantics.
type handler func(def keyword.Definition, content string, children []*ast.Node) *ast.Node

//nolint:gochecknoglobals // Read-only dispatch table.
var handlers = map[string]handler{
	keyword.NameImage:     imageBlock,
	keyword.NameCode:      codeBlock,
	keyword.NameQuote:     containerBlock(ast.TypeQuote),
	keyword.NameImportant: containerBlock(ast.TypeImportant),
	keyword.NameWarning:   containerBlock(ast.TypeWarning),
}

// imageBlock splits "src|alt" into attributes.
func imageBlock(_ keyword.Definition, content string, _ []*ast.Node) *ast.Node {
	node := ast.NewNode(ast.TypeImage)
	src, alt, _ := strings.Cut(content, "|")
	node.SetAttr("src", strings.TrimSpace(src))
	node.SetAttr("alt", strings.TrimSpace(alt))
	return node
}

// codeBlock keeps content verbatim.
func codeBlock(_ keyword.Definition, content string, _ []*ast.Node) *ast.Node {
	node := ast.NewNode(ast.TypeCodeBlock)
	node.Content = content
	return node
}

func containerBlock(nodeType string) handler {
	return func(_ keyword.Definition, content string, children []*ast.Node) *ast.Node {
		node := ast.NewNode(nodeType)
		attachBody(node, content, children)
		return node
	}
}

func attachBody(node *ast.Node, content string, children []*ast.Node) {
	if len(children) > 0 {
		ast.AppendChild(node, children...)
		return
	}
	node.Content = content
}

// detectLanguage fills attributes.language for code blocks without one.
func detectLanguage(node *ast.Node) {
	if node.AttrString("language") != "" {
		return
	}
	if lang, ok := langdetect.Guess(node.Content); ok {
		node.SetAttr("language", lang)
		node.SetMeta("language_detected", true)
	}
}
