package list

import (
	"strings"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
)

// MaxDepth bounds list nesting. Deeper items are kept at the deepest level.
const MaxDepth = 10

// Parser recognizes list notation.
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

// New creates a list parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Type implements parser.Parser.
func (p *Parser) Type() parser.Type {
	return parser.TypeList
}

// CanParse reports whether at least two lines are list items, so a single
// stray dash is not taken for a list.
func (p *Parser) CanParse(content string) bool {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if _, ok := matchItem(line); ok {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// Parse implements parser.Parser. Each contiguous run of item lines
// becomes a list node; other non-blank lines become text nodes.
func (p *Parser) Parse(content string, opts parser.Options) (*ast.ParseResult, error) {
	if cached, ok := p.cache.Get(parser.TypeList, content, opts); ok {
		return cached, nil
	}

	c := parser.NewCollector(opts.Strict)
	var (
		nodes []*ast.Node
		run   []item
	)

	flush := func() {
		if len(run) > 0 {
			nodes = append(nodes, buildTree(run, c))
			run = nil
		}
	}

	for i, line := range strings.Split(content, "\n") {
		if it, ok := matchItem(line); ok {
			it.line = i + 1
			run = append(run, it)
			continue
		}
		flush()
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			text := ast.NewText(trimmed)
			text.SetMeta("line", i+1)
			nodes = append(nodes, text)
		}
	}
	flush()

	result := c.Result(ast.Collapse(nodes), parser.TypeList)
	p.cache.Put(parser.TypeList, content, opts, result)
	return result, nil
}

// frame is one open list while building the tree.
type frame struct {
	list   *ast.Node
	indent int
}

// buildTree nests a contiguous run of items by indentation.
func buildTree(run []item, c *parser.Collector) *ast.Node {
	base := run[0].indent
	root := ast.NewNode(ast.TypeList)
	stack := []frame{{list: root, indent: base}}

	for _, it := range run {
		for len(stack) > 1 && it.indent < stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		node := newItemNode(it, base)

		if it.indent > top.indent && len(top.list.Children) > 0 {
			if len(stack) >= MaxDepth {
				c.Warn("line %d: list nesting deeper than %d levels", it.line, MaxDepth)
			} else {
				parent := top.list.Children[len(top.list.Children)-1]
				sub := ast.NewNode(ast.TypeList)
				ast.AppendChild(parent, sub)
				stack = append(stack, frame{list: sub, indent: it.indent})
				top = stack[len(stack)-1]
			}
		}

		node.SetMeta("depth", len(stack)-1)
		ast.AppendChild(top.list, node)
	}

	for _, list := range ast.FindByType(root, ast.TypeList) {
		list.SetAttr("list_type", PrimaryType(list))
	}
	return root
}

func newItemNode(it item, base int) *ast.Node {
	node := ast.NewNode(ast.TypeListItem)
	node.Content = it.text
	node.SetAttr("item_type", it.kind).SetAttr("marker", it.marker)

	switch it.kind {
	case Ordered, Alpha, Roman:
		node.SetAttr("number", it.number)
	case Checklist:
		node.SetAttr("checked", it.checked)
	case Definition:
		node.SetAttr("term", it.term)
	}

	node.SetMeta("indent_level", it.indent)
	node.SetMeta("relative_level", it.indent-base)
	node.SetMeta("line", it.line)
	return node
}

// PrimaryType returns the most frequent item_type among the direct items
// of list. Ties go to the type seen first.
func PrimaryType(list *ast.Node) string {
	counts := make(map[string]int)
	var order []string
	for _, child := range list.Children {
		if child.Type != ast.TypeListItem {
			continue
		}
		kind := child.AttrString("item_type")
		if counts[kind] == 0 {
			order = append(order, kind)
		}
		counts[kind]++
	}

	best := ""
	for _, kind := range order {
		if counts[kind] > counts[best] {
			best = kind
		}
	}
	return best
}
