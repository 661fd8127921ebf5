package markdown

import (
	"bytes"
	"sort"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/langdetect"
	"github.com/yaklabco/kumihan/pkg/parser"
)

// Item types of mapped list items.
const (
	itemUnordered = "unordered"
	itemOrdered   = "ordered"
	itemChecklist = "checklist"
)

// mapper converts a goldmark AST into document nodes.
type mapper struct {
	source     []byte
	lineStarts []int
	c          *parser.Collector
}

func newMapper(source []byte, c *parser.Collector) *mapper {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &mapper{source: source, lineStarts: starts, c: c}
}

// lineOf returns the 1-based line holding byte offset.
func (m *mapper) lineOf(offset int) int {
	return sort.Search(len(m.lineStarts), func(i int) bool { return m.lineStarts[i] > offset })
}

// mapBlocks maps the block children of parent.
func (m *mapper) mapBlocks(parent gast.Node) []*ast.Node {
	var nodes []*ast.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if node := m.mapBlock(child); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// mapBlock converts one block-level goldmark node.
func (m *mapper) mapBlock(gn gast.Node) *ast.Node {
	var node *ast.Node

	switch n := gn.(type) {
	case *gast.Heading:
		node = ast.NewNode(ast.TypeHeading)
		node.SetAttr("level", n.Level)
		m.setInline(node, m.mapInlines(n))

	case *gast.Paragraph, *gast.TextBlock:
		node = ast.NewNode(ast.TypeParagraph)
		m.setInline(node, m.mapInlines(n))

	case *gast.Blockquote:
		node = ast.NewNode(ast.TypeQuote)
		ast.AppendChild(node, m.mapBlocks(n)...)

	case *gast.List:
		node = m.mapList(n)

	case *gast.FencedCodeBlock:
		node = m.mapFencedCode(n)

	case *gast.CodeBlock:
		node = ast.NewNode(ast.TypeCodeBlock)
		node.Content = m.linesOf(n)
		node.SetAttr("indented", true)

	case *gast.ThematicBreak:
		node = ast.NewNode(ast.TypeHorizontalRule)

	case *gast.HTMLBlock:
		node = ast.NewNode(ast.TypeHTML)
		content := m.linesOf(n)
		if n.HasClosure() {
			content += string(n.ClosureLine.Value(m.source))
		}
		node.Content = strings.TrimRight(content, "\n")

	case *east.Table:
		node = m.mapTable(n)

	default:
		m.c.Warn("unsupported markdown block %s", gn.Kind())
		node = ast.NewNode(ast.TypeParagraph)
		node.Content = m.textOf(gn)
	}

	if lines := gn.Lines(); lines.Len() > 0 {
		node.SetMeta("line", m.lineOf(lines.At(0).Start))
	}
	return node
}

func (m *mapper) mapFencedCode(n *gast.FencedCodeBlock) *ast.Node {
	node := ast.NewNode(ast.TypeCodeBlock)
	node.Content = strings.TrimSuffix(m.linesOf(n), "\n")

	lang := string(n.Language(m.source))
	if lang == "" {
		guess, ok := langdetect.Guess(node.Content)
		if ok {
			lang = guess
			node.SetMeta("language_detected", true)
		}
	}
	if lang != "" {
		node.SetAttr("language", lang)
	}
	if n.Info != nil {
		if info := string(n.Info.Value(m.source)); info != lang {
			node.SetAttr("info", info)
		}
	}
	return node
}

func (m *mapper) mapList(n *gast.List) *ast.Node {
	node := ast.NewNode(ast.TypeList)
	kind := itemUnordered
	if n.IsOrdered() {
		kind = itemOrdered
		node.SetAttr("start", n.Start)
	}
	node.SetAttr("ordered", n.IsOrdered()).SetAttr("tight", n.IsTight)

	checklist := 0
	number := n.Start
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		item := m.mapListItem(child, kind, string(n.Marker))
		if kind == itemOrdered {
			item.SetAttr("number", number)
			number++
		}
		if item.AttrString("item_type") == itemChecklist {
			checklist++
		}
		ast.AppendChild(node, item)
	}

	listType := kind
	if checklist > 0 && checklist*2 >= len(node.Children) {
		listType = itemChecklist
	}
	node.SetAttr("list_type", listType)
	return node
}

func (m *mapper) mapListItem(gn gast.Node, kind, marker string) *ast.Node {
	item := ast.NewNode(ast.TypeListItem)
	item.SetAttr("item_type", kind).SetAttr("marker", marker)

	var inlines []*ast.Node
	for child := gn.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *gast.TextBlock, *gast.Paragraph:
			if len(inlines) == 0 && len(item.Children) == 0 {
				inlines = m.mapInlines(child)
				continue
			}
		}
		ast.AppendChild(item, m.mapBlock(child))
	}

	if len(inlines) > 0 && inlines[0].Type == itemChecklist {
		item.SetAttr("item_type", itemChecklist)
		item.SetAttr("checked", inlines[0].Content == "x")
		inlines = inlines[1:]
		if len(inlines) > 0 && inlines[0].Type == ast.TypeText {
			inlines[0].Content = strings.TrimLeft(inlines[0].Content, " \t")
		}
	}

	nested := item.Children
	item.Children = nil
	m.setInline(item, inlines)
	ast.AppendChild(item, nested...)
	return item
}

func (m *mapper) mapTable(n *east.Table) *ast.Node {
	node := ast.NewNode(ast.TypeTable)
	aligns := make([]string, 0, len(n.Alignments))
	for _, a := range n.Alignments {
		aligns = append(aligns, a.String())
	}
	node.SetAttr("alignments", aligns)

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		row := ast.NewNode(ast.TypeTableRow)
		if _, header := child.(*east.TableHeader); header {
			row.SetMeta("header", true)
		}
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cellNode := ast.NewNode(ast.TypeTableCell)
			if tc, ok := cell.(*east.TableCell); ok {
				cellNode.SetAttr("align", tc.Alignment.String())
			}
			m.setInline(cellNode, m.mapInlines(cell))
			ast.AppendChild(row, cellNode)
		}
		ast.AppendChild(node, row)
	}
	return node
}

// mapInlines maps the inline children of parent, merging adjacent text.
func (m *mapper) mapInlines(parent gast.Node) []*ast.Node {
	var nodes []*ast.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapInline(child)
		if node == nil {
			continue
		}
		if n := len(nodes); n > 0 && node.Type == ast.TypeText && nodes[n-1].Type == ast.TypeText {
			nodes[n-1].Content += node.Content
			continue
		}
		nodes = append(nodes, node)
	}

	if n := len(nodes); n > 0 && nodes[n-1].Type == ast.TypeText {
		nodes[n-1].Content = strings.TrimRight(nodes[n-1].Content, "\n")
	}
	return nodes
}

func (m *mapper) mapInline(gn gast.Node) *ast.Node {
	switch n := gn.(type) {
	case *gast.Text:
		value := string(n.Segment.Value(m.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			value += "\n"
		}
		return ast.NewText(value)

	case *gast.String:
		return ast.NewText(string(n.Value))

	case *gast.Emphasis:
		nodeType := ast.TypeItalic
		if n.Level >= 2 {
			nodeType = ast.TypeBold
		}
		node := ast.NewNode(nodeType)
		m.setInline(node, m.mapInlines(n))
		return node

	case *gast.CodeSpan:
		node := ast.NewNode(ast.TypeCode)
		node.Content = m.textOf(n)
		return node

	case *gast.Link:
		node := ast.NewNode(ast.TypeLink)
		node.SetAttr("href", string(n.Destination))
		if len(n.Title) > 0 {
			node.SetAttr("title", string(n.Title))
		}
		m.setInline(node, m.mapInlines(n))
		return node

	case *gast.AutoLink:
		node := ast.NewNode(ast.TypeLink)
		href := string(n.URL(m.source))
		if n.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(href, "mailto:") {
			href = "mailto:" + href
		}
		node.SetAttr("href", href)
		node.Content = string(n.Label(m.source))
		return node

	case *gast.Image:
		node := ast.NewNode(ast.TypeImage)
		node.SetAttr("src", string(n.Destination))
		node.SetAttr("alt", m.textOf(n))
		if len(n.Title) > 0 {
			node.SetAttr("title", string(n.Title))
		}
		return node

	case *gast.RawHTML:
		node := ast.NewNode(ast.TypeHTML)
		var buf bytes.Buffer
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(m.source))
		}
		node.Content = buf.String()
		return node

	case *east.Strikethrough:
		node := ast.NewNode(ast.TypeStrikethrough)
		m.setInline(node, m.mapInlines(n))
		return node

	case *east.TaskCheckBox:
		marker := ast.NewNode(itemChecklist)
		if n.IsChecked {
			marker.Content = "x"
		}
		return marker

	default:
		return ast.NewText(m.textOf(gn))
	}
}

// setInline stores a single text run as content and anything richer as
// children.
func (m *mapper) setInline(node *ast.Node, inlines []*ast.Node) {
	if len(inlines) == 1 && inlines[0].Type == ast.TypeText {
		node.Content = inlines[0].Content
		return
	}
	ast.AppendChild(node, inlines...)
}

// textOf flattens the text below gn.
func (m *mapper) textOf(gn gast.Node) string {
	var sb strings.Builder
	//nolint:errcheck // walker never returns an error
	gast.Walk(gn, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *gast.Text:
			sb.Write(t.Segment.Value(m.source))
			if t.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *gast.String:
			sb.Write(t.Value)
		}
		return gast.WalkContinue, nil
	})
	return sb.String()
}

// linesOf joins the raw source lines of a block node.
func (m *mapper) linesOf(gn gast.Node) string {
	var buf bytes.Buffer
	lines := gn.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.source))
	}
	return buf.String()
}
