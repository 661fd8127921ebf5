// Package ast provides the document tree produced by the notation parsers.
package ast

import "strings"

// Node types produced by the built-in parsers.
const (
	TypeDocument       = "document"
	TypeText           = "text"
	TypeError          = "error"
	TypeBlock          = "block"
	TypeHeading        = "heading"
	TypeParagraph      = "paragraph"
	TypeList           = "list"
	TypeListItem       = "list_item"
	TypeBold           = "bold"
	TypeItalic         = "italic"
	TypeUnderline      = "underline"
	TypeStrikethrough  = "strikethrough"
	TypeCode           = "code"
	TypeCodeBlock      = "code_block"
	TypeQuote          = "quote"
	TypeImage          = "image"
	TypeLink           = "link"
	TypeTable          = "table"
	TypeTableRow       = "table_row"
	TypeTableCell      = "table_cell"
	TypeFootnote       = "footnote"
	TypeHighlight      = "highlight"
	TypeWarning        = "warning"
	TypeInfo           = "info"
	TypeErrorNotice    = "error_notice"
	TypeImportant      = "important"
	TypeHorizontalRule = "horizontal_rule"
	TypeHTML           = "html"
	TypeUnknownKeyword = "unknown_keyword"
)

// Node is a single element of a parsed document.
//
// A leaf carries its text in Content. When a node's content is itself a
// sequence of nodes, those nodes live in Children in document order.
// Container nodes may still set Content to their flattened text.
type Node struct {
	// Type identifies the node (e.g. "heading", "list", "text").
	Type string `json:"type"`

	// Content is the leaf text of the node.
	Content string `json:"content,omitempty"`

	// Children are the nested nodes in document order.
	Children []*Node `json:"children,omitempty"`

	// Attributes hold semantic parameters such as level, color or language.
	Attributes map[string]any `json:"attributes,omitempty"`

	// Metadata holds parser bookkeeping (indent level, block type, line).
	// It is not part of the semantic content of the node.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// IsError returns true for error nodes.
func (n *Node) IsError() bool {
	return n != nil && n.Type == TypeError
}

// TextContent returns the flattened text of the node and its descendants.
// Leaf nodes return Content; containers concatenate their children.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Content
	}

	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}
