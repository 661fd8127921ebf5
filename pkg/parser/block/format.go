package block

import (
	"strings"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// Format serializes a tree produced by the block parser back to block
// notation. Parsing the output yields an equal tree for block, text and
// document nodes. Error nodes are dropped.
func Format(node *ast.Node) string {
	var lines []string
	formatNode(node, &lines)
	return strings.Join(lines, "\n")
}

func formatNode(node *ast.Node, lines *[]string) {
	if node == nil {
		return
	}

	switch node.Type {
	case ast.TypeDocument:
		for _, child := range node.Children {
			formatNode(child, lines)
		}
		return
	case ast.TypeText:
		*lines = append(*lines, node.Content)
		return
	case ast.TypeError:
		return
	}

	segment := node.AttrString("keyword")
	if raw, ok := node.Meta("segment"); ok {
		if s, isString := raw.(string); isString {
			segment = s
		}
	}
	if segment == "" {
		segment = node.Type
	}

	open := "#" + segment + "#"

	if nested := blockChildren(node); len(nested) > 0 {
		*lines = append(*lines, open)
		for _, child := range nested {
			formatNode(child, lines)
		}
		*lines = append(*lines, "##")
		return
	}

	body := bodyText(node)
	blockType, _ := node.Meta("block_type")
	if blockType == MultiLine || strings.Contains(body, "\n") {
		*lines = append(*lines, open, body, "##")
		return
	}
	*lines = append(*lines, open+body+"##")
}

// blockChildren returns the nested nodes of node, skipping the modifier
// chain of a compound keyword.
func blockChildren(node *ast.Node) []*ast.Node {
	if len(node.Children) == 0 {
		return nil
	}
	if isModifier(node.Children[0]) {
		return blockChildren(node.Children[0])
	}
	return node.Children
}

func isModifier(node *ast.Node) bool {
	v, _ := node.Meta("modifier")
	b, _ := v.(bool)
	return b
}

// bodyText returns the text between the markers.
func bodyText(node *ast.Node) string {
	if node.Type == ast.TypeImage {
		src, alt := node.AttrString("src"), node.AttrString("alt")
		if alt == "" {
			return src
		}
		return src + "|" + alt
	}
	return node.TextContent()
}
