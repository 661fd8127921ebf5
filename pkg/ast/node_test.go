package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/ast"
)

func TestNode_TextContent(t *testing.T) {
	t.Parallel()

	para := ast.NewNode(ast.TypeParagraph)
	em := ast.NewNode(ast.TypeItalic)
	ast.AppendChild(em, ast.NewText("italic"))
	ast.AppendChild(para, ast.NewText("Some "), em, ast.NewText(" text"))

	assert.Equal(t, "Some italic text", para.TextContent())
	assert.Equal(t, 3, para.ChildCount())
	assert.True(t, para.HasChildren())
}

func TestNode_ReservedKeysDropped(t *testing.T) {
	t.Parallel()

	node := ast.NewNode(ast.TypeBlock)
	node.SetAttr("type", "bogus").SetAttr("Children", 1).SetAttr("color", "red")
	node.SetMeta("type", "x").SetMeta("line", 3)

	_, hasType := node.Attr("type")
	assert.False(t, hasType)
	_, hasChildren := node.Attr("Children")
	assert.False(t, hasChildren)
	assert.Equal(t, "red", node.AttrString("color"))

	line, ok := node.MetaInt("line")
	require.True(t, ok)
	assert.Equal(t, 3, line)
	_, ok = node.Meta("type")
	assert.False(t, ok)
}

func TestNode_AttrString(t *testing.T) {
	t.Parallel()

	node := ast.NewNode(ast.TypeHeading).SetAttr("level", 2)
	assert.Equal(t, "2", node.AttrString("level"))
	assert.Equal(t, "", node.AttrString("missing"))

	level, ok := node.AttrInt("level")
	require.True(t, ok)
	assert.Equal(t, 2, level)
}

func TestAppendChild_SkipsSelfAndNil(t *testing.T) {
	t.Parallel()

	parent := ast.NewDocument()
	ast.AppendChild(parent, nil, parent, ast.NewText("a"))

	require.Len(t, parent.Children, 1)
	assert.Equal(t, "a", parent.Children[0].Content)
}

func TestCollapse(t *testing.T) {
	t.Parallel()

	single := ast.NewText("only")
	assert.Same(t, single, ast.Collapse([]*ast.Node{single}))

	doc := ast.Collapse([]*ast.Node{ast.NewText("a"), ast.NewText("b")})
	assert.Equal(t, ast.TypeDocument, doc.Type)
	assert.Len(t, doc.Children, 2)

	empty := ast.Collapse(nil)
	assert.Equal(t, ast.TypeDocument, empty.Type)
	assert.Empty(t, empty.Children)
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	orig := ast.NewNode(ast.TypeList).SetAttr("list_type", "unordered")
	orig.SetAttr("styles", map[string]string{"color": "red"})
	item := ast.NewNode(ast.TypeListItem)
	item.Content = "a"
	ast.AppendChild(orig, item)

	clone := orig.Clone()
	require.True(t, ast.Equal(orig, clone))

	clone.Children[0].Content = "changed"
	clone.SetAttr("list_type", "ordered")
	clone.Attributes["styles"].(map[string]string)["color"] = "blue"

	assert.Equal(t, "a", orig.Children[0].Content)
	assert.Equal(t, "unordered", orig.AttrString("list_type"))
	assert.Equal(t, "red", orig.Attributes["styles"].(map[string]string)["color"])
	assert.False(t, ast.Equal(orig, clone))
}

func TestEqual_NilAndEmptyMaps(t *testing.T) {
	t.Parallel()

	a := &ast.Node{Type: ast.TypeText, Content: "x"}
	b := &ast.Node{Type: ast.TypeText, Content: "x", Attributes: map[string]any{}}
	assert.True(t, ast.Equal(a, b))
	assert.True(t, ast.Equal(nil, nil))
	assert.False(t, ast.Equal(a, nil))
}
