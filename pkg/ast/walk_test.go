package ast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/kumihan/pkg/ast"
)

func buildTree() *ast.Node {
	doc := ast.NewDocument()
	heading := ast.NewNode(ast.TypeHeading)
	ast.AppendChild(heading, ast.NewText("Title"))
	para := ast.NewNode(ast.TypeParagraph)
	ast.AppendChild(para, ast.NewText("one"), ast.NewText("two"))
	ast.AppendChild(doc, heading, para)
	return doc
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	var visited []string
	err := ast.Walk(buildTree(), func(n *ast.Node) error {
		visited = append(visited, n.Type)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{
		ast.TypeDocument, ast.TypeHeading, ast.TypeText,
		ast.TypeParagraph, ast.TypeText, ast.TypeText,
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := ast.Walk(buildTree(), func(*ast.Node) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	tree := buildTree()

	texts := ast.FindByType(tree, ast.TypeText)
	assert.Len(t, texts, 3)

	first := ast.FindFirst(tree, func(n *ast.Node) bool { return n.Type == ast.TypeText })
	if assert.NotNil(t, first) {
		assert.Equal(t, "Title", first.Content)
	}

	assert.Nil(t, ast.FindFirst(tree, func(n *ast.Node) bool { return n.Type == ast.TypeTable }))
	assert.Equal(t, 6, ast.Count(tree))
	assert.Equal(t, 0, ast.Count(nil))
}
