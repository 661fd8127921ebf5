package ast

import (
	"maps"
	"reflect"
	"slices"
)

// NewNode creates a new node of the given type with no children.
func NewNode(nodeType string) *Node {
	return &Node{Type: nodeType}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(TypeDocument)
}

// NewText creates a text leaf.
func NewText(content string) *Node {
	return &Node{Type: TypeText, Content: content}
}

// NewError creates an error node carrying message as its content.
func NewError(message string) *Node {
	return &Node{Type: TypeError, Content: message}
}

// AppendChild appends children to parent in order. Nil children are skipped.
func AppendChild(parent *Node, children ...*Node) {
	if parent == nil {
		return
	}
	for _, child := range children {
		if child == nil || child == parent {
			continue
		}
		parent.Children = append(parent.Children, child)
	}
}

// Collapse returns the single node in nodes, or a document wrapping all of
// them when there are zero or several.
func Collapse(nodes []*Node) *Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	doc := NewDocument()
	AppendChild(doc, nodes...)
	return doc
}

// Clone returns a deep copy of the node tree.
// Attribute and metadata maps are copied; nested maps and slices of
// primitive values are copied one level deep.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Type:       n.Type,
		Content:    n.Content,
		Attributes: cloneMap(n.Attributes),
		Metadata:   cloneMap(n.Metadata),
	}

	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		switch v := value.(type) {
		case map[string]any:
			dst[key] = cloneMap(v)
		case map[string]string:
			dst[key] = maps.Clone(v)
		case []string:
			dst[key] = slices.Clone(v)
		default:
			dst[key] = value
		}
	}
	return dst
}

// Equal reports whether two trees are structurally identical:
// same types, content, attributes, metadata and children in order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Content != b.Content {
		return false
	}
	if !mapsEqual(a.Attributes, b.Attributes) || !mapsEqual(a.Metadata, b.Metadata) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func mapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(a, b) || (len(a) == 0 && len(b) == 0)
}
