package ast

import (
	"fmt"
	"strings"
)

// Reserved keys that may not be used in Attributes or Metadata.
const (
	reservedType     = "type"
	reservedChildren = "children"
)

// IsReservedKey reports whether key collides with a structural field.
func IsReservedKey(key string) bool {
	switch strings.ToLower(key) {
	case reservedType, reservedChildren:
		return true
	default:
		return false
	}
}

// SetAttr sets an attribute and returns the node for chaining.
// Reserved keys are silently dropped.
func (n *Node) SetAttr(key string, value any) *Node {
	if IsReservedKey(key) {
		return n
	}
	if n.Attributes == nil {
		n.Attributes = make(map[string]any)
	}
	n.Attributes[key] = value
	return n
}

// Attr returns the attribute stored under key.
func (n *Node) Attr(key string) (any, bool) {
	if n == nil || n.Attributes == nil {
		return nil, false
	}
	v, ok := n.Attributes[key]
	return v, ok
}

// AttrString returns the attribute under key formatted as a string.
// Missing attributes yield "".
func (n *Node) AttrString(key string) string {
	v, ok := n.Attr(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// AttrInt returns the attribute under key as an int.
func (n *Node) AttrInt(key string) (int, bool) {
	v, ok := n.Attr(key)
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}

// MergeAttrs copies every non-reserved entry of attrs into the node.
func (n *Node) MergeAttrs(attrs map[string]any) *Node {
	for key, value := range attrs {
		n.SetAttr(key, value)
	}
	return n
}

// SetMeta sets a metadata entry and returns the node for chaining.
// Reserved keys are silently dropped.
func (n *Node) SetMeta(key string, value any) *Node {
	if IsReservedKey(key) {
		return n
	}
	if n.Metadata == nil {
		n.Metadata = make(map[string]any)
	}
	n.Metadata[key] = value
	return n
}

// Meta returns the metadata entry stored under key.
func (n *Node) Meta(key string) (any, bool) {
	if n == nil || n.Metadata == nil {
		return nil, false
	}
	v, ok := n.Metadata[key]
	return v, ok
}

// MetaInt returns the metadata entry under key as an int.
func (n *Node) MetaInt(key string) (int, bool) {
	v, ok := n.Meta(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}
