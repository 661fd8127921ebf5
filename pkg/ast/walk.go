package ast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck // visitor never returns an error
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck // errStopWalk is expected
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByType returns all nodes of the given type.
func FindByType(root *Node, nodeType string) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Type == nodeType
	})
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	//nolint:errcheck // visitor never returns an error
	Walk(root, func(*Node) error {
		count++
		return nil
	})
	return count
}

var errStopWalk = errors.New("stop walk")
