package tree

import "fmt"

// Node is a binary tree node. The value is fixed at creation; the children
// may be assigned while the tree is being built.
type Node[T any] struct {
	value T

	Left  *Node[T]
	Right *Node[T]
}

// New creates a leaf node holding v.
func New[T any](v T) *Node[T] {
	return &Node[T]{value: v}
}

// Value returns the value stored in the node.
func (n *Node[T]) Value() T { return n.value }

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// String returns the node's label, the plain textual form of its value.
func (n *Node[T]) String() string { return fmt.Sprint(n.value) }

// Size returns the number of nodes in the tree rooted at root.
func Size[T any](root *Node[T]) int {
	if root == nil {
		return 0
	}
	return 1 + Size(root.Left) + Size(root.Right)
}

// InOrder calls fn for every value of the tree in left-root-right order.
// For trees built by [BuildMinHeight] this yields the input sequence.
func InOrder[T any](root *Node[T], fn func(T)) {
	if root == nil {
		return
	}
	InOrder(root.Left, fn)
	fn(root.value)
	InOrder(root.Right, fn)
}
