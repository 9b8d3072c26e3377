package tree

// MaxDepth returns the number of nodes on the longest root-to-leaf path.
// The empty tree has depth 0.
func MaxDepth[T any](root *Node[T]) int {
	if root == nil {
		return 0
	}
	return max(MaxDepth(root.Left), MaxDepth(root.Right)) + 1
}
