package tree

// BuildMinHeight builds a minimum-height binary search tree from values and
// returns its root, or nil when values is empty.
//
// The values must already be sorted; they are neither checked nor reordered.
// Each subrange contributes its floor midpoint as the subtree root, so for
// even-length ranges the left subtree gets one element fewer than the right.
// The resulting height is ceil(log2(n+1)).
func BuildMinHeight[T any](values []T) *Node[T] {
	return buildRange(values, 0, len(values)-1)
}

func buildRange[T any](values []T, start, end int) *Node[T] {
	if start > end {
		return nil
	}
	mid := (start + end) / 2
	n := New(values[mid])
	n.Left = buildRange(values, start, mid-1)
	n.Right = buildRange(values, mid+1, end)
	return n
}
