// Package tree provides the binary tree model used by the renderers.
//
// # Overview
//
// A [Node] holds one value and two optional children. Trees are built once
// from a sorted sequence by [BuildMinHeight] and are not mutated afterwards:
// the package has no insert or delete operations.
//
// # Level-wise Form
//
// [SerializeByLevel] flattens a tree breadth-first into one slice of [Slot]
// values per depth. Absent children are kept as null slots, so every level d
// holds exactly 2^d entries and the children of entry i sit at 2i and 2i+1 on
// the next level. That alignment is what lets the column renderer recover the
// shape from the levels alone, and what [FromLevels] uses to rebuild it:
//
//	root := tree.BuildMinHeight([]int{1, 2, 3})
//	levels := tree.SerializeByLevel(root) // [[2] [1 3]]
//	depth := tree.MaxDepth(root)          // 2
//
// A level is only emitted when the level above has at least one real child,
// so the number of levels always equals [MaxDepth].
package tree
