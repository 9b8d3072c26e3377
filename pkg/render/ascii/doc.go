// Package ascii renders binary trees as ASCII-art diagrams.
//
// # Overview
//
// The renderer lays a tree out on a fixed-width grid of cells. For a tree of
// depth D the grid is [Width](D) cells wide, which is 2^(D+1)-1: the leaf
// level gets one cell per slot plus room for the links between them. Each
// level is rendered by recursively halving both the level's slots and the
// cell range, so a subtree always gets a range proportional to its width.
//
// Non-leaf levels are followed by link rows, pairs of markers that fan out
// from a node towards the centres of its two children:
//
//	      2
//	    +  +
//	  1      3
//
// # Usage
//
//	root := tree.BuildMinHeight([]int{1, 2, 3})
//	for _, line := range ascii.RenderTree(root) {
//	    fmt.Println(line)
//	}
//
// [RenderLines] and [RenderTreeLines] return [Line] values instead of plain
// strings. Each line carries the byte spans of the node labels it contains,
// which a presenter can use to highlight labels without re-parsing the text.
//
// # Options
//
//   - [WithCellWidth]: characters per grid cell (default 2)
//   - [WithLink]: link marker (default "+")
//   - [WithPlaceholder]: label for absent nodes (default "NY")
package ascii
