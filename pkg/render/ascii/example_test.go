package ascii_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/bintree/pkg/render/ascii"
	"github.com/matzehuels/bintree/pkg/tree"
)

func ExampleRenderTree() {
	root := tree.BuildMinHeight([]int{1, 2, 3})

	for _, line := range ascii.RenderTree(root) {
		fmt.Println(strings.TrimRight(line, " "))
	}
	// Output:
	//       2
	//     +  +
	//   1      3
}

func ExampleRender() {
	levels := tree.SerializeByLevel(tree.BuildMinHeight([]string{"a", "b", "c", "d", "e", "f", "g"}))

	for _, line := range ascii.Render(levels, ascii.WithCellWidth(1), ascii.WithLink("*")) {
		fmt.Println(strings.TrimRight(line, " "))
	}
	// Output:
	//        d
	//       * *
	//      *   *
	//     *     *
	//    b       f
	//   * *     * *
	//  a   c   e   g
}
