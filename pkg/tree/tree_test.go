package tree

import (
	"math"
	"slices"
	"testing"
)

// sampleValues is the 15-value sequence used throughout the renderer tests.
var sampleValues = []int{2, 4, 6, 8, 10, 15, 20, 25, 35, 50, 55, 70, 89, 99, 100}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func TestBuildMinHeight_Empty(t *testing.T) {
	if root := BuildMinHeight([]int{}); root != nil {
		t.Errorf("BuildMinHeight(empty) = %v, want nil", root)
	}
	if root := BuildMinHeight[string](nil); root != nil {
		t.Errorf("BuildMinHeight(nil) = %v, want nil", root)
	}
}

func TestBuildMinHeight_Shape(t *testing.T) {
	root := BuildMinHeight(sampleValues)
	if root == nil {
		t.Fatal("BuildMinHeight() returned nil")
	}
	if root.Value() != 25 {
		t.Errorf("root = %d, want 25", root.Value())
	}
	if root.Left.Value() != 8 || root.Right.Value() != 70 {
		t.Errorf("children = %d, %d, want 8, 70", root.Left.Value(), root.Right.Value())
	}
}

func TestBuildMinHeight_TieBreak(t *testing.T) {
	root := BuildMinHeight([]int{1, 2})
	if root.Value() != 1 {
		t.Errorf("root = %d, want 1 (lower midpoint)", root.Value())
	}
	if root.Left != nil {
		t.Errorf("left = %v, want nil", root.Left)
	}
	if root.Right == nil || root.Right.Value() != 2 {
		t.Errorf("right = %v, want 2", root.Right)
	}
}

func TestBuildMinHeight_PreservesOrder(t *testing.T) {
	for n := 0; n <= 40; n++ {
		in := seq(n)
		var got []int
		InOrder(BuildMinHeight(in), func(v int) { got = append(got, v) })
		if !slices.Equal(got, in) {
			t.Errorf("n=%d: in-order = %v, want %v", n, got, in)
		}
		if size := Size(BuildMinHeight(in)); size != n {
			t.Errorf("n=%d: Size() = %d", n, size)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	tests := []struct {
		name string
		root *Node[int]
		want int
	}{
		{"nil", nil, 0},
		{"single", New(1), 1},
		{"left chain", &Node[int]{value: 3, Left: &Node[int]{value: 2, Left: New(1)}}, 3},
		{"right only", &Node[int]{value: 1, Right: New(2)}, 2},
		{"sample", BuildMinHeight(sampleValues), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxDepth(tt.root); got != tt.want {
				t.Errorf("MaxDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMinimumHeight(t *testing.T) {
	for n := 0; n <= 130; n++ {
		want := 0
		if n > 0 {
			want = int(math.Ceil(math.Log2(float64(n + 1))))
		}
		if got := MaxDepth(BuildMinHeight(seq(n))); got != want {
			t.Errorf("n=%d: MaxDepth = %d, want %d", n, got, want)
		}
	}
}

func TestBalanceBound(t *testing.T) {
	var check func(t *testing.T, n *Node[int])
	check = func(t *testing.T, n *Node[int]) {
		if n == nil {
			return
		}
		l, r := MaxDepth(n.Left), MaxDepth(n.Right)
		if l-r > 1 || r-l > 1 {
			t.Errorf("node %d: heights %d and %d differ by more than 1", n.Value(), l, r)
		}
		check(t, n.Left)
		check(t, n.Right)
	}
	for n := 1; n <= 64; n++ {
		check(t, BuildMinHeight(seq(n)))
	}
}

func TestNodeString(t *testing.T) {
	if got := New(35).String(); got != "35" {
		t.Errorf("String() = %q, want %q", got, "35")
	}
	if got := New("ab").String(); got != "ab" {
		t.Errorf("String() = %q, want %q", got, "ab")
	}
}
