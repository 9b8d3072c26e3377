package tree

import (
	"encoding/json"
	"slices"
	"testing"
)

func values(level []Slot[int]) []any {
	out := make([]any, len(level))
	for i, s := range level {
		if s.Valid {
			out[i] = s.Value
		}
	}
	return out
}

func TestSerializeByLevel(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  [][]any
	}{
		{"single", []int{1}, [][]any{{1}}},
		{"three", []int{1, 2, 3}, [][]any{{2}, {1, 3}}},
		{"two", []int{1, 2}, [][]any{{1}, {nil, 2}}},
		{"four", []int{1, 2, 3, 4}, [][]any{{2}, {1, 3}, {nil, nil, nil, 4}}},
		{
			"sample",
			sampleValues,
			[][]any{{25}, {8, 70}, {4, 15, 50, 99}, {2, 6, 10, 20, 35, 55, 89, 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SerializeByLevel(BuildMinHeight(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("levels = %d, want %d", len(got), len(tt.want))
			}
			for d := range got {
				if !slices.Equal(values(got[d]), tt.want[d]) {
					t.Errorf("level %d = %v, want %v", d, values(got[d]), tt.want[d])
				}
			}
		})
	}
}

func TestSerializeByLevel_Nil(t *testing.T) {
	if got := SerializeByLevel[int](nil); got != nil {
		t.Errorf("SerializeByLevel(nil) = %v, want nil", got)
	}
}

func TestSerializeByLevel_NullParentsKeepAlignment(t *testing.T) {
	// 1 has only a right child 2, which has only a left child 3.
	root := New(1)
	root.Right = New(2)
	root.Right.Left = New(3)

	got := SerializeByLevel(root)
	want := [][]any{{1}, {nil, 2}, {nil, nil, 3, nil}}
	if len(got) != len(want) {
		t.Fatalf("levels = %d, want %d", len(got), len(want))
	}
	for d := range want {
		if !slices.Equal(values(got[d]), want[d]) {
			t.Errorf("level %d = %v, want %v", d, values(got[d]), want[d])
		}
		if len(got[d]) != 1<<d {
			t.Errorf("level %d has %d entries, want %d", d, len(got[d]), 1<<d)
		}
	}
}

func TestSerializeByLevel_MatchesMaxDepth(t *testing.T) {
	for n := 1; n <= 70; n++ {
		root := BuildMinHeight(seq(n))
		if got, want := len(SerializeByLevel(root)), MaxDepth(root); got != want {
			t.Errorf("n=%d: %d levels, MaxDepth = %d", n, got, want)
		}
	}

	chain := New(1)
	cur := chain
	for i := 2; i <= 6; i++ {
		cur.Right = New(i)
		cur = cur.Right
	}
	if got, want := len(SerializeByLevel(chain)), MaxDepth(chain); got != want {
		t.Errorf("chain: %d levels, MaxDepth = %d", got, want)
	}
}

func sameShape(a, b *Node[int]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Value() == b.Value() && sameShape(a.Left, b.Left) && sameShape(a.Right, b.Right)
}

func TestFromLevels_RoundTrip(t *testing.T) {
	for n := 0; n <= 50; n++ {
		root := BuildMinHeight(seq(n))
		if got := FromLevels(SerializeByLevel(root)); !sameShape(got, root) {
			t.Errorf("n=%d: round trip changed the tree shape", n)
		}
	}

	sparse := New(10)
	sparse.Left = New(5)
	sparse.Left.Right = New(7)
	sparse.Left.Right.Left = New(6)
	if got := FromLevels(SerializeByLevel(sparse)); !sameShape(got, sparse) {
		t.Error("sparse tree: round trip changed the tree shape")
	}
}

func TestFromLevels_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		levels [][]Slot[int]
	}{
		{"nil", nil},
		{"empty level", [][]Slot[int]{{}}},
		{"null root", [][]Slot[int]{{Null[int]()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromLevels(tt.levels); got != nil {
				t.Errorf("FromLevels() = %v, want nil", got)
			}
		})
	}
}

func TestSlotString(t *testing.T) {
	if got := Some(4).String(); got != "4" {
		t.Errorf("Some(4).String() = %q", got)
	}
	if got := Null[int]().String(); got != "<nil>" {
		t.Errorf("Null().String() = %q", got)
	}
}

func TestSlotJSON(t *testing.T) {
	levels := SerializeByLevel(BuildMinHeight([]int{1, 2, 3, 4}))

	data, err := json.Marshal(levels)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[[2],[1,3],[null,null,null,4]]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back [][]Slot[int]
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !sameShape(FromLevels(back), FromLevels(levels)) {
		t.Error("JSON round trip changed the tree shape")
	}
	if back[2][3] != Some(4) || back[2][0].Valid {
		t.Errorf("Unmarshal() = %v", back)
	}

	var s Slot[int]
	if err := json.Unmarshal([]byte(`"x"`), &s); err == nil {
		t.Error("Unmarshal() should reject a value of the wrong type")
	}
}
