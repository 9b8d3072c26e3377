package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Slot is an optional value in the level-wise form of a tree.
// Valid is false for positions where the tree has no node.
type Slot[T any] struct {
	Value T
	Valid bool
}

// Some returns a slot holding v.
func Some[T any](v T) Slot[T] { return Slot[T]{Value: v, Valid: true} }

// Null returns an empty slot.
func Null[T any]() Slot[T] { return Slot[T]{} }

// String returns the slot's label, or "<nil>" for an empty slot.
func (s Slot[T]) String() string {
	if !s.Valid {
		return "<nil>"
	}
	return fmt.Sprint(s.Value)
}

// MarshalJSON encodes an empty slot as null and a valid one as its value.
func (s Slot[T]) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Slot[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Slot[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Some(v)
	return nil
}

// SerializeByLevel returns the values of the tree level by level, keeping a
// null slot for every absent position. Level d has 2^d entries and the
// children of entry i are entries 2i and 2i+1 of level d+1.
//
// Levels are appended only while the previous level still had a real child,
// so the result has exactly MaxDepth(root) levels. root must not be nil; for
// a nil root the result is nil.
func SerializeByLevel[T any](root *Node[T]) [][]Slot[T] {
	if root == nil {
		return nil
	}

	levels := [][]Slot[T]{{Some(root.value)}}
	queue := []*Node[T]{root}

	for len(queue) > 0 {
		next, childFound := expandLevel(queue)
		if !childFound {
			break
		}
		levels = append(levels, slotsOf(next))
		queue = next
	}
	return levels
}

// expandLevel replaces every entry of a level with its two child references.
// Absent entries expand into two absent children to keep positions aligned.
func expandLevel[T any](level []*Node[T]) ([]*Node[T], bool) {
	next := make([]*Node[T], 0, 2*len(level))
	childFound := false
	for _, n := range level {
		if n == nil {
			next = append(next, nil, nil)
			continue
		}
		if !n.IsLeaf() {
			childFound = true
		}
		next = append(next, n.Left, n.Right)
	}
	return next, childFound
}

func slotsOf[T any](nodes []*Node[T]) []Slot[T] {
	slots := make([]Slot[T], len(nodes))
	for i, n := range nodes {
		if n != nil {
			slots[i] = Some(n.value)
		}
	}
	return slots
}

// FromLevels rebuilds a tree from its level-wise form. The child positions
// of entry i on level d are 2i and 2i+1 on level d+1; positions beyond the
// end of a level are treated as absent. It returns nil for empty input or a
// null root slot.
func FromLevels[T any](levels [][]Slot[T]) *Node[T] {
	if len(levels) == 0 || len(levels[0]) == 0 || !levels[0][0].Valid {
		return nil
	}

	root := New(levels[0][0].Value)
	parents := []*Node[T]{root}

	for _, level := range levels[1:] {
		children := make([]*Node[T], 2*len(parents))
		for i := range children {
			if i < len(level) && level[i].Valid {
				children[i] = New(level[i].Value)
			}
		}
		for i, p := range parents {
			if p == nil {
				continue
			}
			p.Left = children[2*i]
			p.Right = children[2*i+1]
		}
		parents = children
	}
	return root
}
