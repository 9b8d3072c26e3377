package ascii

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/bintree/pkg/tree"
)

// Span marks the bytes Text[Start:End] of a [Line] as a node label.
// Null is set when the label is the placeholder for an absent node.
type Span struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Null  bool `json:"null,omitempty"`
}

// Line is one rendered row together with the positions of its labels.
type Line struct {
	Text   string `json:"text"`
	Labels []Span `json:"labels,omitempty"`
}

// String returns the line's text.
func (l Line) String() string { return l.Text }

// Strings returns the text of each line.
func Strings(lines []Line) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// MaxDepth is the deepest tree the renderer lays out. Width(MaxDepth) still
// fits a 32-bit int.
const MaxDepth = 29

// Width returns the number of grid cells used to render a tree of the given
// depth: with n = 2^(depth-1) leaf slots, n + 3*(n-1) + 2. It is 0 for
// depth <= 0 and panics for depth > [MaxDepth].
func Width(depth int) int {
	if depth <= 0 {
		return 0
	}
	checkDepth(depth)
	n := 1 << (depth - 1)
	return n + 3*(n-1) + 2
}

func checkDepth(depth int) {
	if depth > MaxDepth {
		panic(fmt.Sprintf("ascii: depth %d exceeds MaxDepth %d", depth, MaxDepth))
	}
}

// Render lays out the level-wise form of a tree, as produced by
// [tree.SerializeByLevel], and returns the text lines top to bottom.
// The depth is taken to be the number of levels. Levels need not be full:
// every level is halved across the whole width, so a level with fewer than
// 2^d slots spreads them over wider ranges. Render panics when there are more than [MaxDepth] levels.
func Render[T any](levels [][]tree.Slot[T], opts ...Option) []string {
	return Strings(RenderLines(levels, opts...))
}

// RenderLines is like [Render] but keeps the label spans of every line.
func RenderLines[T any](levels [][]tree.Slot[T], opts ...Option) []Line {
	if len(levels) == 0 {
		return nil
	}
	r := newRenderer(opts...)
	return renderLevels(r, levels, len(levels))
}

// RenderTree renders the tree rooted at root. The empty tree renders as no
// lines. The depth is computed with [tree.MaxDepth], independently of the
// level serialization. RenderTree panics for trees deeper than [MaxDepth].
func RenderTree[T any](root *tree.Node[T], opts ...Option) []string {
	return Strings(RenderTreeLines(root, opts...))
}

// RenderTreeLines is like [RenderTree] but keeps the label spans of every line.
func RenderTreeLines[T any](root *tree.Node[T], opts ...Option) []Line {
	if root == nil {
		return nil
	}
	depth := tree.MaxDepth(root)
	checkDepth(depth)
	r := newRenderer(opts...)
	return renderLevels(r, tree.SerializeByLevel(root), depth)
}

// label is a slot converted to the text drawn for it.
type label struct {
	text string
	null bool
}

func labelsOf[T any](level []tree.Slot[T], placeholder string) []label {
	out := make([]label, len(level))
	for i, s := range level {
		if !s.Valid {
			out[i] = label{text: placeholder, null: true}
			continue
		}
		out[i] = label{text: fmt.Sprint(s.Value)}
	}
	return out
}

func renderLevels[T any](r renderer, levels [][]tree.Slot[T], depth int) []Line {
	width := Width(depth)
	var out []Line
	for d, level := range levels {
		rows := r.renderRange(labelsOf(level, r.placeholder), 0, width-1, d == depth-1)
		for _, w := range rows {
			out = append(out, w.line())
		}
	}
	return out
}

// renderRange lays out labels in the cell range [start, end]. The labels and
// the range are halved together until a single label owns a range.
func (r renderer) renderRange(labels []label, start, end int, leaf bool) []*row {
	if start > end || len(labels) == 0 {
		return nil
	}
	if len(labels) == 1 {
		return r.renderNode(labels[0], start, end, leaf)
	}

	mid := (start + end) / 2
	half := len(labels) / 2
	left := r.renderRange(labels[:half], start, mid-1, leaf)
	right := r.renderRange(labels[half:], mid+1, end, leaf)
	return r.merge(left, right)
}

// renderNode draws one label centred in [start, end], followed by its link
// rows unless the label sits on the leaf level.
func (r renderer) renderNode(l label, start, end int, leaf bool) []*row {
	if start >= end {
		return nil
	}

	mid := (start + end) / 2
	value := &row{}
	r.pad(value, start, mid-1)
	value.writeLabel(l)
	r.pad(value, mid+1, end)

	rows := []*row{value}
	if !leaf {
		rows = append(rows, r.renderLinks(l, start, end, mid)...)
	}
	return rows
}

// renderLinks draws (mid-start)/2 rows of marker pairs that widen by one
// cell per row on either side of the label. The gap grows with the label's
// display width; a placeholder counts as one cell.
func (r renderer) renderLinks(l label, start, end, mid int) []*row {
	size := 1
	if !l.null {
		size = max(runewidth.StringWidth(l.text), 1)
	}
	lines := (mid - start) / 2

	rows := make([]*row, 0, lines)
	for i := 1; i <= lines; i++ {
		link := &row{}
		r.pad(link, start, mid-i-1)
		link.write(r.link)
		r.pad(link, mid-i+1, mid+i-1+(size-1))
		link.write(r.link)
		r.pad(link, mid+i+1, end)
		rows = append(rows, link)
	}
	return rows
}

// merge joins the rows of two sibling ranges side by side, separated by one
// blank cell. Sibling ranges always have the same width, so both sides
// produce the same number of rows; a shorter side is padded with blanks.
func (r renderer) merge(left, right []*row) []*row {
	if len(left) == 0 {
		return right
	}
	if len(right) == 0 {
		return left
	}

	for i := range max(len(left), len(right)) {
		if i >= len(left) {
			left = append(left, left[0].blankCopy())
		}
		left[i].write(r.blank)
		if i < len(right) {
			left[i].append(right[i])
		} else {
			left[i].append(right[0].blankCopy())
		}
	}
	return left
}

func (r renderer) pad(w *row, start, end int) {
	for ; start <= end; start++ {
		w.write(r.blank)
	}
}

// row accumulates the text of one output line and its label spans.
type row struct {
	buf    strings.Builder
	labels []Span
}

func (w *row) write(s string) { w.buf.WriteString(s) }

func (w *row) writeLabel(l label) {
	start := w.buf.Len()
	w.buf.WriteString(l.text)
	w.labels = append(w.labels, Span{Start: start, End: w.buf.Len(), Null: l.null})
}

func (w *row) append(o *row) {
	offset := w.buf.Len()
	w.buf.WriteString(o.buf.String())
	for _, s := range o.labels {
		w.labels = append(w.labels, Span{Start: s.Start + offset, End: s.End + offset, Null: s.Null})
	}
}

func (w *row) blankCopy() *row {
	b := &row{}
	b.write(strings.Repeat(" ", runewidth.StringWidth(w.buf.String())))
	return b
}

func (w *row) line() Line {
	return Line{Text: w.buf.String(), Labels: w.labels}
}
