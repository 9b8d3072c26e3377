package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bintree/pkg/render"
	"github.com/matzehuels/bintree/pkg/tree"
)

// DefaultPlaceholder labels absent children when Options.ShowNull is set.
const DefaultPlaceholder = "NY"

// Options configures node-link diagram rendering.
type Options struct {
	// ShowNull draws absent children as dashed placeholder boxes. When
	// false, they are invisible and only keep lone children on their side.
	ShowNull bool
	// Placeholder is the label of a drawn placeholder. Empty selects
	// DefaultPlaceholder.
	Placeholder string
}

// ToDOT converts a tree to Graphviz DOT format. Nodes are named n0, n1, ...
// in pre-order. The empty tree yields a graph without nodes.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT[T any](root *tree.Node[T], opts Options) string {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if root != nil {
		buf.WriteString("\n")
		w := &dotWriter{buf: &buf, opts: opts}
		writeNode(w, root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

func (w *dotWriter) id() string {
	id := "n" + strconv.Itoa(w.next)
	w.next++
	return id
}

func writeNode[T any](w *dotWriter, n *tree.Node[T]) string {
	id := w.id()
	fmt.Fprintf(w.buf, "  %s [label=%q];\n", id, n.String())
	if n.IsLeaf() {
		return id
	}

	for _, child := range []*tree.Node[T]{n.Left, n.Right} {
		if child == nil {
			nullID := w.writeNull()
			fmt.Fprintf(w.buf, "  %s -> %s [%s];\n", id, nullID, w.nullEdgeStyle())
			continue
		}
		childID := writeNode(w, child)
		fmt.Fprintf(w.buf, "  %s -> %s;\n", id, childID)
	}
	return id
}

func (w *dotWriter) writeNull() string {
	id := w.id()
	if w.opts.ShowNull {
		fmt.Fprintf(w.buf, "  %s [label=%q, style=\"rounded,dashed\", fontcolor=grey];\n", id, w.opts.Placeholder)
	} else {
		fmt.Fprintf(w.buf, "  %s [label=\"\", style=invis];\n", id)
	}
	return id
}

func (w *dotWriter) nullEdgeStyle() string {
	if w.opts.ShowNull {
		return "style=dashed, color=grey"
	}
	return "style=invis"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element, which sizes the image in
// points, with one whose width and height equal the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
