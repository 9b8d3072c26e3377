// Package render holds the renderers that turn a binary tree into output.
//
// # Overview
//
//   - Column-aligned text (in [ascii] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Text Rendering
//
// The [ascii] subpackage is the primary renderer. It centres every node
// over the range its subtree occupies and joins parents to children with
// diagonal link markers:
//
//	lines := ascii.RenderTree(tree.BuildMinHeight(values))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same tree with Graphviz.
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// from librsvg.
//
// [ascii]: github.com/matzehuels/bintree/pkg/render/ascii
// [nodelink]: github.com/matzehuels/bintree/pkg/render/nodelink
package render
