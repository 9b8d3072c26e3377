// Package nodelink renders binary trees as node-link diagrams.
//
// # Overview
//
// The text renderer in package ascii is the primary view of a tree. This
// package draws the same tree with Graphviz, where nodes appear as rounded
// boxes connected by arrows, for output formats a terminal cannot show.
//
// # Usage
//
// Convert a tree to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Child Sides
//
// Graphviz places the children of a node in edge order, so a node with a
// single child would draw it centred below its parent. [ToDOT] emits an
// invisible placeholder for the absent child so that a lone left child stays
// left and a lone right child stays right. With [Options].ShowNull the
// placeholders are drawn as dashed boxes labelled with the placeholder text.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
