// Package pkg provides the core libraries for bintree, a renderer for
// minimum-height binary trees.
//
// # Overview
//
// bintree takes a sequence of values, orders it, builds the binary tree of
// minimum height whose in-order traversal is that sequence, and draws the tree
// top-down as text with link markers between parents and children. The pkg
// directory is organized into these areas:
//
//  1. [tree] - Tree construction, depth and the level-wise form
//  2. [render] - Text layout ([render/ascii]) and node-link diagrams ([render/nodelink])
//  3. [values] - Reading and ordering input values
//  4. [pipeline] - Orchestration (order → build → render) with caching
//  5. [cache], [config], [errors], [observability] - Infrastructure
//  6. [present], [server] - Terminal output and the HTTP API
//
// # Architecture
//
// The typical data flow through bintree:
//
//	values (arguments, JSON, YAML, TOML, text)
//	         ↓
//	    [values] package (parse + order)
//	         ↓
//	    [tree] package (minimum-height tree + level-wise form)
//	         ↓
//	    [render] packages (text lines, DOT, SVG/PNG/PDF)
//	         ↓
//	    terminal, files or HTTP responses
//
// # Quick Start
//
// Build a tree and draw it:
//
//	import (
//	    "fmt"
//	    "github.com/matzehuels/bintree/pkg/render/ascii"
//	    "github.com/matzehuels/bintree/pkg/tree"
//	)
//
//	root := tree.BuildMinHeight([]int{1, 2, 3, 4, 5, 6, 7})
//	for _, line := range ascii.RenderTree(root) {
//	    fmt.Println(line)
//	}
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Values:  []string{"8", "3", "10", "1"},
//	    Formats: []string{pipeline.FormatText, pipeline.FormatSVG},
//	})
//
// # Command-Line Tool
//
// The bintree CLI (cmd/bintree) wraps these packages:
//
//	bintree render 8 3 10 1 6 14
//	bintree render -i values.json -f svg -o tree.svg
//	bintree levels 1 2 3 4
//	bintree view -i words.txt
//	bintree serve --addr :8080
package pkg
