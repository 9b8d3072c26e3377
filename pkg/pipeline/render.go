package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/render/ascii"
	"github.com/matzehuels/bintree/pkg/render/nodelink"
	"github.com/matzehuels/bintree/pkg/tree"
)

// Document is the JSON artifact: the level-wise form together with the
// text rendering.
type Document struct {
	ID     string                `json:"id,omitempty"`
	Depth  int                   `json:"depth"`
	Values []string              `json:"values"`
	Levels [][]tree.Slot[string] `json:"levels"`
	Lines  []ascii.Line          `json:"lines"`
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, b *Built, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, b, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact. opts must already be validated.
func RenderFormat(ctx context.Context, b *Built, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatText:
		data = TextBytes(ascii.RenderTree(b.Root, opts.TextOptions()...))
	case FormatJSON:
		data, err = json.MarshalIndent(newDocument(b, opts), "", "  ")
	case FormatDOT:
		data = []byte(dot(b, opts))
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot(b, opts))
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot(b, opts), opts.Scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot(b, opts))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// TextBytes joins rendered lines, terminating each with a newline.
func TextBytes(lines []string) []byte {
	if len(lines) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func newDocument(b *Built, opts Options) Document {
	doc := Document{
		Depth:  b.Depth,
		Values: b.Values,
		Levels: b.Levels,
		Lines:  ascii.RenderTreeLines(b.Root, opts.TextOptions()...),
	}
	if doc.Values == nil {
		doc.Values = []string{}
	}
	if doc.Levels == nil {
		doc.Levels = [][]tree.Slot[string]{}
	}
	if doc.Lines == nil {
		doc.Lines = []ascii.Line{}
	}
	return doc
}

func dot(b *Built, opts Options) string {
	return nodelink.ToDOT(b.Root, nodelink.Options{
		ShowNull:    opts.ShowNull,
		Placeholder: opts.Placeholder,
	})
}
