// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: order the input values and build the minimum-height tree
//  2. Render: produce output in the requested formats (text, JSON, DOT,
//     SVG, PNG, PDF)
//
// Rendered artifacts are cached under a key derived from the tree content
// and the render options, so repeated renders of the same values are served
// from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Values:  []string{"2", "4", "6", "8"},
//	    Formats: []string{"text", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/bintree/pkg/cache"
	"github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/render/ascii"
	"github.com/matzehuels/bintree/pkg/tree"
	"github.com/matzehuels/bintree/pkg/values"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultOrder sorts numerically when every value is a number.
	DefaultOrder = values.OrderAuto

	// DefaultCellWidth is the number of characters per grid cell.
	DefaultCellWidth = ascii.DefaultCellWidth

	// MaxCellWidth bounds the cell width and the link marker width. Output
	// size grows linearly with both.
	MaxCellWidth = 8

	// DefaultLink is the link marker.
	DefaultLink = ascii.DefaultLink

	// DefaultPlaceholder is the label drawn for absent nodes.
	DefaultPlaceholder = ascii.DefaultPlaceholder

	// DefaultMaxValues bounds the input size. A minimum-height tree of 4095
	// values has depth 12, whose text rendering is 8191 cells wide.
	DefaultMaxValues = 4095

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Values    []string     `json:"values"`
	Order     values.Order `json:"order,omitempty"`
	Unique    bool         `json:"unique,omitempty"`
	MaxValues int          `json:"max_values,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	CellWidth   int      `json:"cell_width,omitempty"`
	Link        string   `json:"link,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	ShowNull    bool     `json:"show_null,omitempty"` // Draw placeholders in node-link output
	Scale       float64  `json:"scale,omitempty"`     // PNG scale factor
	Refresh     bool     `json:"refresh,omitempty"`   // Bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	// Values is the ordered sequence the tree was built from.
	Values []string

	// Root is the built tree; nil for empty input.
	Root *tree.Node[string]

	// TreeHash is the content hash of the level-wise form.
	TreeHash string

	// Depth is the number of levels.
	Depth int

	// Levels is the level-wise form of the tree.
	Levels [][]tree.Slot[string]

	// Lines is the text rendering with label positions.
	Lines []ascii.Line

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ValueCount int
	NodeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	Hits      []string // Formats served from the cache
	RenderHit bool     // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format list. Blank entries are
// dropped and duplicates removed; the empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the input values and applies build defaults.
func (o *Options) ValidateForBuild() error {
	order, err := values.ParseOrder(string(o.Order))
	if err != nil {
		return err
	}
	o.Order = order

	if o.MaxValues == 0 {
		o.MaxValues = DefaultMaxValues
	}
	if len(o.Values) > o.MaxValues {
		return errors.New(errors.ErrCodeTooLarge, "too many values: %d (max %d)", len(o.Values), o.MaxValues)
	}
	if err := errors.ValidateLabels(o.Values); err != nil {
		return err
	}

	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.CellWidth == 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.Link == "" {
		o.Link = DefaultLink
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.CellWidth < 1 || o.CellWidth > MaxCellWidth {
		return errors.New(errors.ErrCodeInvalidInput, "cell width must be between 1 and %d, got %d", MaxCellWidth, o.CellWidth)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if err := errors.ValidateLabel(o.Link); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "link marker")
	}
	if w := runewidth.StringWidth(o.Link); w > MaxCellWidth {
		return errors.New(errors.ErrCodeInvalidInput, "link marker is %d cells wide (max %d)", w, MaxCellWidth)
	}
	if err := errors.ValidateLabel(o.Placeholder); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "placeholder")
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// TextOptions returns the text renderer options.
func (o *Options) TextOptions() []ascii.Option {
	return []ascii.Option{
		ascii.WithCellWidth(o.CellWidth),
		ascii.WithLink(o.Link),
		ascii.WithPlaceholder(o.Placeholder),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only the
// options that affect the given format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatText, FormatJSON:
		k.CellWidth = o.CellWidth
		k.Link = o.Link
		k.Placeholder = o.Placeholder
	case FormatDOT, FormatSVG, FormatPDF:
		k.ShowNull = o.ShowNull
		k.Placeholder = o.Placeholder
	case FormatPNG:
		k.ShowNull = o.ShowNull
		k.Placeholder = o.Placeholder
		k.Scale = o.Scale
	}
	return k
}
