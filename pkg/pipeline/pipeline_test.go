package pipeline

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/values"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"text", []string{"text"}},
		{"svg,png", []string{"svg", "png"}},
		{" SVG , ,svg,dot ", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		if got := ParseFormats(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should be [text], got %v", opts.Formats)
	}
	if opts.CellWidth != DefaultCellWidth {
		t.Errorf("CellWidth should be %d, got %d", DefaultCellWidth, opts.CellWidth)
	}
	if opts.Link != DefaultLink || opts.Placeholder != DefaultPlaceholder {
		t.Errorf("Link/Placeholder = %q/%q", opts.Link, opts.Placeholder)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %g, got %g", DefaultScale, opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateForBuild(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"valid", Options{Values: []string{"1", "2"}}, ""},
		{"empty", Options{}, ""},
		{"bad order", Options{Order: "random"}, errors.ErrCodeInvalidOrder},
		{"empty value", Options{Values: []string{"1", ""}}, errors.ErrCodeInvalidValue},
		{"control char", Options{Values: []string{"a\tb"}}, errors.ErrCodeInvalidValue},
		{"too many", Options{Values: []string{"1", "2", "3"}, MaxValues: 2}, errors.ErrCodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForBuild()
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateForBuild() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForBuild() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Values: []string{"1"}}
	if err := opts.ValidateForBuild(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Order != values.OrderAuto {
		t.Errorf("Order should be %q, got %q", values.OrderAuto, opts.Order)
	}
	if opts.MaxValues != DefaultMaxValues {
		t.Errorf("MaxValues should be %d, got %d", DefaultMaxValues, opts.MaxValues)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"negative cell width", Options{CellWidth: -1}, true},
		{"widest cell", Options{CellWidth: MaxCellWidth}, false},
		{"cell too wide", Options{CellWidth: MaxCellWidth + 1}, true},
		{"link too wide", Options{Link: "+++++++++"}, true},
		{"negative scale", Options{Scale: -2}, true},
		{"newline link", Options{Link: "\n"}, true},
		{"custom", Options{CellWidth: 1, Link: "/", Placeholder: "."}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRender() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Values: []string{"3", "1"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats := slices.Clone(opts.Formats)
	order := opts.Order

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if !slices.Equal(opts.Formats, formats) {
		t.Error("Formats changed on second call")
	}
	if opts.Order != order {
		t.Error("Order changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{CellWidth: 1, Link: "/", Placeholder: ".", ShowNull: true, Scale: 3}

	text := opts.ArtifactKeyOpts(FormatText)
	if text.CellWidth != 1 || text.Link != "/" || text.ShowNull {
		t.Errorf("text key opts = %+v", text)
	}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.CellWidth != 0 || svg.Link != "" || !svg.ShowNull || svg.Scale != 0 {
		t.Errorf("svg key opts = %+v", svg)
	}

	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Scale != 3 {
		t.Errorf("png key opts = %+v", png)
	}
}

func TestBuild(t *testing.T) {
	b, err := Build(Options{Values: strings.Fields("100 2 89 4 6 8 10 15 20 25 35 50 55 70 99")})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := strings.Fields("2 4 6 8 10 15 20 25 35 50 55 70 89 99 100")
	if !slices.Equal(b.Values, want) {
		t.Errorf("Values = %q, want %q", b.Values, want)
	}
	if b.Root.Value() != "25" {
		t.Errorf("root = %q, want 25", b.Root.Value())
	}
	if b.Depth != 4 || len(b.Levels) != 4 {
		t.Errorf("depth = %d, levels = %d, want 4", b.Depth, len(b.Levels))
	}
	if len(b.TreeHash) != 64 {
		t.Errorf("TreeHash = %q", b.TreeHash)
	}
}

func TestBuild_OrderAndUnique(t *testing.T) {
	b, err := Build(Options{Values: []string{"b", "a", "b", "c"}, Unique: true})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !slices.Equal(b.Values, []string{"a", "b", "c"}) {
		t.Errorf("Values = %q", b.Values)
	}

	b, err = Build(Options{Values: []string{"3", "1", "2"}, Order: values.OrderNone})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if b.Root.Value() != "1" {
		t.Errorf("OrderNone should keep input order, root = %q", b.Root.Value())
	}

	if _, err := Build(Options{Values: []string{"1", "x"}, Order: values.OrderNumeric}); err == nil {
		t.Error("numeric order should reject non-numbers")
	}
}

func TestBuild_Empty(t *testing.T) {
	b, err := Build(Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if b.Root != nil || b.Depth != 0 || b.Levels != nil {
		t.Errorf("empty build = %+v", b)
	}
}

func TestBuild_HashReflectsShape(t *testing.T) {
	a, _ := Build(Options{Values: []string{"1", "2", "3"}})
	b, _ := Build(Options{Values: []string{"3", "2", "1"}})
	c, _ := Build(Options{Values: []string{"1", "2", "3"}, Order: values.OrderNone})
	d, _ := Build(Options{Values: []string{"1", "2", "4"}})

	if a.TreeHash != b.TreeHash || a.TreeHash != c.TreeHash {
		t.Error("same tree should hash the same")
	}
	if a.TreeHash == d.TreeHash {
		t.Error("different values should hash differently")
	}
}
