package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bintree/pkg/errors"
)

// Format is an input file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// FormatOf infers the format from a file name's extension. Unknown
// extensions are read as text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// FromArgs splits command-line arguments on commas and whitespace, so
// "1,2 3" and "1" "2" "3" give the same values. Empty pieces are dropped.
func FromArgs(args []string) []string {
	var out []string
	for _, a := range args {
		out = append(out, split(a)...)
	}
	return out
}

func split(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// ReadFile reads values from path in the format given by its extension.
// The path "-" reads plain text from standard input.
func ReadFile(path string) ([]string, error) {
	if path == "-" {
		return Read(os.Stdin, FormatText)
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	vals, err := Read(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vals, nil
}

// Read reads values from r in the given format.
//
//   - json: an array of numbers, strings or booleans; numbers keep their
//     literal text
//   - yaml: a sequence of scalars
//   - toml: a top-level "values" array
//   - text: values separated by commas or whitespace
func Read(r io.Reader, format Format) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		return parseTOML(data)
	case FormatText, "":
		return split(string(data)), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}

func parseJSON(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse JSON: expected an array of values")
	}

	return FromAny(raw)
}

// FromAny converts decoded JSON values to labels. Numbers must have been
// decoded as json.Number so that they keep their literal text.
func FromAny(raw []any) ([]string, error) {
	out := make([]string, 0, len(raw))
	for i, v := range raw {
		switch v := v.(type) {
		case json.Number:
			out = append(out, v.String())
		case string:
			out = append(out, v)
		case bool:
			out = append(out, fmt.Sprint(v))
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "value #%d: expected a number, string or boolean, got %T", i+1, v)
		}
	}
	return out, nil
}

func parseYAML(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse YAML")
	}
	if doc.Kind == 0 {
		return nil, nil
	}

	seq := &doc
	if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parse YAML: expected a sequence of values")
	}

	out := make([]string, 0, len(seq.Content))
	for i, n := range seq.Content {
		if n.Kind != yaml.ScalarNode {
			return nil, errors.New(errors.ErrCodeInvalidInput, "value #%d (line %d): expected a scalar", i+1, n.Line)
		}
		out = append(out, n.Value)
	}
	return out, nil
}

func parseTOML(data []byte) ([]string, error) {
	var doc struct {
		Values []any `toml:"values"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse TOML")
	}
	if !md.IsDefined("values") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parse TOML: missing top-level \"values\" array")
	}

	out := make([]string, 0, len(doc.Values))
	for i, v := range doc.Values {
		switch v.(type) {
		case int64, float64, string, bool:
			out = append(out, fmt.Sprint(v))
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "value #%d: expected a number, string or boolean, got %T", i+1, v)
		}
	}
	return out, nil
}
