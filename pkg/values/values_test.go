package values

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/bintree/pkg/errors"
)

func TestFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate", []string{"1", "2", "3"}, []string{"1", "2", "3"}},
		{"commas", []string{"1,2,3"}, []string{"1", "2", "3"}},
		{"mixed", []string{"1, 2", "3 4,,5"}, []string{"1", "2", "3", "4", "5"}},
		{"empty", nil, nil},
		{"only separators", []string{", ,"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromArgs(tt.args); !slices.Equal(got, tt.want) {
				t.Errorf("FromArgs(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"v.json":     FormatJSON,
		"v.YAML":     FormatYAML,
		"v.yml":      FormatYAML,
		"v.toml":     FormatTOML,
		"v.txt":      FormatText,
		"values":     FormatText,
		"dir/x.json": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    []string
		wantErr bool
	}{
		{"json numbers", FormatJSON, `[2, 4.50, 1e3]`, []string{"2", "4.50", "1e3"}, false},
		{"json mixed", FormatJSON, `["a", 1, true]`, []string{"a", "1", "true"}, false},
		{"json empty", FormatJSON, `[]`, []string{}, false},
		{"json object", FormatJSON, `{"values": [1]}`, nil, true},
		{"json nested", FormatJSON, `[[1]]`, nil, true},
		{"json null", FormatJSON, `[1, null]`, nil, true},

		{"yaml flow", FormatYAML, "[007, 8, x]", []string{"007", "8", "x"}, false},
		{"yaml block", FormatYAML, "- 1\n- 2\n- three\n", []string{"1", "2", "three"}, false},
		{"yaml empty document", FormatYAML, "", nil, false},
		{"yaml mapping", FormatYAML, "a: 1\n", nil, true},
		{"yaml nested", FormatYAML, "- [1, 2]\n", nil, true},

		{"toml", FormatTOML, "values = [3, 1, 2]\n", []string{"3", "1", "2"}, false},
		{"toml strings", FormatTOML, `values = ["b", "a"]`, []string{"b", "a"}, false},
		{"toml missing", FormatTOML, "other = [1]\n", nil, true},
		{"toml invalid", FormatTOML, "values = [\n", nil, true},

		{"text lines", FormatText, "1\n2\n3\n", []string{"1", "2", "3"}, false},
		{"text commas", FormatText, "1, 2,3", []string{"1", "2", "3"}, false},
		{"unknown format", Format("xml"), "<v/>", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !slices.Equal(got, tt.want) {
				t.Errorf("Read() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.yaml")
	if err := os.WriteFile(path, []byte("- 10\n- 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !slices.Equal(got, []string{"10", "20"}) {
		t.Errorf("ReadFile() = %q", got)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("ReadFile(bad) error = %v, should name the file", err)
	}
}
