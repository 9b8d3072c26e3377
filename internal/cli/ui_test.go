package cli

import (
	"bytes"
	"strings"
	"testing"
)

// captureUI redirects status output to a buffer for the rest of the test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = old })
	return &buf
}

func TestStatusOutput(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  []string
	}{
		{"success", func() { printSuccess("Wrote %d files", 2) }, []string{iconSuccess, "Wrote 2 files"}},
		{"error", func() { printError("failed") }, []string{iconError, "failed"}},
		{"warning", func() { printWarning("careful") }, []string{iconWarning, "careful"}},
		{"info", func() { printInfo("listening on %s", ":8080") }, []string{iconInfo, "listening on :8080"}},
		{"detail", func() { printDetail("Directory: %s", "/tmp") }, []string{"  ", "Directory: /tmp"}},
		{"file", func() { printFile("tree.svg") }, []string{iconArrow, "tree.svg"}},
		{"key value", func() { printKeyValue("Address", ":8080") }, []string{"Address", ":8080"}},
		{"next step", func() { printNextStep("Try", "bintree demo") }, []string{"Try:", "bintree demo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureUI(t)
			tt.print()
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q should contain %q", out, w)
				}
			}
			if !strings.HasSuffix(out, "\n") {
				t.Errorf("output %q should end with a newline", out)
			}
		})
	}
}

func TestPrintStats(t *testing.T) {
	buf := captureUI(t)
	printStats(15, 4, false)
	if out := buf.String(); !strings.Contains(out, "15 nodes") || !strings.Contains(out, "depth 4") || !strings.Contains(out, iconFresh) {
		t.Errorf("printStats(fresh) = %q", out)
	}

	buf.Reset()
	printStats(3, 2, true)
	if out := buf.String(); !strings.Contains(out, iconCached) {
		t.Errorf("printStats(cached) = %q", out)
	}
}
