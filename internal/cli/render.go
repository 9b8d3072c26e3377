package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bintree/pkg/pipeline"
	"github.com/matzehuels/bintree/pkg/present"
)

const (
	defaultBase = "tree" // output base name when --output is not given
	textExt     = "txt"  // file extension for the text format
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	valueFlags
	textFlags

	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: text, json, dot, svg, png, pdf
	showNull bool     // draw placeholders in node-link output
	scale    float64  // PNG scale factor
	noCache  bool     // disable the artifact cache
	refresh  bool     // re-render even when cached
}

// renderCommand creates the render command.
//
// Values come from the arguments and from --input; they are ordered (auto by
// default) and built into a minimum-height tree. The text format is drawn on
// stdout unless --output is given; every other format is written to a file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [values...]",
		Short: "Draw a minimum-height binary tree",
		Example: `  bintree render 8 3 10 1 6 14
  bintree render -i values.json --order numeric
  bintree render -i words.txt -f text,svg -o words`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			vals, err := opts.load(args)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), vals, &opts)
		},
	}

	addValueFlags(cmd, &opts.valueFlags)
	addTextFlags(cmd, &opts.textFlags)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatText, "output format(s): text, json, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.showNull, "show-null", false, "draw placeholders for absent children in dot/svg/png/pdf")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render cached artifacts")

	return cmd
}

// addValueFlags registers the input and ordering flags.
func addValueFlags(cmd *cobra.Command, f *valueFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read values from a file (.json, .yaml, .toml or text; - for stdin)")
	cmd.Flags().StringVar(&f.order, "order", "", "value order: auto (default), numeric, lexical, none")
	cmd.Flags().BoolVar(&f.unique, "unique", false, "drop duplicate values after ordering")
}

// addTextFlags registers the text layout and colour flags. Zero values fall
// back to the config file.
func addTextFlags(cmd *cobra.Command, f *textFlags) {
	cmd.Flags().IntVar(&f.cellWidth, "cell-width", 0, "characters per grid cell (default 2, max 8)")
	cmd.Flags().StringVar(&f.link, "link", "", `link marker (default "+")`)
	cmd.Flags().StringVar(&f.placeholder, "placeholder", "", `label for absent children (default "NY")`)
	cmd.Flags().StringVar(&f.color, "color", "", "colour labels: auto (default), always, never")
}

// runRender executes the pipeline and delivers every requested format.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, vals []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	opts.setDefaults(c.Config)
	if len(opts.formats) == 0 {
		opts.formats = []string{pipeline.FormatText}
	}
	pres, err := opts.presenter(stdout, c.Config)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.options(vals, &opts.valueFlags, &opts.textFlags)
	popts.Formats = opts.formats
	popts.ShowNull = opts.showNull
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh

	logger.Debugf("Rendering %d values as %s", len(vals), strings.Join(opts.formats, ", "))
	prog := newProgress(logger)

	var spin *Spinner
	if slowFormats(opts.formats) && present.IsTerminal(uiOut) {
		spin = newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.formats, ", ")+"...")
		spin.Start()
	}
	res, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if len(vals) == 0 {
		printInfo("No values given; the tree is empty")
	}

	var written []string
	for _, format := range opts.formats {
		if format == pipeline.FormatText && opts.output == "" {
			if err := pres.Present(res.Lines); err != nil {
				return err
			}
			continue
		}

		path := outputPath(opts.output, format, len(opts.formats) > 1)
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(res.Artifacts[format]))
		written = append(written, path)
	}

	if len(written) > 0 {
		prog.done("Rendered " + treeSummary(res))
		printStats(res.Stats.NodeCount, res.Depth, res.CacheInfo.RenderHit)
		for _, p := range written {
			printFile(p)
		}
	}
	return nil
}

// slowFormats reports whether any format needs Graphviz or rsvg-convert.
func slowFormats(formats []string) bool {
	for _, f := range formats {
		switch f {
		case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
			return true
		}
	}
	return false
}

// extension returns the file extension for a format.
func extension(format string) string {
	if format == pipeline.FormatText {
		return textExt
	}
	return format
}

// basePath derives the base output path from --output. A known format
// extension (.svg, .txt, ...) is stripped; an empty output selects
// defaultBase.
func basePath(output string) string {
	if output == "" {
		return defaultBase
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext == textExt || pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// outputPath returns the file a format is written to. A single format is
// written to --output verbatim; several formats share its base path.
func outputPath(output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	return basePath(output) + "." + extension(format)
}

// openOutput opens path for writing; the empty path selects stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeOutput writes data to path.
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
