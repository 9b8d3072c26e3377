// Package present writes rendered tree lines to a terminal, highlighting
// node labels and placeholders.
//
// Colours are applied with lipgloss. Whether to emit escape sequences is
// decided by a [ColorMode]: "auto" colours only when the writer is a
// terminal and NO_COLOR is unset, "always" and "never" force the choice.
package present

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/render/ascii"
)

// ColorMode selects when output is coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Default label colours, as ANSI 256 codes.
const (
	DefaultLabelFG = "255"
	DefaultLabelBG = "167"
	DefaultNullFG  = "240"
)

// ParseColorMode parses "auto", "always" or "never". The empty string is
// treated as "auto".
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidColor, "invalid color mode %q (want auto, always or never)", s)
	}
}

// Presenter formats and writes rendered lines.
type Presenter struct {
	w       io.Writer
	mode    ColorMode
	labelFG string
	labelBG string
	nullFG  string

	label lipgloss.Style
	null  lipgloss.Style
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithColorMode sets the colour mode. The default is ColorAuto.
func WithColorMode(m ColorMode) Option {
	return func(p *Presenter) { p.mode = m }
}

// WithLabelStyle sets the foreground and background colour of node labels.
// Empty values keep the defaults.
func WithLabelStyle(fg, bg string) Option {
	return func(p *Presenter) {
		if fg != "" {
			p.labelFG = fg
		}
		if bg != "" {
			p.labelBG = bg
		}
	}
}

// WithNullStyle sets the foreground colour of placeholders.
func WithNullStyle(fg string) Option {
	return func(p *Presenter) {
		if fg != "" {
			p.nullFG = fg
		}
	}
}

// New creates a Presenter writing to w.
func New(w io.Writer, opts ...Option) *Presenter {
	p := &Presenter{
		w:       w,
		mode:    ColorAuto,
		labelFG: DefaultLabelFG,
		labelBG: DefaultLabelBG,
		nullFG:  DefaultNullFG,
	}
	for _, opt := range opts {
		opt(p)
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile(w, p.mode, r.ColorProfile()))

	p.label = r.NewStyle().
		Foreground(lipgloss.Color(p.labelFG)).
		Background(lipgloss.Color(p.labelBG)).
		Bold(true)
	p.null = r.NewStyle().Foreground(lipgloss.Color(p.nullFG))
	return p
}

// profile resolves the colour profile for w. detected is the profile
// termenv derived from the environment.
func profile(w io.Writer, mode ColorMode, detected termenv.Profile) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		if detected == termenv.Ascii {
			return termenv.ANSI256
		}
		return detected
	}
	if !IsTerminal(w) {
		return termenv.Ascii
	}
	return detected
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Colored reports whether the presenter emits escape sequences.
func (p *Presenter) Colored() bool {
	return p.label.Render("x") != "x"
}

// Format returns the line's text with its labels styled. Text outside the
// label spans is unchanged.
func (p *Presenter) Format(line ascii.Line) string {
	if len(line.Labels) == 0 || !p.Colored() {
		return line.Text
	}

	var b strings.Builder
	prev := 0
	for _, s := range line.Labels {
		b.WriteString(line.Text[prev:s.Start])
		style := p.label
		if s.Null {
			style = p.null
		}
		b.WriteString(style.Render(line.Text[s.Start:s.End]))
		prev = s.End
	}
	b.WriteString(line.Text[prev:])
	return b.String()
}

// Present writes every line followed by a newline.
func (p *Presenter) Present(lines []ascii.Line) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(p.w, p.Format(l)); err != nil {
			return err
		}
	}
	return nil
}
