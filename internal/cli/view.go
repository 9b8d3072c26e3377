package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/bintree/pkg/pipeline"
	"github.com/matzehuels/bintree/pkg/present"
	"github.com/matzehuels/bintree/pkg/render/ascii"
)

// viewCommand creates the view command, an interactive pager for trees too
// wide or too tall for the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		vf valueFlags
		tf textFlags
	)

	cmd := &cobra.Command{
		Use:   "view [values...]",
		Short: "Browse a tree in a scrollable viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("view needs a terminal; use render to print the tree")
			}
			vals, err := vf.load(args)
			if err != nil {
				return err
			}
			tf.setDefaults(c.Config)
			pres, err := tf.presenter(os.Stdout, c.Config)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), c.options(vals, &vf, &tf))
			if err != nil {
				return err
			}

			m := newViewModel(res, pres)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	addValueFlags(cmd, &vf)
	addTextFlags(cmd, &tf)

	return cmd
}

// =============================================================================
// viewModel - Scrollable tree viewer
// =============================================================================

const (
	viewHeaderHeight = 2
	viewFooterHeight = 2
	viewStepX        = 8 // cells per horizontal scroll step
)

var (
	viewHeaderStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewFooterStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// viewModel is the bubbletea model for the tree viewer. The viewport scrolls
// vertically; horizontal scrolling crops every line before it is coloured.
type viewModel struct {
	lines []ascii.Line
	pres  *present.Presenter
	stats string

	vp      viewport.Model
	ready   bool
	xOffset int
	width   int // widest line in cells
}

func newViewModel(res *pipeline.Result, pres *present.Presenter) viewModel {
	width := 0
	for _, l := range res.Lines {
		width = max(width, runewidth.StringWidth(l.Text))
	}
	return viewModel{
		lines: res.Lines,
		pres:  pres,
		stats: treeSummary(res),
		width: width,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.scrollX(-viewStepX)
			return m, nil
		case "right", "l":
			m.scrollX(viewStepX)
			return m, nil
		case "0":
			m.scrollX(-m.xOffset)
			return m, nil
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-viewHeaderHeight-viewFooterHeight, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.scrollX(0)
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// scrollX moves the horizontal offset by delta cells, clamped to the tree,
// and redraws the content.
func (m *viewModel) scrollX(delta int) {
	limit := max(m.width-m.vp.Width, 0)
	m.xOffset = min(max(m.xOffset+delta, 0), limit)
	if m.ready {
		m.vp.SetContent(m.content())
	}
}

// content renders the visible columns of every line.
func (m viewModel) content() string {
	rows := make([]string, len(m.lines))
	for i, l := range m.lines {
		rows[i] = m.pres.Format(cropLine(l, m.xOffset, m.vp.Width))
	}
	return strings.Join(rows, "\n")
}

func (m viewModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("bintree"))
	b.WriteString(viewHeaderStyle.Render("  " + m.stats))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(viewFooterStyle.Render(fmt.Sprintf("↑/↓ scroll  ←/→ pan  0 left edge  q quit   %3.f%%  col %d/%d",
		m.vp.ScrollPercent()*100, m.xOffset, m.width)))
	return b.String()
}

// cropLine returns the part of l starting at byte offset from, at most width
// bytes long, with label spans clipped and shifted to match. Both ends are
// moved back to rune boundaries. Tree lines are ASCII apart from labels, so
// bytes and cells agree everywhere except inside wide labels.
func cropLine(l ascii.Line, from, width int) ascii.Line {
	text := l.Text
	start := runeStart(text, min(from, len(text)))
	end := runeStart(text, min(start+max(width, 0), len(text)))

	out := ascii.Line{Text: text[start:end]}
	for _, s := range l.Labels {
		if s.End <= start || s.Start >= end {
			continue
		}
		out.Labels = append(out.Labels, ascii.Span{
			Start: max(s.Start, start) - start,
			End:   min(s.End, end) - start,
			Null:  s.Null,
		})
	}
	return out
}

// runeStart moves i back to the start of the rune containing it.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
