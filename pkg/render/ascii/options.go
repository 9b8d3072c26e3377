package ascii

import "strings"

const (
	// DefaultCellWidth is the number of characters in one grid cell.
	DefaultCellWidth = 2

	// DefaultLink is the marker drawn on link rows.
	DefaultLink = "+"

	// DefaultPlaceholder is the label drawn for absent nodes.
	DefaultPlaceholder = "NY"
)

// Option configures a render call.
type Option func(*renderer)

type renderer struct {
	blank       string
	link        string
	placeholder string
}

// WithCellWidth sets the number of characters per grid cell.
// Values below 1 are ignored.
func WithCellWidth(w int) Option {
	return func(r *renderer) {
		if w > 0 {
			r.blank = strings.Repeat(" ", w)
		}
	}
}

// WithLink sets the marker drawn on link rows. An empty marker is ignored.
func WithLink(s string) Option {
	return func(r *renderer) {
		if s != "" {
			r.link = s
		}
	}
}

// WithPlaceholder sets the label drawn where a level has no node.
func WithPlaceholder(s string) Option {
	return func(r *renderer) { r.placeholder = s }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		blank:       strings.Repeat(" ", DefaultCellWidth),
		link:        DefaultLink,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
