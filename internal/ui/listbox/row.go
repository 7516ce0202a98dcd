package listbox

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/ui/common"
	"github.com/andyrewlee/scrollbox/internal/ui/compositor"
)

// Row is one line of a list box. Text may carry ANSI styling.
type Row struct {
	Text string
	// Header rows pin to the top of the viewport once scrolled past and are
	// never selected.
	Header bool

	hidden   bool
	selected bool
	rect     geom.Rect
	width    int32
	measured string
	theme    *RowTheme
}

// NewRow returns a visible row.
func NewRow(text string) *Row {
	return &Row{Text: text}
}

// NewHeader returns a sticky header row.
func NewHeader(text string) *Row {
	return &Row{Text: text, Header: true}
}

func (r *Row) IsVisible() bool { return !r.hidden }

// SetHidden removes the row from layout without dropping it.
func (r *Row) SetHidden(hidden bool) { r.hidden = hidden }

// Selected reports whether the row is part of the selection.
func (r *Row) Selected() bool { return r.selected }

// Measure reports the display width of the text and a height of one cell.
func (r *Row) Measure(geom.Size) geom.Size {
	if r.measured != r.Text {
		r.width = int32(ansi.StringWidth(r.Text))
		r.measured = r.Text
	}
	return geom.Size{W: r.width, H: 1}
}

func (r *Row) SetRect(rect geom.Rect) { r.rect = rect }

func (r *Row) Rect() geom.Rect { return r.rect }

// PlainText returns the text without styling.
func (r *Row) PlainText() string { return ansi.Strip(r.Text) }

// RowTheme styles rows by state.
type RowTheme struct {
	Normal   compositor.Style
	Selected compositor.Style
	Header   compositor.Style
}

// DefaultRowTheme uses the shared palette.
func DefaultRowTheme() RowTheme {
	return RowTheme{
		Normal:   compositor.Style{Fg: common.ColorForeground},
		Selected: compositor.Style{Fg: common.ColorForeground, Bg: common.ColorSelection},
		Header:   compositor.Style{Fg: common.ColorPrimary, Bg: common.ColorSurface1, Bold: true},
	}
}

// Draw paints the row background across r and the text from its left edge.
func (r *Row) Draw(c *compositor.Canvas, rect geom.Rect) {
	theme := r.theme
	if theme == nil {
		def := DefaultRowTheme()
		theme = &def
	}
	style := theme.Normal
	switch {
	case r.Header:
		style = theme.Header
	case r.selected:
		style = theme.Selected
	}
	c.PaintRect(rect, style)
	c.DrawANSI(int(rect.Left), int(rect.Top), r.Text, style)
}
