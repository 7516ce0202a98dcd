package compositor

import (
	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/scroll"
)

// Drawable is an item that knows how to draw itself into a cell rect.
type Drawable interface {
	Draw(c *Canvas, r geom.Rect)
}

// Theme styles the chrome the Painter draws.
type Theme struct {
	Track       Style
	Thumb       Style
	VTrackRune  rune
	VThumbRune  rune
	HTrackRune  rune
	HThumbRune  rune
	Overlay     Style
	OverlayEdge Style
}

// DefaultTheme uses box-drawing glyphs and no colors.
func DefaultTheme() Theme {
	return Theme{
		VTrackRune:  '│',
		VThumbRune:  '┃',
		HTrackRune:  '─',
		HThumbRune:  '━',
		Overlay:     Style{Reverse: true},
		OverlayEdge: Style{Bold: true},
	}
}

// Painter draws a scroll container and the selection overlay onto a canvas.
type Painter struct {
	*Canvas
	Theme Theme
}

// NewPainter wraps c.
func NewPainter(c *Canvas, theme Theme) *Painter {
	return &Painter{Canvas: c, Theme: theme}
}

// PaintItem draws item into r when it implements Drawable.
func (p *Painter) PaintItem(item scroll.Item, r geom.Rect) {
	d, ok := item.(Drawable)
	if !ok {
		return
	}
	p.PushClip(r)
	d.Draw(p.Canvas, r)
	p.PopClip()
}

type thumber interface {
	Thumb(n int32) (offset, length int32)
}

// PaintTrack draws a scrollbar track with its thumb.
func (p *Painter) PaintTrack(t scroll.ScrollTrack, vertical bool) {
	r := t.Rect()
	if r.Empty() {
		return
	}
	n := r.Width()
	trackRune, thumbRune := p.Theme.HTrackRune, p.Theme.HThumbRune
	if vertical {
		n = r.Height()
		trackRune, thumbRune = p.Theme.VTrackRune, p.Theme.VThumbRune
	}
	off, length := int32(0), n
	if th, ok := t.(thumber); ok {
		off, length = th.Thumb(n)
	}

	for i := int32(0); i < n; i++ {
		cell := Cell{Rune: trackRune, Width: 1, Style: p.Theme.Track}
		if i >= off && i < off+length {
			cell = Cell{Rune: thumbRune, Width: 1, Style: p.Theme.Thumb}
		}
		if vertical {
			for x := r.Left; x < r.Right; x++ {
				p.SetCell(int(x), int(r.Top+i), cell)
			}
			continue
		}
		for y := r.Top; y < r.Bottom; y++ {
			p.SetCell(int(r.Left+i), int(y), cell)
		}
	}
}

// FillRect shades r with the overlay style, keeping the text underneath.
func (p *Painter) FillRect(r geom.Rect) {
	ov := p.Theme.Overlay
	p.Tint(r, func(s Style) Style {
		if ov.Fg != "" {
			s.Fg = ov.Fg
		}
		if ov.Bg != "" {
			s.Bg = ov.Bg
		}
		s.Reverse = s.Reverse || ov.Reverse
		s.Bold = s.Bold || ov.Bold
		return s
	})
}

// StrokeRect outlines r.
func (p *Painter) StrokeRect(r geom.Rect) {
	p.DrawBorder(r, p.Theme.OverlayEdge, false)
}
