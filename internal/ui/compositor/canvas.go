package compositor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/scrollbox/internal/geom"
)

// Canvas is a fixed-size buffer of styled cells. Drawing coordinates are
// translated by the origin, so a pane can draw in screen space into a buffer
// the size of the pane. Drawing is clipped to the innermost pushed clip rect.
type Canvas struct {
	Width  int
	Height int
	Cells  [][]Cell

	origin geom.Point
	clips  []geom.Rect

	// renderBuffers keep two frames alive so the previous output stays valid
	// while the next one is built.
	renderBuffers    [2]strings.Builder
	renderBufferNext int
}

// NewCanvas creates a new canvas filled with blank cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize resets the canvas dimensions when the size changes.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == c.Width && height == c.Height && c.Cells != nil {
		return
	}
	rows := make([][]Cell, height)
	for y := range rows {
		rows[y] = blankLine(width, Style{})
	}
	c.Width = width
	c.Height = height
	c.Cells = rows
	c.clips = c.clips[:0]
}

// SetOrigin sets the drawing coordinate of the top-left cell. Pushed clips
// are dropped.
func (c *Canvas) SetOrigin(p geom.Point) {
	c.origin = p
	c.clips = c.clips[:0]
}

// Origin returns the drawing coordinate of the top-left cell.
func (c *Canvas) Origin() geom.Point { return c.origin }

// Bounds is the full canvas rect in drawing coordinates.
func (c *Canvas) Bounds() geom.Rect {
	return geom.RectXYWH(c.origin.X, c.origin.Y, int32(c.Width), int32(c.Height))
}

// Clip returns the active clip rect.
func (c *Canvas) Clip() geom.Rect {
	if len(c.clips) == 0 {
		return c.Bounds()
	}
	return c.clips[len(c.clips)-1]
}

// PushClip narrows drawing to r intersected with the current clip.
func (c *Canvas) PushClip(r geom.Rect) {
	c.clips = append(c.clips, c.Clip().Intersect(r))
}

// PopClip restores the previous clip.
func (c *Canvas) PopClip() {
	if len(c.clips) > 0 {
		c.clips = c.clips[:len(c.clips)-1]
	}
}

// Fill sets the entire canvas to the given style.
func (c *Canvas) Fill(style Style) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.Cells[y][x] = Cell{Rune: ' ', Width: 1, Style: style}
		}
	}
}

// SetCell sets a cell if within the clip.
func (c *Canvas) SetCell(x, y int, cell Cell) {
	if !c.Clip().Contains(geom.Point{X: int32(x), Y: int32(y)}) {
		return
	}
	c.Cells[y-int(c.origin.Y)][x-int(c.origin.X)] = cell
}

// CellAt returns the cell at (x, y), or a blank cell when out of bounds.
func (c *Canvas) CellAt(x, y int) Cell {
	x -= int(c.origin.X)
	y -= int(c.origin.Y)
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return DefaultCell()
	}
	return c.Cells[y][x]
}

// DrawText draws a string starting at the given position and returns the
// column after the last cell written.
func (c *Canvas) DrawText(x, y int, text string, style Style) int {
	col := x
	for _, r := range text {
		width := runewidth.RuneWidth(r)
		if width <= 0 {
			continue
		}
		if col >= int(c.origin.X)+c.Width {
			break
		}
		c.SetCell(col, y, Cell{Rune: r, Width: width, Style: style})
		if width == 2 {
			c.SetCell(col+1, y, Cell{Width: 0, Style: style})
		}
		col += width
	}
	return col
}

// PaintRect fills r with blank cells in style.
func (c *Canvas) PaintRect(r geom.Rect, style Style) {
	r = r.Intersect(c.Clip()).Offset(-c.origin.X, -c.origin.Y)
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			c.Cells[y][x] = Cell{Rune: ' ', Width: 1, Style: style}
		}
	}
}

// Tint restyles r in place, keeping the runes.
func (c *Canvas) Tint(r geom.Rect, fn func(Style) Style) {
	r = r.Intersect(c.Clip()).Offset(-c.origin.X, -c.origin.Y)
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			c.Cells[y][x].Style = fn(c.Cells[y][x].Style)
		}
	}
}

// DrawBorder draws a single or double line border around r.
func (c *Canvas) DrawBorder(r geom.Rect, style Style, double bool) {
	x, y, w, h := int(r.Left), int(r.Top), int(r.Width()), int(r.Height())
	if w < 1 || h < 1 {
		return
	}

	var tl, tr, bl, br, hline, vline rune
	if double {
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
		hline, vline = '═', '║'
	} else {
		tl, tr, bl, br = '┌', '┐', '└', '┘'
		hline, vline = '─', '│'
	}
	if w == 1 || h == 1 {
		// Degenerate outline: a plain line.
		for cx := x; cx < x+w; cx++ {
			for cy := y; cy < y+h; cy++ {
				ch := hline
				if w == 1 && h > 1 {
					ch = vline
				}
				c.SetCell(cx, cy, Cell{Rune: ch, Width: 1, Style: style})
			}
		}
		return
	}

	// Corners
	c.SetCell(x, y, Cell{Rune: tl, Width: 1, Style: style})
	c.SetCell(x+w-1, y, Cell{Rune: tr, Width: 1, Style: style})
	c.SetCell(x, y+h-1, Cell{Rune: bl, Width: 1, Style: style})
	c.SetCell(x+w-1, y+h-1, Cell{Rune: br, Width: 1, Style: style})

	// Horizontal lines
	for cx := x + 1; cx < x+w-1; cx++ {
		c.SetCell(cx, y, Cell{Rune: hline, Width: 1, Style: style})
		c.SetCell(cx, y+h-1, Cell{Rune: hline, Width: 1, Style: style})
	}

	// Vertical lines
	for cy := y + 1; cy < y+h-1; cy++ {
		c.SetCell(x, cy, Cell{Rune: vline, Width: 1, Style: style})
		c.SetCell(x+w-1, cy, Cell{Rune: vline, Width: 1, Style: style})
	}
}

// Render converts the canvas to an ANSI string. Runs of equal style are
// rendered through lipgloss.
func (c *Canvas) Render() string {
	b := &c.renderBuffers[c.renderBufferNext]
	c.renderBufferNext = (c.renderBufferNext + 1) % len(c.renderBuffers)
	b.Reset()
	b.Grow(c.Width * c.Height * 2)

	var run strings.Builder
	for y := 0; y < c.Height; y++ {
		var runStyle Style
		run.Reset()
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == (Style{}) {
				b.WriteString(run.String())
			} else {
				b.WriteString(runStyle.Lipgloss().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.Width; x++ {
			cell := c.Cells[y][x]
			if cell.Width == 0 {
				continue
			}
			if cell.Style != runStyle {
				flush()
				runStyle = cell.Style
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			run.WriteRune(r)
		}
		flush()
		if y < c.Height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// PlainRow returns buffer row y (not translated by the origin) without
// styling.
func (c *Canvas) PlainRow(y int) string {
	if y < 0 || y >= c.Height {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.Cells[y] {
		if cell.Width == 0 {
			continue
		}
		if cell.Rune == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(cell.Rune)
	}
	return b.String()
}
