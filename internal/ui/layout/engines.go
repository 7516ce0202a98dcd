package layout

import (
	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/scroll"
)

// Vertical stacks visible items top to bottom and stretches each to the
// available width.
type Vertical struct {
	Gap int32
}

func (v Vertical) Kind() scroll.LayoutKind { return scroll.KindVertical }

func (v Vertical) ArrangeChildren(items []scroll.Item, rect geom.Rect, padding geom.Insets) geom.Size64 {
	inner := rect.Deflate(padding)
	y := int64(inner.Top)
	var maxW int64
	placed := 0
	for _, it := range items {
		if !it.IsVisible() {
			it.SetRect(geom.Rect{})
			continue
		}
		if placed > 0 {
			y += int64(v.Gap)
		}
		sz := it.Measure(inner.Size())
		w := sz.W
		if w < inner.Width() {
			w = inner.Width()
		}
		it.SetRect(geom.RectXYWH(inner.Left, geom.Saturate32(y), w, sz.H))
		y += int64(sz.H)
		if int64(sz.W) > maxW {
			maxW = int64(sz.W)
		}
		placed++
	}
	return geom.Size64{
		W: maxW + int64(padding.Horizontal()),
		H: y - int64(inner.Top) + int64(padding.Vertical()),
	}
}

// Horizontal places visible items left to right and stretches each to the
// available height.
type Horizontal struct {
	Gap int32
}

func (h Horizontal) Kind() scroll.LayoutKind { return scroll.KindHorizontal }

func (h Horizontal) ArrangeChildren(items []scroll.Item, rect geom.Rect, padding geom.Insets) geom.Size64 {
	inner := rect.Deflate(padding)
	x := int64(inner.Left)
	var maxH int64
	placed := 0
	for _, it := range items {
		if !it.IsVisible() {
			it.SetRect(geom.Rect{})
			continue
		}
		if placed > 0 {
			x += int64(h.Gap)
		}
		sz := it.Measure(inner.Size())
		ht := sz.H
		if ht < inner.Height() {
			ht = inner.Height()
		}
		it.SetRect(geom.RectXYWH(geom.Saturate32(x), inner.Top, sz.W, ht))
		x += int64(sz.W)
		if int64(sz.H) > maxH {
			maxH = int64(sz.H)
		}
		placed++
	}
	return geom.Size64{
		W: x - int64(inner.Left) + int64(padding.Horizontal()),
		H: maxH + int64(padding.Vertical()),
	}
}

// Align positions tile rows inside a rect taller than the rows need.
type Align int

const (
	AlignTop Align = iota
	AlignCenter
	AlignBottom
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// Tile wraps fixed-size cells into rows. Rows are aligned vertically within
// the rect, which only has an effect when they do not fill it.
type Tile struct {
	Cell  geom.Size
	Gap   int32
	Align Align
}

func (t Tile) Kind() scroll.LayoutKind { return scroll.KindTile }

// Columns returns how many cells fit across width.
func (t Tile) Columns(width int32) int {
	cw := t.Cell.W
	if cw <= 0 {
		return 1
	}
	cols := int((width + t.Gap) / (cw + t.Gap))
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (t Tile) ArrangeChildren(items []scroll.Item, rect geom.Rect, padding geom.Insets) geom.Size64 {
	inner := rect.Deflate(padding)
	cols := t.Columns(inner.Width())

	visible := 0
	for _, it := range items {
		if it.IsVisible() {
			visible++
		}
	}
	rows := (visible + cols - 1) / cols
	usedCols := cols
	if visible < cols {
		usedCols = visible
	}

	contentW := int64(usedCols)*int64(t.Cell.W) + int64(max(usedCols-1, 0))*int64(t.Gap)
	contentH := int64(rows)*int64(t.Cell.H) + int64(max(rows-1, 0))*int64(t.Gap)

	top := int64(inner.Top)
	if slack := int64(inner.Height()) - contentH; slack > 0 {
		switch t.Align {
		case AlignCenter:
			top += slack / 2
		case AlignBottom:
			top += slack
		}
	}

	i := 0
	for _, it := range items {
		if !it.IsVisible() {
			it.SetRect(geom.Rect{})
			continue
		}
		row, col := i/cols, i%cols
		x := int64(inner.Left) + int64(col)*int64(t.Cell.W+t.Gap)
		y := top + int64(row)*int64(t.Cell.H+t.Gap)
		it.SetRect(geom.RectXYWH(geom.Saturate32(x), geom.Saturate32(y), t.Cell.W, t.Cell.H))
		i++
	}

	return geom.Size64{
		W: contentW + int64(padding.Horizontal()),
		H: contentH + int64(padding.Vertical()),
	}
}
