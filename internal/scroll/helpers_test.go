package scroll

import "github.com/andyrewlee/scrollbox/internal/geom"

type fakeItem struct {
	w, h   int32
	hidden bool
	rect   geom.Rect
}

func (f *fakeItem) IsVisible() bool { return !f.hidden }

func (f *fakeItem) Measure(avail geom.Size) geom.Size {
	return geom.Size{W: f.w, H: f.h}
}

func (f *fakeItem) SetRect(r geom.Rect) { f.rect = r }

func (f *fakeItem) Rect() geom.Rect { return f.rect }

// stackEngine stacks items top to bottom and stretches them to the available
// width, like a list. The reported width is the widest item's own width.
type stackEngine struct {
	calls int
}

func (e *stackEngine) Kind() LayoutKind { return KindVertical }

func (e *stackEngine) ArrangeChildren(items []Item, rect geom.Rect, padding geom.Insets) geom.Size64 {
	e.calls++
	inner := rect.Deflate(padding)
	y := inner.Top
	var maxW int32
	for _, it := range items {
		if !it.IsVisible() {
			continue
		}
		sz := it.Measure(inner.Size())
		w := sz.W
		if w < inner.Width() {
			w = inner.Width()
		}
		it.SetRect(geom.RectXYWH(inner.Left, y, w, sz.H))
		y += sz.H
		if sz.W > maxW {
			maxW = sz.W
		}
	}
	return geom.Size64{
		W: int64(maxW) + int64(padding.Horizontal()),
		H: int64(y-inner.Top) + int64(padding.Vertical()),
	}
}

// fixedEngine reports a content size that ignores the rect.
type fixedEngine struct {
	sizes []geom.Size64
	calls int
}

func (e *fixedEngine) Kind() LayoutKind { return KindHorizontal }

func (e *fixedEngine) ArrangeChildren(items []Item, rect geom.Rect, padding geom.Insets) geom.Size64 {
	sz := e.sizes[e.calls%len(e.sizes)]
	e.calls++
	return sz
}

type recordingListener struct {
	events  []ScrollEvent
	offsets []geom.Point
	invals  int
}

func (l *recordingListener) ScrollChanged(ev ScrollEvent) { l.events = append(l.events, ev) }

func (l *recordingListener) ScrollOffsetChanged(off geom.Point) {
	l.offsets = append(l.offsets, off)
}

func (l *recordingListener) Invalidate(geom.Rect) { l.invals++ }

type recordingPainter struct {
	clips  []geom.Rect
	items  []geom.Rect
	tracks []bool
	depth  int
}

func (p *recordingPainter) PushClip(r geom.Rect) {
	p.clips = append(p.clips, r)
	p.depth++
}

func (p *recordingPainter) PopClip() { p.depth-- }

func (p *recordingPainter) PaintItem(_ Item, r geom.Rect) { p.items = append(p.items, r) }

func (p *recordingPainter) PaintTrack(_ ScrollTrack, vertical bool) {
	p.tracks = append(p.tracks, vertical)
}

func newList(heights ...int32) (*Container, []*fakeItem) {
	c := New(&stackEngine{})
	items := make([]*fakeItem, len(heights))
	list := make([]Item, len(heights))
	for i, h := range heights {
		items[i] = &fakeItem{w: 10, h: h}
		list[i] = items[i]
	}
	c.SetItems(list)
	return c, items
}
