package scroll

import "github.com/andyrewlee/scrollbox/internal/geom"

// ItemAt returns the visible item under pt (screen space), or nil.
func (c *Container) ItemAt(pt geom.Point) Item {
	if !c.viewport.Contains(pt) {
		return nil
	}
	off := c.RenderOffset()
	for i := len(c.items) - 1; i >= 0; i-- {
		it := c.items[i]
		if !it.IsVisible() {
			continue
		}
		if it.Rect().Offset(-off.X, -off.Y).Contains(pt) {
			return it
		}
	}
	return nil
}

// ToContent converts a screen point into 64-bit content space.
func (c *Container) ToContent(pt geom.Point) geom.Point64 {
	pos := c.ScrollPos()
	return pt.To64().Add(geom.Size64{W: pos.X, H: pos.Y})
}

// Paint draws the visible children clipped to the viewport, then any visible
// scrollbars on top.
func (c *Container) Paint(p Painter) {
	if c.rect.Empty() {
		return
	}
	off := c.RenderOffset()

	p.PushClip(c.viewport)
	for _, it := range c.items {
		if !it.IsVisible() {
			continue
		}
		r := it.Rect().Offset(-off.X, -off.Y)
		if !r.Intersects(c.viewport) {
			continue
		}
		p.PaintItem(it, r)
	}
	p.PopClip()

	if c.vbar != nil && c.vbar.IsValid() {
		p.PaintTrack(c.vbar, true)
	}
	if c.hbar != nil && c.hbar.IsValid() {
		p.PaintTrack(c.hbar, false)
	}
}
