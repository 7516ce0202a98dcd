package scroll

import (
	"github.com/andyrewlee/scrollbox/internal/assert"
	"github.com/andyrewlee/scrollbox/internal/geom"
)

// ScrollPos returns the current scroll position. Disabled axes report 0.
func (c *Container) ScrollPos() geom.Point64 {
	var p geom.Point64
	if c.hbar != nil {
		p.X = c.hbar.Pos()
	}
	if c.vbar != nil {
		p.Y = c.vbar.Pos()
	}
	return p
}

// ScrollRange returns the per-axis maximum scroll position.
func (c *Container) ScrollRange() geom.Size64 {
	var s geom.Size64
	if c.hbar != nil {
		s.W = c.hbar.Range()
	}
	if c.vbar != nil {
		s.H = c.vbar.Range()
	}
	return s
}

// SetScrollPos clamps pos into [0, range] per axis and applies it.
func (c *Container) SetScrollPos(pos geom.Point64) {
	rng := c.ScrollRange()
	pos.X = geom.Clamp64(pos.X, 0, rng.W)
	pos.Y = geom.Clamp64(pos.Y, 0, rng.H)

	old := c.ScrollPos()
	if pos == old {
		return
	}
	before := c.RenderOffset()
	if c.hbar != nil {
		c.hbar.SetPos(pos.X)
	}
	if c.vbar != nil {
		c.vbar.SetPos(pos.Y)
	}

	if after := c.RenderOffset(); after != before && !c.inSetPosition {
		c.notifyOffset(after)
	}
	if c.listener != nil {
		c.listener.Invalidate(c.rect)
		c.listener.ScrollChanged(ScrollEvent{
			Pos:        pos,
			Horizontal: pos.X != old.X,
			Vertical:   pos.Y != old.Y,
		})
	}
}

// SetScrollPosX changes only the horizontal position.
func (c *Container) SetScrollPosX(x int64) {
	p := c.ScrollPos()
	p.X = x
	c.SetScrollPos(p)
}

// SetScrollPosY changes only the vertical position.
func (c *Container) SetScrollPosY(y int64) {
	p := c.ScrollPos()
	p.Y = y
	c.SetScrollPos(p)
}

// SetVirtualOffset sets the subtrahend applied before narrowing the scroll
// position into screen space. Negative components are a contract violation.
func (c *Container) SetVirtualOffset(v geom.Size64) {
	if !assert.That(v.W >= 0 && v.H >= 0, "virtual offset must be non-negative, got %v", v) {
		v = v.NonNegative()
	}
	if v == c.virtual {
		return
	}
	before := c.RenderOffset()
	c.virtual = v
	if after := c.RenderOffset(); after != before {
		c.notifyOffset(after)
		if c.listener != nil {
			c.listener.Invalidate(c.rect)
		}
	}
}

// VirtualOffset returns the current virtual offset.
func (c *Container) VirtualOffset() geom.Size64 { return c.virtual }

// RenderOffset is the 32-bit offset used to paint and hit-test children.
func (c *Container) RenderOffset() geom.Point {
	pt, ok := geom.ToScreen(c.ScrollPos(), c.virtual)
	assert.That(ok, "render offset out of 32-bit range: pos %v virtual %v", c.ScrollPos(), c.virtual)
	return pt
}

func (c *Container) notifyOffset(off geom.Point) {
	if c.listener != nil {
		c.listener.ScrollOffsetChanged(off)
	}
}

// LineUp scrolls up by delta (one scroll unit when delta <= 0).
func (c *Container) LineUp(delta int64, animated bool) {
	if delta <= 0 {
		delta = c.unitY
	}
	c.scrollY(-delta, animated)
}

// LineDown scrolls down by delta (one scroll unit when delta <= 0).
func (c *Container) LineDown(delta int64, animated bool) {
	if delta <= 0 {
		delta = c.unitY
	}
	c.scrollY(delta, animated)
}

// LineLeft scrolls left by delta (one scroll unit when delta <= 0).
func (c *Container) LineLeft(delta int64) {
	if delta <= 0 {
		delta = c.unitX
	}
	c.SetScrollPosX(c.ScrollPos().X - delta)
}

// LineRight scrolls right by delta (one scroll unit when delta <= 0).
func (c *Container) LineRight(delta int64) {
	if delta <= 0 {
		delta = c.unitX
	}
	c.SetScrollPosX(c.ScrollPos().X + delta)
}

// PageUp scrolls up by one page.
func (c *Container) PageUp() { c.SetScrollPosY(c.ScrollPos().Y - c.pageHeight()) }

// PageDown scrolls down by one page.
func (c *Container) PageDown() { c.SetScrollPosY(c.ScrollPos().Y + c.pageHeight()) }

// PageLeft scrolls left by one page.
func (c *Container) PageLeft() { c.SetScrollPosX(c.ScrollPos().X - c.pageWidth()) }

// PageRight scrolls right by one page.
func (c *Container) PageRight() { c.SetScrollPosX(c.ScrollPos().X + c.pageWidth()) }

// HomeUp scrolls to the top.
func (c *Container) HomeUp() {
	c.stopAnimation()
	c.SetScrollPosY(0)
}

// EndDown scrolls to the bottom.
func (c *Container) EndDown(animated bool) {
	target := c.ScrollRange().H
	if animated {
		c.scrollY(target-c.ScrollPos().Y, true)
		return
	}
	c.stopAnimation()
	c.SetScrollPosY(target)
}

// HomeLeft scrolls to the left edge.
func (c *Container) HomeLeft() { c.SetScrollPosX(0) }

// EndRight scrolls to the right edge.
func (c *Container) EndRight() { c.SetScrollPosX(c.ScrollRange().W) }

// pageHeight is the padded rect height minus a visible horizontal bar.
func (c *Container) pageHeight() int64 {
	h := int64(c.rect.Deflate(c.padding).Height())
	if c.hbar != nil && c.hbar.IsValid() {
		h -= int64(c.hbar.Thickness())
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (c *Container) pageWidth() int64 {
	w := int64(c.rect.Deflate(c.padding).Width())
	if c.vbar != nil && c.vbar.IsValid() {
		w -= int64(c.vbar.Thickness())
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (c *Container) scrollY(delta int64, animated bool) {
	if delta == 0 {
		return
	}
	if !animated || c.animator == nil {
		c.stopAnimation()
		c.SetScrollPosY(c.ScrollPos().Y + delta)
		return
	}

	rng := c.ScrollRange().H
	a := c.animator
	if a.IsPlaying() {
		running := a.EndValue() - a.StartValue()
		if (running > 0) == (delta > 0) && running != 0 {
			a.SetEndValue(geom.Clamp64(a.EndValue()+delta, 0, rng))
			return
		}
		a.Reset()
	}

	cur := c.ScrollPos().Y
	target := geom.Clamp64(cur+delta, 0, rng)
	if target == cur {
		return
	}
	a.SetStartValue(cur)
	a.SetEndValue(target)
	a.Start()
}

func (c *Container) stopAnimation() {
	if c.animator != nil && c.animator.IsPlaying() {
		c.animator.Reset()
	}
}

// Close stops any running animation. The container stays usable.
func (c *Container) Close() {
	c.stopAnimation()
}
