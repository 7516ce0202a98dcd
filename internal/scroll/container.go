package scroll

import (
	"github.com/andyrewlee/scrollbox/internal/assert"
	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/perf"
)

// Container is a scrollable box. It arranges its items through a
// LayoutEngine, negotiates scrollbar visibility against the arranged content
// size, and owns the 64-bit scroll position.
type Container struct {
	engine LayoutEngine
	items  []Item

	rect          geom.Rect
	padding       geom.Insets
	barPadding    geom.Insets
	barThickness  int32
	float         bool
	holdEnd       bool
	unitX, unitY  int64
	virtual       geom.Size64
	vbar, hbar    *Track
	animator      ScrollAnimator
	listener      Listener
	viewport      geom.Rect
	content       geom.Size64
	passes        int
	inSetPosition bool
}

// New returns a container arranged by engine. Scrollbars start disabled.
func New(engine LayoutEngine) *Container {
	return &Container{
		engine:       engine,
		barThickness: DefaultThickness,
		unitX:        1,
		unitY:        1,
	}
}

// SetListener installs the notification sink. nil disables notifications.
func (c *Container) SetListener(l Listener) { c.listener = l }

// SetAnimator installs the animator used by animated vertical scrolling.
func (c *Container) SetAnimator(a ScrollAnimator) {
	if c.animator != nil {
		c.animator.Reset()
	}
	c.animator = a
	if a != nil {
		a.SetEasing(WheelEasing)
		a.SetCallback(func(v int64) { c.SetScrollPosY(v) })
	}
}

// Engine returns the layout engine.
func (c *Container) Engine() LayoutEngine { return c.engine }

// LayoutKind reports the engine's kind.
func (c *Container) LayoutKind() LayoutKind { return c.engine.Kind() }

// EnableScrollBar allocates or drops the per-axis tracks. Disabling an axis
// resets its position.
func (c *Container) EnableScrollBar(vertical, horizontal bool) {
	changed := false
	switch {
	case vertical && c.vbar == nil:
		c.vbar = NewTrack(c.barThickness)
		changed = true
	case !vertical && c.vbar != nil:
		c.vbar = nil
		changed = true
	}
	switch {
	case horizontal && c.hbar == nil:
		c.hbar = NewTrack(c.barThickness)
		changed = true
	case !horizontal && c.hbar != nil:
		c.hbar = nil
		changed = true
	}
	if changed {
		c.relayout()
	}
}

// VScrollBar returns the vertical track, or nil when the axis is disabled.
func (c *Container) VScrollBar() *Track { return c.vbar }

// HScrollBar returns the horizontal track, or nil when the axis is disabled.
func (c *Container) HScrollBar() *Track { return c.hbar }

// SetScrollBarThickness applies to existing and future tracks.
func (c *Container) SetScrollBarThickness(v int32) {
	if v < 0 {
		v = 0
	}
	c.barThickness = v
	if c.vbar != nil {
		c.vbar.thickness = v
	}
	if c.hbar != nil {
		c.hbar.thickness = v
	}
	c.relayout()
}

// SetScrollBarFloat makes scrollbars overlay content instead of reserving space.
func (c *Container) SetScrollBarFloat(float bool) {
	if c.float == float {
		return
	}
	c.float = float
	c.relayout()
}

// SetScrollBarPadding insets scrollbar placement within the container rect.
func (c *Container) SetScrollBarPadding(in geom.Insets) {
	c.barPadding = clampInsets(in)
	c.relayout()
}

// SetPadding sets the content padding.
func (c *Container) SetPadding(in geom.Insets) {
	c.padding = clampInsets(in)
	c.relayout()
}

// Padding returns the content padding.
func (c *Container) Padding() geom.Insets { return c.padding }

// SetHoldEnd keeps the view pinned to the bottom as content grows, as long as
// it was at the bottom before the layout pass.
func (c *Container) SetHoldEnd(hold bool) { c.holdEnd = hold }

// HoldEnd reports the hold-end flag.
func (c *Container) HoldEnd() bool { return c.holdEnd }

// SetScrollUnits sets how far one line scroll moves on each axis.
func (c *Container) SetScrollUnits(x, y int64) {
	if x <= 0 {
		x = 1
	}
	if y <= 0 {
		y = 1
	}
	c.unitX, c.unitY = x, y
}

// ScrollUnits returns the per-axis line scroll distance.
func (c *Container) ScrollUnits() (x, y int64) { return c.unitX, c.unitY }

// SetItems replaces the children and re-runs layout.
func (c *Container) SetItems(items []Item) {
	c.items = append(c.items[:0:0], items...)
	c.relayout()
}

// AddItem appends a child and re-runs layout.
func (c *Container) AddItem(item Item) {
	c.items = append(c.items, item)
	c.relayout()
}

// RemoveItem drops the first occurrence of item.
func (c *Container) RemoveItem(item Item) bool {
	for i, it := range c.items {
		if it == item {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.relayout()
			return true
		}
	}
	return false
}

// Items returns the children in arrangement order.
func (c *Container) Items() []Item { return c.items }

// Rect returns the last rect passed to SetPosition.
func (c *Container) Rect() geom.Rect { return c.rect }

// Viewport returns the content area: the rect minus padding and any space
// reserved for non-floating scrollbars.
func (c *Container) Viewport() geom.Rect { return c.viewport }

// ContentSize returns the required content size from the last layout pass,
// padding excluded.
func (c *Container) ContentSize() geom.Size64 { return c.content }

// Passes returns the number of arrangement passes run by the last
// SetPosition call.
func (c *Container) Passes() int { return c.passes }

// Relayout re-runs SetPosition with the current rect.
func (c *Container) Relayout() { c.relayout() }

func (c *Container) relayout() {
	if c.rect.Empty() {
		return
	}
	c.SetPosition(c.rect)
}

// SetPosition moves the container to rect, arranges children and settles
// scrollbar visibility.
func (c *Container) SetPosition(rect geom.Rect) {
	defer perf.Time("layout.set_position")()

	rect = rect.Normalized()
	pinned := c.holdEnd && c.vbar != nil && c.vbar.IsValid() && c.vbar.Pos() >= c.vbar.Range()
	before := c.RenderOffset()

	c.rect = rect
	c.passes = 0
	c.inSetPosition = true
	c.arrangeWithScrollbars(false)
	if pinned && c.vbar != nil && c.vbar.IsValid() {
		c.EndDown(false)
	}
	c.inSetPosition = false

	if after := c.RenderOffset(); after != before {
		c.notifyOffset(after)
	}
}

// reservedRect is rect minus the space held by visible non-floating bars.
func (c *Container) reservedRect() geom.Rect {
	r := c.rect
	if c.float {
		return r
	}
	if c.vbar != nil && c.vbar.IsValid() {
		r.Right -= c.vbar.Thickness()
	}
	if c.hbar != nil && c.hbar.IsValid() {
		r.Bottom -= c.hbar.Thickness()
	}
	return r.Normalized()
}

// arrangeWithScrollbars runs one arrangement pass. A pass may request one
// more (scrollRecursion=true) when scrollbar visibility flips or a shrinking
// range clamps the position; a flip on that second pass means the engine is
// not stable and is fatal.
func (c *Container) arrangeWithScrollbars(scrollRecursion bool) {
	c.passes++
	perf.Count(perf.ArrangePass, 1)

	arrangeRect := c.reservedRect()
	required := c.engine.ArrangeChildren(c.items, arrangeRect, c.padding)
	if c.engine.Kind() == KindTile {
		required = c.rederive(arrangeRect, required)
	}

	content := geom.Size64{
		W: required.W - int64(c.padding.Horizontal()),
		H: required.H - int64(c.padding.Vertical()),
	}.NonNegative()
	c.content = content
	c.viewport = arrangeRect.Deflate(c.padding)

	needV, needH, rangeV, rangeH := c.decide(content)

	flipV := c.vbar != nil && needV != c.vbar.IsValid()
	flipH := c.hbar != nil && needH != c.hbar.IsValid()
	if (flipV || flipH) && !c.float {
		if scrollRecursion {
			assert.Fatal("scrollbar visibility did not converge: content %v in %v (v %t->%t, h %t->%t)",
				content, c.rect, c.vbar != nil && c.vbar.IsValid(), needV, c.hbar != nil && c.hbar.IsValid(), needH)
		}
		perf.Count(perf.VisibilityFlip, 1)
		logging.Debug("scrollbox: scrollbar flip v=%t h=%t content=%v rect=%v", needV, needH, content, c.rect)
		c.applyRange(c.vbar, needV, rangeV)
		c.applyRange(c.hbar, needH, rangeH)
		c.arrangeWithScrollbars(true)
		return
	}

	shifted := c.applyRange(c.vbar, needV, rangeV)
	shifted = c.applyRange(c.hbar, needH, rangeH) || shifted
	c.placeBars()

	if shifted && !scrollRecursion {
		c.arrangeWithScrollbars(true)
	}
}

// decide computes per-axis visibility against the viewport the children were
// just arranged in. A bar that is about to appear or disappear changes the
// cross-axis extent, so the other axis is re-checked against that extent
// before the caller compares against the current visibility.
func (c *Container) decide(content geom.Size64) (needV, needH bool, rangeV, rangeH int64) {
	viewW, viewH := int64(c.viewport.Width()), int64(c.viewport.Height())

	var vthick, hthick int64
	var hasV, hasH bool
	if !c.float {
		if c.vbar != nil {
			vthick = int64(c.vbar.Thickness())
			hasV = c.vbar.IsValid()
		}
		if c.hbar != nil {
			hthick = int64(c.hbar.Thickness())
			hasH = c.hbar.IsValid()
		}
	}
	// Extent along each axis once the opposite bar settles.
	widthWith := func(v bool) int64 {
		w := viewW
		if hasV {
			w += vthick
		}
		if v {
			w -= vthick
		}
		return w
	}
	heightWith := func(h bool) int64 {
		ht := viewH
		if hasH {
			ht += hthick
		}
		if h {
			ht -= hthick
		}
		return ht
	}

	// Start with both bars hidden; showing one can only add the other, so
	// two rounds reach the fixed point.
	needV = c.vbar != nil && content.H > heightWith(false)
	for i := 0; i < 2; i++ {
		if c.hbar != nil {
			needH = content.W > widthWith(needV)
		}
		if c.vbar != nil {
			needV = content.H > heightWith(needH)
		}
	}

	finalW, finalH := widthWith(needV), heightWith(needH)
	if finalW < 0 {
		finalW = 0
	}
	if finalH < 0 {
		finalH = 0
	}
	if needV {
		rangeV = content.H - finalH
	}
	if needH {
		rangeH = content.W - finalW
	}
	if rangeH <= 0 {
		needH, rangeH = false, 0
	}
	return needV, needH, rangeV, rangeH
}

// applyRange pushes a visibility decision into t and reports whether the
// position had to move because the range shrank under it.
func (c *Container) applyRange(t *Track, show bool, rng int64) bool {
	if t == nil {
		return false
	}
	if show && !assert.That(rng > 0, "scrollbar shown with zero range") {
		show = false
	}
	if !show {
		rng = 0
	}
	before := t.Pos()
	if t.Range() != rng {
		t.SetRange(rng)
	}
	return t.Pos() != before
}

func (c *Container) placeBars() {
	bounds := c.rect.Deflate(c.barPadding)
	if c.vbar != nil {
		if c.vbar.IsValid() {
			r := geom.Rect{
				Left:   bounds.Right - c.vbar.Thickness(),
				Top:    bounds.Top,
				Right:  bounds.Right,
				Bottom: bounds.Bottom,
			}
			if c.hbar != nil && c.hbar.IsValid() {
				r.Bottom -= c.hbar.Thickness()
			}
			c.vbar.SetRect(r)
			c.vbar.SetPage(int64(c.viewport.Height()))
		} else {
			c.vbar.SetRect(geom.Rect{})
		}
	}
	if c.hbar != nil {
		if c.hbar.IsValid() {
			c.hbar.SetRect(geom.Rect{
				Left:   bounds.Left,
				Top:    bounds.Bottom - c.hbar.Thickness(),
				Right:  bounds.Right,
				Bottom: bounds.Bottom,
			})
			c.hbar.SetPage(int64(c.viewport.Width()))
		} else {
			c.hbar.SetRect(geom.Rect{})
		}
	}
}

// rederive re-arranges a tile layout against the rect its content really
// occupies. The first pass aligned children (center/bottom) inside the
// viewport; when the content overshoots, the true rect is the content extent
// and alignment must be recomputed against it. An undershooting result was
// already aligned against the true rect and is returned as is.
func (c *Container) rederive(rect geom.Rect, required geom.Size64) geom.Size64 {
	w, h := int64(rect.Width()), int64(rect.Height())
	corrected := rect
	if required.H > h {
		corrected.Bottom = corrected.Top + geom.Saturate32(required.H)
	}
	if required.W > w && c.hbar != nil {
		corrected.Right = corrected.Left + geom.Saturate32(required.W)
	}
	if corrected == rect {
		return required
	}
	return c.engine.ArrangeChildren(c.items, corrected, c.padding)
}

func clampInsets(in geom.Insets) geom.Insets {
	if in.Left < 0 {
		in.Left = 0
	}
	if in.Top < 0 {
		in.Top = 0
	}
	if in.Right < 0 {
		in.Right = 0
	}
	if in.Bottom < 0 {
		in.Bottom = 0
	}
	return in
}
