package selection

import (
	"time"

	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/perf"
	"github.com/andyrewlee/scrollbox/internal/timer"
)

const (
	// DefaultInterval is the auto-scroll repeat interval.
	DefaultInterval = 50 * time.Millisecond
	// DefaultThreshold is the unscaled distance a press must travel before it
	// becomes a drag.
	DefaultThreshold int32 = 4
	// DefaultStickyNudge is the unscaled depth of the band under a sticky
	// header boundary that already scrolls up.
	DefaultStickyNudge int32 = 4
)

// Option configures a Controller.
type Option func(*Controller)

// WithScale sets the DPI percentage applied to threshold and nudge.
func WithScale(percent int) Option {
	return func(c *Controller) {
		if percent > 0 {
			c.scale = percent
		}
	}
}

// WithThreshold sets the unscaled drag threshold.
func WithThreshold(v int32) Option {
	return func(c *Controller) {
		if v > 0 {
			c.threshold = v
		}
	}
}

// WithInterval sets the auto-scroll repeat interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithDeltas sets the per-tick auto-scroll distance. Zero uses the host's
// scroll unit.
func WithDeltas(horizontal, vertical int64) Option {
	return func(c *Controller) {
		c.hDelta, c.vDelta = horizontal, vertical
	}
}

// WithStickyNudge sets the unscaled depth of the band under the sticky
// header boundary that counts as crossing it. 0 disables the band.
func WithStickyNudge(v int32) Option {
	return func(c *Controller) {
		if v >= 0 {
			c.nudge = v
		}
	}
}

// WithBorder toggles the overlay outline.
func WithBorder(on bool) Option {
	return func(c *Controller) { c.border = on }
}

// Controller runs the click-versus-drag state machine for one host.
type Controller struct {
	host  Host
	sched timer.Scheduler
	tok   *timer.Token

	enabled   bool
	scale     int
	threshold int32
	nudge     int32
	interval  time.Duration
	hDelta    int64
	vDelta    int64
	border    bool

	mouseDown     bool
	rmouseDown    bool
	inDrag        bool
	downInView    bool
	sender        Sender
	downPoint     geom.Point64
	movePoint     geom.Point64
	normalItemTop *int32
	closed        bool
}

// New returns an enabled controller for host.
func New(host Host, sched timer.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		host:      host,
		sched:     sched,
		tok:       sched.NewToken(),
		enabled:   true,
		scale:     100,
		threshold: DefaultThreshold,
		nudge:     DefaultStickyNudge,
		interval:  DefaultInterval,
		border:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetEnabled turns frame selection on or off. Disabling ends a drag.
func (c *Controller) SetEnabled(on bool) {
	if c.enabled == on {
		return
	}
	c.enabled = on
	if !on && c.inDrag {
		c.inDrag = false
		c.sched.Cancel(c.tok)
		c.host.Invalidate()
	}
}

// Enabled reports whether frame selection is on.
func (c *Controller) Enabled() bool { return c.enabled }

// SetNormalItemTop sets the screen y where ordinary rows start below sticky
// headers. nil removes the boundary.
func (c *Controller) SetNormalItemTop(top *int32) {
	if top == nil {
		c.normalItemTop = nil
		return
	}
	v := *top
	c.normalItemTop = &v
}

// Configure applies options after construction, e.g. on config reload.
func (c *Controller) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// InDrag reports whether a frame selection is in progress.
func (c *Controller) InDrag() bool { return c.inDrag }

// ButtonDown reports whether a gesture is in progress.
func (c *Controller) ButtonDown() bool { return c.mouseDown || c.rmouseDown }

// ScrollTimerActive reports whether an auto-scroll tick is pending.
func (c *Controller) ScrollTimerActive() bool { return c.sched.Active(c.tok) }

// DownPoint and MovePoint are the gesture endpoints in content space.
func (c *Controller) DownPoint() geom.Point64 { return c.downPoint }

func (c *Controller) MovePoint() geom.Point64 { return c.movePoint }

// OnButtonDown starts a gesture at pt.
func (c *Controller) OnButtonDown(btn Button, pt geom.Point, sender Sender) {
	if c.closed {
		return
	}
	if c.inDrag {
		c.inDrag = false
		c.sched.Cancel(c.tok)
		c.host.Invalidate()
	}
	switch btn {
	case ButtonRight:
		c.rmouseDown = true
	default:
		c.mouseDown = true
	}
	c.downInView = c.host.IsSelf(sender)
	c.sender = sender
	c.downPoint = c.toContent(pt)
	c.movePoint = c.downPoint
}

// OnButtonUp ends the gesture. A press on blank area that never became a
// drag runs the host's blank-click policy; the result is returned.
func (c *Controller) OnButtonUp(btn Button, pt geom.Point, sender Sender) bool {
	if c.closed {
		return false
	}
	down := c.mouseDown
	if btn == ButtonRight {
		down = c.rmouseDown
	}
	handled := false
	if down && c.downInView && !c.inDrag {
		handled = c.host.OnBlankAreaClicked(btn)
	}
	wasDrag := c.inDrag
	c.reset()
	if wasDrag {
		c.host.RaiseEvent(EventDragEnd)
		c.host.Invalidate()
	}
	return handled
}

// OnMouseMove tracks the gesture. Moves from a different sender than the
// one that started it, or without capture, are not ours and are ignored.
func (c *Controller) OnMouseMove(pt geom.Point, sender Sender) {
	if c.closed || !c.enabled || !c.host.MultiSelect() {
		return
	}
	if !c.mouseDown && !c.rmouseDown {
		return
	}
	if sender != c.sender || !c.host.HasCapture(sender) {
		return
	}
	c.movePoint = c.toContent(pt)

	if !c.inDrag {
		th := int64(c.scaled(c.threshold))
		dx, dy := abs64(c.movePoint.X-c.downPoint.X), abs64(c.movePoint.Y-c.downPoint.Y)
		if dx < th && dy < th {
			return
		}
		c.inDrag = true
		logging.Debug("selection: drag start at %v", c.downPoint)
		c.host.RaiseEvent(EventDragBegin)
	}
	c.OnCheckScrollView()
}

// OnCheckScrollView scrolls toward any viewport edge the drag point has
// crossed, keeps the one-shot repeat timer armed while scrolling makes
// progress, and re-applies the frame selection.
func (c *Controller) OnCheckScrollView() {
	if c.closed {
		return
	}
	if !c.inDrag || !c.enabled {
		c.sched.Cancel(c.tok)
		return
	}

	before := c.host.ScrollPos()
	pt := c.toScreen(c.movePoint)
	view := c.host.Viewport()

	// Below a sticky header the top edge is the header boundary, and the
	// nudge band just under it already counts as crossing it.
	crossTop := pt.Y < view.Top
	if c.normalItemTop != nil {
		if sticky := *c.normalItemTop; sticky > view.Top {
			crossTop = pt.Y < sticky+c.scaled(c.nudge)
		}
	}

	switch {
	case pt.X < view.Left:
		c.host.LineLeft(c.hDelta)
	case pt.X >= view.Right:
		c.host.LineRight(c.hDelta)
	}
	switch {
	case crossTop:
		c.host.LineUp(c.vDelta, false)
	case pt.Y >= view.Bottom:
		c.host.LineDown(c.vDelta, false)
	}

	after := c.host.ScrollPos()
	if after != before {
		c.movePoint = c.movePoint.Add(after.Sub(before))
		c.sched.Schedule(c.tok, c.tick, c.interval, 1)
	} else {
		c.sched.Cancel(c.tok)
	}

	left, right := sorted(c.downPoint.X, c.movePoint.X)
	upper, lower := sorted(c.downPoint.Y, c.movePoint.Y)
	origin := c.host.ScreenOrigin()
	ox, oy := int64(origin.X), int64(origin.Y)
	if c.host.ApplyFrameSelection(left-ox, right-ox, upper-oy, lower-oy) {
		c.host.RaiseEvent(EventSelectionChanged)
	}
	c.host.Invalidate()
}

func (c *Controller) tick() {
	perf.Count(perf.AutoScrollTick, 1)
	c.OnCheckScrollView()
}

// OnWindowKillFocus drops every gesture state and repaints.
func (c *Controller) OnWindowKillFocus() {
	if c.closed {
		return
	}
	wasDrag := c.inDrag
	c.reset()
	if wasDrag {
		c.host.RaiseEvent(EventDragEnd)
	}
	c.host.Invalidate()
}

// SelectionRect returns the drag rectangle in screen space, with its top
// clamped below any sticky header. ok is false when not dragging.
func (c *Controller) SelectionRect() (r geom.Rect, ok bool) {
	if !c.inDrag {
		return geom.Rect{}, false
	}
	a, b := c.toScreen(c.downPoint), c.toScreen(c.movePoint)
	left, right := sorted32(a.X, b.X)
	top, bottom := sorted32(a.Y, b.Y)
	if c.normalItemTop != nil && top < *c.normalItemTop {
		top = *c.normalItemTop
	}
	// Inclusive of the cell under the pointer.
	return geom.Rect{Left: left, Top: top, Right: right + 1, Bottom: bottom + 1}.Normalized(), true
}

// PaintSelectionOverlay draws the drag rectangle. No-op when not dragging.
func (c *Controller) PaintSelectionOverlay(p OverlayPainter) {
	r, ok := c.SelectionRect()
	if !ok || r.Empty() {
		return
	}
	p.FillRect(r)
	if c.border {
		p.StrokeRect(r)
	}
}

// Close releases the timer token. Ticks already in flight become no-ops and
// every later call is ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.reset()
	c.closed = true
	c.sched.Close(c.tok)
}

func (c *Controller) reset() {
	c.mouseDown = false
	c.rmouseDown = false
	c.inDrag = false
	c.downInView = false
	c.sender = 0
	c.sched.Cancel(c.tok)
}

func (c *Controller) toContent(pt geom.Point) geom.Point64 {
	pos := c.host.ScrollPos()
	return pt.To64().Add(geom.Size64{W: pos.X, H: pos.Y})
}

func (c *Controller) toScreen(p geom.Point64) geom.Point {
	pos := c.host.ScrollPos()
	return geom.Point{X: geom.Saturate32(p.X - pos.X), Y: geom.Saturate32(p.Y - pos.Y)}
}

func (c *Controller) scaled(v int32) int32 {
	out := int32(int64(v) * int64(c.scale) / 100)
	if v > 0 && out < 1 {
		out = 1
	}
	return out
}

func sorted(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func sorted32(a, b int32) (int32, int32) {
	if a > b {
		return b, a
	}
	return a, b
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
