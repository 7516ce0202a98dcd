package selection

import (
	"testing"
	"time"

	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/perf"
	"github.com/andyrewlee/scrollbox/internal/scroll"
	"github.com/andyrewlee/scrollbox/internal/timer"
	"github.com/andyrewlee/scrollbox/internal/ui/layout"
)

const self Sender = 0

type block struct {
	h    int32
	rect geom.Rect
}

func (b *block) IsVisible() bool { return true }
func (b *block) Measure(avail geom.Size) geom.Size { return geom.Size{W: 1, H: b.h} }
func (b *block) SetRect(r geom.Rect) { b.rect = r }
func (b *block) Rect() geom.Rect { return b.rect }

type fakeHost struct {
	*scroll.Container
	multi     bool
	noCapture bool
	origin    geom.Point

	blankClicks int
	blankResult bool
	applied     [][4]int64
	changed     bool
	events      []EventKind
	invals      int
}

func newHost(rect geom.Rect, contentHeight int32) *fakeHost {
	c := scroll.New(layout.Vertical{})
	c.EnableScrollBar(true, false)
	c.SetItems([]scroll.Item{&block{h: contentHeight}})
	c.SetPosition(rect)
	return &fakeHost{Container: c, multi: true, origin: rect.Origin(), blankResult: true}
}

func (h *fakeHost) OnBlankAreaClicked(Button) bool {
	h.blankClicks++
	return h.blankResult
}

func (h *fakeHost) ApplyFrameSelection(left, right, top, bottom int64) bool {
	h.applied = append(h.applied, [4]int64{left, right, top, bottom})
	return h.changed
}

func (h *fakeHost) RaiseEvent(kind EventKind) { h.events = append(h.events, kind) }
func (h *fakeHost) Invalidate() { h.invals++ }
func (h *fakeHost) ScreenOrigin() geom.Point { return h.origin }
func (h *fakeHost) MultiSelect() bool { return h.multi }
func (h *fakeHost) HasCapture(Sender) bool { return !h.noCapture }
func (h *fakeHost) IsSelf(s Sender) bool { return s == self }

func (h *fakeHost) lastApplied(t *testing.T) [4]int64 {
	t.Helper()
	if len(h.applied) == 0 {
		t.Fatal("expected a frame selection to be applied")
	}
	return h.applied[len(h.applied)-1]
}

type overlayRecorder struct {
	fills, strokes []geom.Rect
}

func (o *overlayRecorder) FillRect(r geom.Rect) { o.fills = append(o.fills, r) }
func (o *overlayRecorder) StrokeRect(r geom.Rect) { o.strokes = append(o.strokes, r) }

func TestDragThreshold(t *testing.T) {
	tests := []struct {
		name      string
		move      geom.Point
		wantDrag  bool
		wantBlank int
	}{
		{"below threshold", geom.Point{X: 8, Y: 8}, false, 1},
		{"horizontal threshold", geom.Point{X: 9, Y: 5}, true, 0},
		{"vertical threshold", geom.Point{X: 5, Y: 9}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newHost(geom.RectXYWH(0, 0, 50, 20), 10)
			c := New(host, timer.NewManual())

			c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
			c.OnMouseMove(tt.move, self)
			if c.InDrag() != tt.wantDrag {
				t.Fatalf("InDrag = %t, want %t", c.InDrag(), tt.wantDrag)
			}
			handled := c.OnButtonUp(ButtonLeft, tt.move, self)
			if host.blankClicks != tt.wantBlank {
				t.Fatalf("blank clicks = %d, want %d", host.blankClicks, tt.wantBlank)
			}
			if handled != (tt.wantBlank > 0) {
				t.Fatalf("OnButtonUp returned %t", handled)
			}
			if c.InDrag() || c.ButtonDown() {
				t.Fatalf("state not reset after button up")
			}
		})
	}
}

func TestThresholdScalesWithDPI(t *testing.T) {
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 10)
	c := New(host, timer.NewManual(), WithScale(200))

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 12, Y: 5}, self)
	if c.InDrag() {
		t.Fatal("7 cells should stay below a threshold of 8 at 200%")
	}
	c.OnMouseMove(geom.Point{X: 13, Y: 5}, self)
	if !c.InDrag() {
		t.Fatal("8 cells should start a drag at 200%")
	}
}

func TestPressOnItemIsNotBlankClick(t *testing.T) {
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 10)
	c := New(host, timer.NewManual())

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, Sender(3))
	if c.OnButtonUp(ButtonLeft, geom.Point{X: 5, Y: 5}, Sender(3)) {
		t.Fatal("press on an item must not run the blank-click policy")
	}
	if host.blankClicks != 0 {
		t.Fatalf("unexpected blank click")
	}
}

func TestAutoScrollConvergesToRange(t *testing.T) {
	restore := perf.EnableForTest()
	defer restore()

	sched := timer.NewManual()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	c := New(host, sched, WithDeltas(0, 3))
	rng := host.ScrollRange().H
	if rng != 80 {
		t.Fatalf("expected range 80, got %d", rng)
	}

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 5, Y: 25}, self)
	if got := host.ScrollPos().Y; got != 3 {
		t.Fatalf("first move should scroll one step, got %d", got)
	}
	if !c.ScrollTimerActive() {
		t.Fatal("expected the repeat timer to be armed")
	}

	sched.Advance(100 * time.Millisecond)
	if got := host.ScrollPos().Y; got != 9 {
		t.Fatalf("expected two more steps after 100ms, got %d", got)
	}

	sched.Advance(5 * time.Second)
	if got := host.ScrollPos().Y; got != rng {
		t.Fatalf("expected to reach range %d, got %d", rng, got)
	}
	if c.ScrollTimerActive() || sched.Pending() != 0 {
		t.Fatal("timer should stop once the range is reached")
	}
	if got := c.MovePoint().Y; got != 25+rng {
		t.Fatalf("move point should follow the realized scroll, got %d", got)
	}
	if b := host.lastApplied(t); b[3] != 25+rng || b[2] != 5 {
		t.Fatalf("unexpected applied bounds %v", b)
	}

	_, counters := perf.Snapshot()
	ticks := int64(0)
	for _, ctr := range counters {
		if ctr.Name == perf.AutoScrollTick {
			ticks = ctr.Value
		}
	}
	if ticks == 0 {
		t.Fatal("expected auto-scroll ticks to be counted")
	}
}

func TestAutoScrollUpAndSideways(t *testing.T) {
	sched := timer.NewManual()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	host.SetScrollPosY(40)
	c := New(host, sched, WithDeltas(2, 2))

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 10}, self)
	c.OnMouseMove(geom.Point{X: -3, Y: -1}, self)
	if got := host.ScrollPos().Y; got != 38 {
		t.Fatalf("expected upward scroll to 38, got %d", got)
	}
	sched.Advance(time.Second)
	if got := host.ScrollPos().Y; got != 0 {
		t.Fatalf("expected to reach the top, got %d", got)
	}
	if c.ScrollTimerActive() {
		t.Fatal("timer should stop at the top")
	}
}

func TestInsideViewportDoesNotArmTimer(t *testing.T) {
	sched := timer.NewManual()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	c := New(host, sched)

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 20, Y: 15}, self)
	if !c.InDrag() {
		t.Fatal("expected a drag")
	}
	if c.ScrollTimerActive() {
		t.Fatal("timer must stay idle while the pointer is inside the viewport")
	}
}

func TestSelectionRectIsOrderIndependent(t *testing.T) {
	tests := []struct {
		name       string
		down, move geom.Point
	}{
		{"down first", geom.Point{X: 10, Y: 10}, geom.Point{X: 100, Y: 80}},
		{"move first", geom.Point{X: 100, Y: 80}, geom.Point{X: 10, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newHost(geom.RectXYWH(0, 0, 200, 200), 10)
			c := New(host, timer.NewManual())

			c.OnButtonDown(ButtonLeft, tt.down, self)
			c.OnMouseMove(tt.move, self)
			if got := host.lastApplied(t); got != [4]int64{10, 100, 10, 80} {
				t.Fatalf("applied %v, want [10 100 10 80]", got)
			}
		})
	}
}

func TestSelectionRectSubtractsScreenOrigin(t *testing.T) {
	host := newHost(geom.RectXYWH(4, 2, 200, 200), 10)
	c := New(host, timer.NewManual())

	c.OnButtonDown(ButtonLeft, geom.Point{X: 14, Y: 12}, self)
	c.OnMouseMove(geom.Point{X: 104, Y: 82}, self)
	if got := host.lastApplied(t); got != [4]int64{10, 100, 10, 80} {
		t.Fatalf("applied %v, want [10 100 10 80]", got)
	}
}

func TestSelectionChangedRaisedOnlyOnChange(t *testing.T) {
	host := newHost(geom.RectXYWH(0, 0, 200, 200), 10)
	c := New(host, timer.NewManual())

	c.OnButtonDown(ButtonLeft, geom.Point{X: 10, Y: 10}, self)
	c.OnMouseMove(geom.Point{X: 20, Y: 20}, self)
	host.changed = true
	c.OnMouseMove(geom.Point{X: 30, Y: 30}, self)

	count := 0
	for _, ev := range host.events {
		if ev == EventSelectionChanged {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one selection-changed event, got %d (%v)", count, host.events)
	}
	if host.invals < 2 {
		t.Fatalf("every recompute must repaint, got %d", host.invals)
	}
}

func TestSenderMismatchIsIgnored(t *testing.T) {
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 10)
	c := New(host, timer.NewManual())

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, Sender(1))
	c.OnMouseMove(geom.Point{X: 30, Y: 15}, Sender(2))
	if c.InDrag() {
		t.Fatal("move from a different sender must not start a drag")
	}

	host.noCapture = true
	c.OnMouseMove(geom.Point{X: 30, Y: 15}, Sender(1))
	if c.InDrag() {
		t.Fatal("move without capture must not start a drag")
	}

	host.noCapture = false
	host.multi = false
	c.OnMouseMove(geom.Point{X: 30, Y: 15}, Sender(1))
	if c.InDrag() {
		t.Fatal("single-select hosts have no frame selection")
	}
}

func TestWindowKillFocusResets(t *testing.T) {
	sched := timer.NewManual()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	c := New(host, sched)

	c.OnButtonDown(ButtonRight, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 5, Y: 30}, self)
	if !c.InDrag() || !c.ScrollTimerActive() {
		t.Fatal("expected an auto-scrolling right-button drag")
	}

	invals := host.invals
	c.OnWindowKillFocus()
	if c.InDrag() || c.ButtonDown() || c.ScrollTimerActive() {
		t.Fatal("focus loss must clear all gesture state and the timer")
	}
	if host.invals != invals+1 {
		t.Fatal("focus loss must repaint")
	}

	pos := host.ScrollPos()
	sched.Advance(time.Second)
	if host.ScrollPos() != pos {
		t.Fatal("no scrolling may happen after focus loss")
	}
}

func TestCloseMakesPendingTickInert(t *testing.T) {
	sched := timer.NewManual()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	c := New(host, sched)

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 5, Y: 30}, self)
	pos := host.ScrollPos()
	c.Close()

	sched.Advance(time.Second)
	if host.ScrollPos() != pos {
		t.Fatal("a closed controller must not scroll")
	}
	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 5, Y: 30}, self)
	if c.InDrag() {
		t.Fatal("a closed controller must ignore input")
	}
}

func TestTeaSchedulerStaleTickAfterRelease(t *testing.T) {
	sched := timer.NewTea()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	c := New(host, sched)

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 5}, self)
	c.OnMouseMove(geom.Point{X: 5, Y: 30}, self)
	cmd := sched.Cmd()
	if cmd == nil {
		t.Fatal("expected a queued tick command")
	}
	msg := cmd()
	if _, ok := msg.(timer.Fired); !ok {
		t.Fatalf("expected timer.Fired, got %T", msg)
	}
	c.OnButtonUp(ButtonLeft, geom.Point{X: 5, Y: 30}, self)

	pos := host.ScrollPos()
	if !sched.Handle(msg) {
		t.Fatal("Fired messages must be consumed")
	}
	if host.ScrollPos() != pos {
		t.Fatal("a tick delivered after release must not scroll")
	}
	if sched.Cmd() != nil {
		t.Fatal("a stale tick must not re-arm")
	}
}

func TestStickyHeaderClampsTop(t *testing.T) {
	sched := timer.NewManual()
	host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
	host.SetScrollPosY(40)
	c := New(host, sched, WithDeltas(0, 1))
	sticky := int32(5)
	c.SetNormalItemTop(&sticky)

	c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 12}, self)
	c.OnMouseMove(geom.Point{X: 5, Y: 4}, self)
	if got := host.ScrollPos().Y; got != 39 {
		t.Fatalf("pointer over the sticky band should scroll up, got %d", got)
	}
	r, ok := c.SelectionRect()
	if !ok || r.Top != sticky {
		t.Fatalf("overlay top should clamp to the sticky boundary, got %v", r)
	}

	var o overlayRecorder
	c.PaintSelectionOverlay(&o)
	if len(o.fills) != 1 || len(o.strokes) != 1 || o.fills[0] != r {
		t.Fatalf("unexpected overlay calls: %+v", o)
	}
}

func TestStickyNudgeWidensTopEdge(t *testing.T) {
	tests := []struct {
		name   string
		nudge  int32
		scale  int
		y      int32
		wantY  int64
		active bool
	}{
		{name: "no band, pointer under header", nudge: 0, scale: 100, y: 6, wantY: 40},
		{name: "no band, pointer on header", nudge: 0, scale: 100, y: 4, wantY: 39, active: true},
		{name: "band reaches pointer", nudge: 4, scale: 100, y: 6, wantY: 39, active: true},
		{name: "band edge", nudge: 4, scale: 100, y: 8, wantY: 39, active: true},
		{name: "past the band", nudge: 4, scale: 100, y: 9, wantY: 40},
		{name: "scaled band", nudge: 2, scale: 200, y: 8, wantY: 39, active: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := timer.NewManual()
			host := newHost(geom.RectXYWH(0, 0, 50, 20), 100)
			host.SetScrollPosY(40)
			c := New(host, sched, WithDeltas(0, 1), WithStickyNudge(tt.nudge), WithScale(tt.scale))
			sticky := int32(5)
			c.SetNormalItemTop(&sticky)

			c.OnButtonDown(ButtonLeft, geom.Point{X: 5, Y: 17}, self)
			c.OnMouseMove(geom.Point{X: 5, Y: tt.y}, self)
			if !c.InDrag() {
				t.Fatal("expected a drag")
			}
			if got := host.ScrollPos().Y; got != tt.wantY {
				t.Fatalf("scroll y = %d, want %d", got, tt.wantY)
			}
			if got := c.ScrollTimerActive(); got != tt.active {
				t.Fatalf("repeat timer active = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestOverlayWithoutBorderAndIdle(t *testing.T) {
	host := newHost(geom.RectXYWH(0, 0, 200, 200), 10)
	c := New(host, timer.NewManual(), WithBorder(false))

	var o overlayRecorder
	c.PaintSelectionOverlay(&o)
	if len(o.fills) != 0 {
		t.Fatal("idle controller must not paint")
	}

	c.OnButtonDown(ButtonLeft, geom.Point{X: 10, Y: 10}, self)
	c.OnMouseMove(geom.Point{X: 20, Y: 15}, self)
	c.PaintSelectionOverlay(&o)
	if len(o.fills) != 1 || len(o.strokes) != 0 {
		t.Fatalf("expected a fill without a border: %+v", o)
	}
	if o.fills[0] != (geom.Rect{Left: 10, Top: 10, Right: 21, Bottom: 16}) {
		t.Fatalf("unexpected overlay rect %v", o.fills[0])
	}
}
