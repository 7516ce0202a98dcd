// Package listbox is a scrollable, frame-selectable list of rows for
// bubbletea programs.
package listbox

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollbox/internal/config"
	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/messages"
	"github.com/andyrewlee/scrollbox/internal/scroll"
	"github.com/andyrewlee/scrollbox/internal/selection"
	"github.com/andyrewlee/scrollbox/internal/timer"
	"github.com/andyrewlee/scrollbox/internal/ui/common"
	"github.com/andyrewlee/scrollbox/internal/ui/compositor"
	"github.com/andyrewlee/scrollbox/internal/ui/layout"
)

// Mouse event senders. A press on a row is not a press on the list itself.
const (
	senderList selection.Sender = iota
	senderRow
)

// wheelFactor divides the viewport height into wheel steps.
const wheelFactor = 8

// Option configures a Model.
type Option func(*Model)

// WithScheduler shares a timer scheduler. The model still routes Fired
// messages through it, so only one model may own a scheduler.
func WithScheduler(s *timer.TeaScheduler) Option {
	return func(m *Model) {
		if s != nil {
			m.sched = s
		}
	}
}

// WithMultiSelect turns frame selection of several rows on or off.
func WithMultiSelect(on bool) Option {
	return func(m *Model) { m.multi = on }
}

// WithRowTheme overrides the row styles.
func WithRowTheme(t RowTheme) Option {
	return func(m *Model) { m.theme = t }
}

// Model is the list box: a scroll container of rows driven by a frame
// selection controller.
type Model struct {
	id string

	box     *scroll.Container
	anim    *scroll.Animator
	sel     *selection.Controller
	sched   *timer.TeaScheduler
	canvas  *compositor.Canvas
	painter *compositor.Painter
	keys    common.KeyMap
	theme   RowTheme

	rows     []*Row
	rect     geom.Rect
	focused  bool
	animated bool
	multi    bool

	captured bool
	capture  selection.Sender
	pressed  selection.Button

	anchor   int
	additive bool
	base     map[*Row]bool

	pending []tea.Msg
}

// New creates an empty list box configured from cfg. A nil cfg keeps the
// built-in defaults.
func New(id string, cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		id:       id,
		keys:     common.DefaultKeyMap(),
		theme:    DefaultRowTheme(),
		animated: true,
		multi:    true,
		anchor:   -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sched == nil {
		m.sched = timer.NewTea()
	}

	m.box = scroll.New(layout.Vertical{})
	m.box.EnableScrollBar(true, true)
	m.box.SetListener(&boxListener{m: m})
	m.anim = scroll.NewAnimator(m.sched)
	m.box.SetAnimator(m.anim)
	m.sel = selection.New(m, m.sched)

	m.canvas = compositor.NewCanvas(1, 1)
	m.painter = compositor.NewPainter(m.canvas, paintTheme())

	m.Configure(cfg)
	return m
}

func paintTheme() compositor.Theme {
	t := compositor.DefaultTheme()
	t.Track = compositor.Style{Fg: common.ColorBorder}
	t.Thumb = compositor.Style{Fg: common.ColorPrimary}
	t.Overlay = compositor.Style{Bg: common.ColorHighlight}
	t.OverlayEdge = compositor.Style{Fg: common.ColorPrimary, Bold: true}
	return t
}

// Configure applies scroll and selection settings. Safe to call again after
// a config reload.
func (m *Model) Configure(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s := cfg.Scroll
	m.box.SetScrollUnits(s.UnitX, s.UnitY)
	m.box.SetHoldEnd(s.HoldEnd)
	m.box.SetScrollBarThickness(cfg.Scale(s.ScrollBarThickness))
	m.box.SetScrollBarFloat(s.ScrollBarFloat)
	p := cfg.Scale(s.ScrollBarPadding)
	m.box.SetScrollBarPadding(geom.Insets{Left: p, Top: p, Right: p, Bottom: p})
	m.animated = s.Animated

	sel := cfg.Selection
	m.sel.SetEnabled(sel.Enabled)
	m.sel.Configure(
		selection.WithScale(cfg.UI.DPIScale),
		selection.WithThreshold(sel.Threshold),
		selection.WithInterval(sel.Interval()),
		selection.WithDeltas(sel.DeltaX, sel.DeltaY),
		selection.WithStickyNudge(sel.StickyNudge),
		selection.WithBorder(sel.Border),
	)
	m.updateStickyTop()
}

// ID returns the list identifier carried on emitted messages.
func (m *Model) ID() string { return m.id }

// Init satisfies the bubbletea component shape.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the list keyboard input.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard input and ends any gesture.
func (m *Model) Blur() {
	m.focused = false
	m.killFocus()
}

// Focused reports whether the list has keyboard input.
func (m *Model) Focused() bool { return m.focused }

// Container exposes the scroll container.
func (m *Model) Container() *scroll.Container { return m.box }

// Selection exposes the frame selection controller.
func (m *Model) Selection() *selection.Controller { return m.sel }

// SetRect places the list on screen.
func (m *Model) SetRect(r geom.Rect) {
	r = r.Normalized()
	m.rect = r
	m.canvas.Resize(int(r.Width()), int(r.Height()))
	m.canvas.SetOrigin(r.Origin())
	m.box.SetPosition(r)
	m.updateStickyTop()
}

// Rect returns the list rect in screen cells.
func (m *Model) Rect() geom.Rect { return m.rect }

// SetRows replaces the rows and clears the selection.
func (m *Model) SetRows(rows []*Row) {
	m.rows = append(m.rows[:0:0], rows...)
	m.anchor = -1
	m.base = nil
	for _, r := range m.rows {
		r.theme = &m.theme
		r.selected = false
	}
	m.syncItems()
}

// AppendRows adds rows at the end. With hold-end on, a list scrolled to the
// bottom stays there.
func (m *Model) AppendRows(rows ...*Row) {
	for _, r := range rows {
		r.theme = &m.theme
	}
	m.rows = append(m.rows, rows...)
	m.syncItems()
}

func (m *Model) syncItems() {
	items := make([]scroll.Item, len(m.rows))
	for i, r := range m.rows {
		items[i] = r
	}
	m.box.SetItems(items)
	m.updateStickyTop()
}

// Rows returns the rows in display order.
func (m *Model) Rows() []*Row { return m.rows }

// SelectedIndices returns the indices of selected rows.
func (m *Model) SelectedIndices() []int {
	var out []int
	for i, r := range m.rows {
		if r.selected {
			out = append(out, i)
		}
	}
	return out
}

// SelectedText joins the plain text of the selected rows.
func (m *Model) SelectedText() string {
	var lines []string
	for _, r := range m.rows {
		if r.selected {
			lines = append(lines, r.PlainText())
		}
	}
	return strings.Join(lines, "\n")
}

// SelectAll selects every selectable row.
func (m *Model) SelectAll() {
	if !m.multi {
		return
	}
	changed := false
	for _, r := range m.rows {
		if r.Header || !r.IsVisible() || r.selected {
			continue
		}
		r.selected = true
		changed = true
	}
	if changed {
		m.emitSelection()
	}
}

// ClearSelection deselects every row and reports whether anything changed.
func (m *Model) ClearSelection() bool {
	changed := false
	for _, r := range m.rows {
		if r.selected {
			r.selected = false
			changed = true
		}
	}
	if changed {
		m.emitSelection()
	}
	return changed
}

// Close stops timers owned by the list. Pending ticks become no-ops.
func (m *Model) Close() {
	m.sel.Close()
	m.anim.Close()
	m.box.Close()
}

func (m *Model) emitSelection() {
	m.pending = append(m.pending, messages.SelectionChanged{ListID: m.id, Selected: m.SelectedIndices()})
}

func (m *Model) killFocus() {
	if m.sel.InDrag() || m.sel.ButtonDown() {
		logging.Debug("listbox %s: focus lost during gesture", m.id)
	}
	m.captured = false
	m.sel.OnWindowKillFocus()
}

// flush turns queued notifications and timer ticks into one command.
func (m *Model) flush(cmds ...tea.Cmd) tea.Cmd {
	for _, msg := range m.pending {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	m.pending = m.pending[:0]
	cmds = append(cmds, m.sched.Cmd())
	return common.SafeBatch(cmds...)
}

// boxListener forwards container notifications as messages.
type boxListener struct {
	m *Model
}

func (l *boxListener) ScrollChanged(ev scroll.ScrollEvent) {
	l.m.pending = append(l.m.pending, messages.ScrollChanged{
		ListID:     l.m.id,
		Pos:        ev.Pos,
		Horizontal: ev.Horizontal,
		Vertical:   ev.Vertical,
	})
}

func (l *boxListener) ScrollOffsetChanged(offset geom.Point) {
	l.m.pending = append(l.m.pending, messages.ScrollOffsetChanged{ListID: l.m.id, Offset: offset})
}

// Invalidate is a no-op: View repaints the whole canvas every frame.
func (l *boxListener) Invalidate(geom.Rect) {}
