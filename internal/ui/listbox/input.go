package listbox

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/messages"
	"github.com/andyrewlee/scrollbox/internal/scroll"
	"github.com/andyrewlee/scrollbox/internal/selection"
	"github.com/andyrewlee/scrollbox/internal/timer"
	"github.com/andyrewlee/scrollbox/internal/ui/common"
)

// Update handles input, timer ticks and focus changes. Mouse coordinates
// are screen cells.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case timer.Fired:
		m.sched.Handle(msg)
		m.updateStickyTop()
	case tea.MouseClickMsg:
		m.handleClick(msg)
	case tea.MouseMotionMsg:
		m.handleMotion(msg)
	case tea.MouseReleaseMsg:
		m.handleRelease(msg)
	case tea.MouseWheelMsg:
		m.handleWheel(msg)
	case tea.KeyPressMsg:
		if m.focused {
			cmd = m.handleKey(msg)
		}
	case tea.BlurMsg:
		m.killFocus()
	}
	return m, m.flush(cmd)
}

func toButton(b tea.MouseButton) (selection.Button, bool) {
	switch b {
	case tea.MouseLeft:
		return selection.ButtonLeft, true
	case tea.MouseRight:
		return selection.ButtonRight, true
	}
	return 0, false
}

func mousePoint(x, y int) geom.Point {
	return geom.Point{X: int32(x), Y: int32(y)}
}

func (m *Model) handleClick(msg tea.MouseClickMsg) {
	btn, ok := toButton(msg.Button)
	if !ok {
		return
	}
	pt := mousePoint(msg.X, msg.Y)
	if !m.rect.Contains(pt) {
		return
	}
	if btn == selection.ButtonLeft && m.clickTrack(pt) {
		return
	}

	sender := senderList
	if row := m.rowAt(pt); row != nil {
		sender = senderRow
		if btn == selection.ButtonLeft && !row.Header {
			m.clickRow(row, msg.Mod)
		}
	}
	m.captured = true
	m.capture = sender
	m.pressed = btn
	m.additive = msg.Mod&tea.ModCtrl != 0
	m.sel.OnButtonDown(btn, pt, sender)
}

func (m *Model) handleMotion(msg tea.MouseMotionMsg) {
	if !m.captured {
		return
	}
	m.sel.OnMouseMove(mousePoint(msg.X, msg.Y), m.capture)
	m.updateStickyTop()
}

func (m *Model) handleRelease(msg tea.MouseReleaseMsg) {
	if !m.captured {
		return
	}
	// Legacy mouse encodings do not say which button was released.
	m.sel.OnButtonUp(m.pressed, mousePoint(msg.X, msg.Y), m.capture)
	m.captured = false
	m.additive = false
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) {
	if !m.rect.Contains(mousePoint(msg.X, msg.Y)) && !m.captured {
		return
	}
	_, unitY := m.box.ScrollUnits()
	delta := common.WheelDelta(m.box.Viewport().Height(), wheelFactor, unitY)
	switch msg.Button {
	case tea.MouseWheelUp:
		m.box.LineUp(delta, m.animated)
	case tea.MouseWheelDown:
		m.box.LineDown(delta, m.animated)
	case tea.MouseWheelLeft:
		m.box.LineLeft(0)
	case tea.MouseWheelRight:
		m.box.LineRight(0)
	default:
		return
	}
	// Keep the rubber band anchored to content while the wheel scrolls.
	m.sel.OnCheckScrollView()
	m.updateStickyTop()
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.box.LineUp(0, m.animated)
	case key.Matches(msg, m.keys.Down):
		m.box.LineDown(0, m.animated)
	case key.Matches(msg, m.keys.PageUp):
		m.box.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.box.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.box.HomeUp()
	case key.Matches(msg, m.keys.End):
		m.box.EndDown(m.animated)
	case key.Matches(msg, m.keys.Left):
		m.box.LineLeft(0)
	case key.Matches(msg, m.keys.Right):
		m.box.LineRight(0)
	case key.Matches(msg, m.keys.SelectAll):
		m.SelectAll()
	case key.Matches(msg, m.keys.Clear):
		m.anchor = -1
		m.ClearSelection()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelection()
	}
	m.updateStickyTop()
	return nil
}

func (m *Model) copySelection() tea.Cmd {
	text := m.SelectedText()
	if text == "" {
		return nil
	}
	id := m.id
	return func() tea.Msg {
		return messages.CopySelection{ListID: id, Text: text}
	}
}

// clickTrack pages toward a click on a scrollbar track outside its thumb.
func (m *Model) clickTrack(pt geom.Point) bool {
	if t := m.box.VScrollBar(); t != nil && t.IsValid() && t.Rect().Contains(pt) {
		off, length := t.Thumb(t.Rect().Height())
		switch y := pt.Y - t.Rect().Top; {
		case y < off:
			m.box.PageUp()
		case y >= off+length:
			m.box.PageDown()
		}
		m.updateStickyTop()
		return true
	}
	if t := m.box.HScrollBar(); t != nil && t.IsValid() && t.Rect().Contains(pt) {
		off, length := t.Thumb(t.Rect().Width())
		switch x := pt.X - t.Rect().Left; {
		case x < off:
			m.box.PageLeft()
		case x >= off+length:
			m.box.PageRight()
		}
		return true
	}
	return false
}

// rowAt hit-tests pt, letting a pinned header win over the row under it.
func (m *Model) rowAt(pt geom.Point) *Row {
	if h := m.pinnedHeader(); h != nil && pt.Y == m.box.Viewport().Top && m.box.Viewport().Contains(pt) {
		return h
	}
	item := m.box.ItemAt(pt)
	if item == nil {
		return nil
	}
	row, _ := item.(*Row)
	return row
}

func (m *Model) clickRow(row *Row, mod tea.KeyMod) {
	idx := m.indexOf(row)
	if idx < 0 {
		return
	}
	changed := false
	switch {
	case mod&tea.ModCtrl != 0 && m.multi:
		row.selected = !row.selected
		changed = true
		m.anchor = idx
	case mod&tea.ModShift != 0 && m.multi && m.anchor >= 0:
		lo, hi := m.anchor, idx
		if lo > hi {
			lo, hi = hi, lo
		}
		for i, r := range m.rows {
			want := i >= lo && i <= hi && !r.Header && r.IsVisible()
			if r.selected != want {
				r.selected = want
				changed = true
			}
		}
	default:
		for _, r := range m.rows {
			want := r == row
			if r.selected != want {
				r.selected = want
				changed = true
			}
		}
		m.anchor = idx
	}
	if changed {
		m.emitSelection()
	}
}

func (m *Model) indexOf(row *Row) int {
	for i, r := range m.rows {
		if r == row {
			return i
		}
	}
	return -1
}

// pinnedHeader returns the leading header row when it has scrolled above
// the viewport and is drawn pinned to its top.
func (m *Model) pinnedHeader() *Row {
	if len(m.rows) == 0 || !m.rows[0].Header || !m.rows[0].IsVisible() {
		return nil
	}
	h := m.rows[0]
	top := h.Rect().Top - m.box.RenderOffset().Y
	if top >= m.box.Viewport().Top {
		return nil
	}
	return h
}

// updateStickyTop tells the controller where ordinary rows start when a
// header is pinned.
func (m *Model) updateStickyTop() {
	if m.pinnedHeader() == nil {
		m.sel.SetNormalItemTop(nil)
		return
	}
	top := m.box.Viewport().Top + 1
	m.sel.SetNormalItemTop(&top)
}

var _ scroll.Item = (*Row)(nil)
