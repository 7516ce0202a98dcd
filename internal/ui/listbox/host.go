package listbox

import (
	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/messages"
	"github.com/andyrewlee/scrollbox/internal/selection"
)

// OnBlankAreaClicked clears the selection and reports the click.
func (m *Model) OnBlankAreaClicked(btn selection.Button) bool {
	m.pending = append(m.pending, messages.BlankClicked{ListID: m.id, Right: btn == selection.ButtonRight})
	m.anchor = -1
	return m.ClearSelection()
}

// ApplyFrameSelection selects the rows overlapping the bounds, which are
// content cells relative to ScreenOrigin. Row rects are laid out in render
// space, so the virtual offset is added back before comparing. Rows selected
// before an additive drag began stay selected.
func (m *Model) ApplyFrameSelection(left, right, top, bottom int64) bool {
	origin := m.ScreenOrigin()
	virtual := m.box.VirtualOffset()
	ox, oy := int64(origin.X)-virtual.W, int64(origin.Y)-virtual.H
	changed := false
	for _, r := range m.rows {
		want := m.base[r]
		if !r.Header && r.IsVisible() {
			rr := r.Rect()
			hit := int64(rr.Top)-oy <= bottom && int64(rr.Bottom)-oy > top &&
				int64(rr.Left)-ox <= right && int64(rr.Right)-ox > left
			want = want || hit
		}
		if r.selected != want {
			r.selected = want
			changed = true
		}
	}
	return changed
}

// RaiseEvent turns controller events into messages and drag bookkeeping.
func (m *Model) RaiseEvent(kind selection.EventKind) {
	switch kind {
	case selection.EventDragBegin:
		m.base = nil
		if m.additive {
			m.base = make(map[*Row]bool)
			for _, r := range m.rows {
				if r.selected {
					m.base[r] = true
				}
			}
		}
		logging.Debug("listbox %s: drag begin (additive=%v)", m.id, m.additive)
	case selection.EventDragEnd:
		m.base = nil
		logging.Debug("listbox %s: drag end, %d selected", m.id, len(m.SelectedIndices()))
	case selection.EventSelectionChanged:
		m.emitSelection()
	}
}

// Invalidate is a no-op: View repaints the whole canvas every frame.
func (m *Model) Invalidate() {}

// Viewport is the visible content area in screen cells.
func (m *Model) Viewport() geom.Rect { return m.box.Viewport() }

// ScreenOrigin is the top-left cell of the list.
func (m *Model) ScreenOrigin() geom.Point { return m.box.Rect().Origin() }

func (m *Model) ScrollPos() geom.Point64 { return m.box.ScrollPos() }

func (m *Model) ScrollRange() geom.Size64 { return m.box.ScrollRange() }

func (m *Model) LineUp(delta int64, animated bool) { m.box.LineUp(delta, animated) }

func (m *Model) LineDown(delta int64, animated bool) { m.box.LineDown(delta, animated) }

func (m *Model) LineLeft(delta int64) { m.box.LineLeft(delta) }

func (m *Model) LineRight(delta int64) { m.box.LineRight(delta) }

// MultiSelect reports whether frame selection may pick several rows.
func (m *Model) MultiSelect() bool { return m.multi }

// HasCapture reports whether s owns the mouse since the last press.
func (m *Model) HasCapture(s selection.Sender) bool { return m.captured && m.capture == s }

// IsSelf reports whether s is the list background rather than a row.
func (m *Model) IsSelf(s selection.Sender) bool { return s == senderList }

var _ selection.Host = (*Model)(nil)
