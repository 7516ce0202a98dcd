package listbox

import (
	"github.com/andyrewlee/scrollbox/internal/perf"
)

// View paints rows, scrollbars, the pinned header and the drag rectangle
// into the list's canvas and renders it.
func (m *Model) View() string {
	defer perf.Time("listbox.view")()

	m.canvas.Fill(m.theme.Normal)
	m.box.Paint(m.painter)

	view := m.box.Viewport()
	if h := m.pinnedHeader(); h != nil {
		r := h.Rect()
		r = r.Offset(-m.box.RenderOffset().X, view.Top-r.Top)
		m.painter.PushClip(view)
		m.painter.PaintItem(h, r)
		m.painter.PopClip()
	}

	m.painter.PushClip(view)
	m.sel.PaintSelectionOverlay(m.painter)
	m.painter.PopClip()

	return m.canvas.Render()
}

// PlainLines returns the last painted frame without styling.
func (m *Model) PlainLines() []string {
	lines := make([]string, m.canvas.Height)
	for y := range lines {
		lines[y] = m.canvas.PlainRow(y)
	}
	return lines
}
