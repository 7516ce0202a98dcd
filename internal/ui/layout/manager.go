package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/scrollbox/internal/geom"
)

// Mode determines how many panes are visible
type Mode int

const (
	ModeTwoPane Mode = iota // List + Info
	ModeOnePane             // List only
)

// Manager splits the terminal into the list pane and an optional info pane,
// with a one-row header and footer.
type Manager struct {
	mode     Mode
	hideInfo bool

	totalWidth  int
	totalHeight int

	listWidth    int
	infoWidth    int
	gapX         int
	leftGutter   int
	rightGutter  int
	headerHeight int
	footerHeight int

	// Configuration
	minListWidth int
	minInfoWidth int
	infoWidthPct int
}

// NewManager creates a new layout manager
func NewManager() *Manager {
	return &Manager{
		minListWidth: 40,
		minInfoWidth: 24,
		infoWidthPct: 30,
		gapX:         1,
		leftGutter:   1,
		rightGutter:  0,
		headerHeight: 1,
		footerHeight: 1,
	}
}

// Resize recalculates layout based on new dimensions
func (m *Manager) Resize(width, height int) {
	usableWidth := width - (m.leftGutter + m.rightGutter)
	if usableWidth < 0 {
		usableWidth = 0
	}
	m.totalWidth = usableWidth
	usableHeight := height - m.headerHeight - m.footerHeight
	if usableHeight < 0 {
		usableHeight = 0
	}
	m.totalHeight = usableHeight

	if !m.hideInfo && usableWidth >= m.minListWidth+m.minInfoWidth+m.gapX {
		m.mode = ModeTwoPane
		m.infoWidth = usableWidth * m.infoWidthPct / 100
		if m.infoWidth < m.minInfoWidth {
			m.infoWidth = m.minInfoWidth
		}
		m.listWidth = usableWidth - m.infoWidth - m.gapX
		if m.listWidth < m.minListWidth {
			// Shrink the info pane first
			m.listWidth = m.minListWidth
			m.infoWidth = usableWidth - m.listWidth - m.gapX
		}
		return
	}
	m.mode = ModeOnePane
	m.listWidth = usableWidth
	m.infoWidth = 0
}

// SetInfoVisible allows or suppresses the info pane. Takes effect on the
// next Resize.
func (m *Manager) SetInfoVisible(visible bool) {
	m.hideInfo = !visible
}

// Mode returns the current layout mode
func (m *Manager) Mode() Mode {
	return m.mode
}

// ListWidth returns the list pane width
func (m *Manager) ListWidth() int {
	return m.listWidth
}

// InfoWidth returns the info pane width
func (m *Manager) InfoWidth() int {
	return m.infoWidth
}

// Height returns the pane height (header and footer excluded)
func (m *Manager) Height() int {
	return m.totalHeight
}

// ShowInfo returns whether the info pane should be shown
func (m *Manager) ShowInfo() bool {
	return m.mode == ModeTwoPane
}

// ListRect is the list pane in screen cells.
func (m *Manager) ListRect() geom.Rect {
	return geom.RectXYWH(int32(m.leftGutter), int32(m.headerHeight), int32(m.listWidth), int32(m.totalHeight))
}

// InfoRect is the info pane in screen cells, empty in one-pane mode.
func (m *Manager) InfoRect() geom.Rect {
	if !m.ShowInfo() {
		return geom.Rect{}
	}
	x := m.leftGutter + m.listWidth + m.gapX
	return geom.RectXYWH(int32(x), int32(m.headerHeight), int32(m.infoWidth), int32(m.totalHeight))
}

// Render combines header, panes and footer based on current layout mode
func (m *Manager) Render(header, list, info, footer string) string {
	leftPad := strings.Repeat(" ", m.leftGutter)
	rightPad := strings.Repeat(" ", m.rightGutter)
	padLines := func(view string) string {
		lines := strings.Split(view, "\n")
		for i, line := range lines {
			lines[i] = leftPad + line + rightPad
		}
		return strings.Join(lines, "\n")
	}

	var body string
	switch m.mode {
	case ModeTwoPane:
		if m.gapX > 0 {
			gap := strings.Repeat(" ", m.gapX)
			body = lipgloss.JoinHorizontal(lipgloss.Top, list, gap, info)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, list, info)
		}
	default:
		body = list
	}
	return lipgloss.JoinVertical(lipgloss.Left, padLines(header), padLines(body), padLines(footer))
}
