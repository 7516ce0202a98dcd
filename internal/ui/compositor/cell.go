package compositor

import "github.com/charmbracelet/lipgloss"

// Style holds text styling attributes. Colors use lipgloss notation: "" is
// the terminal default, "0"-"255" indexed, "#rrggbb" true color.
type Style struct {
	Fg        lipgloss.Color
	Bg        lipgloss.Color
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Reverse   bool
	Strike    bool
}

// Lipgloss converts the style for rendering.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Fg != "" {
		ls = ls.Foreground(s.Fg)
	}
	if s.Bg != "" {
		ls = ls.Background(s.Bg)
	}
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Dim {
		ls = ls.Faint(true)
	}
	if s.Italic {
		ls = ls.Italic(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	if s.Reverse {
		ls = ls.Reverse(true)
	}
	if s.Strike {
		ls = ls.Strikethrough(true)
	}
	return ls
}

// Cell is a single character cell.
type Cell struct {
	Rune  rune
	Style Style
	Width int // 1 normal, 2 wide, 0 continuation
}

// DefaultCell returns a blank cell
func DefaultCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

func blankLine(width int, style Style) []Cell {
	line := make([]Cell, width)
	for i := range line {
		line[i] = Cell{Rune: ' ', Width: 1, Style: style}
	}
	return line
}
