package compositor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DrawANSI draws a styled string (for example lipgloss output) at (x, y).
// SGR sequences update the cell style on top of base; other control
// sequences are dropped. Lines after the first continue on the next row.
func (c *Canvas) DrawANSI(x, y int, content string, base Style) {
	if content == "" {
		return
	}

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	for lineIdx, line := range strings.Split(content, "\n") {
		row := y + lineIdx
		if row >= int(c.origin.Y)+c.Height {
			return
		}
		style := base
		var state byte
		col := x
		for len(line) > 0 {
			seq, width, n, newState := ansi.DecodeSequence(line, state, p)
			if n == 0 {
				break
			}
			if width == 0 {
				// Control sequence - check for SGR
				cmd := ansi.Cmd(p.Command())
				if cmd.Final() == 'm' {
					style = applySGR(style, base, p.Params())
				}
			} else {
				r := []rune(seq)
				if len(r) > 0 {
					c.SetCell(col, row, Cell{Rune: r[0], Width: width, Style: style})
					for i := 1; i < width; i++ {
						c.SetCell(col+i, row, Cell{Width: 0, Style: style})
					}
				}
				col += width
			}
			line = line[n:]
			state = newState
		}
	}
}

// applySGR updates the style based on SGR parameters. A reset returns to
// base rather than the terminal default.
func applySGR(style, base Style, params ansi.Params) Style {
	if len(params) == 0 {
		return base
	}

	for i := 0; i < len(params); i++ {
		p, _, _ := params.Param(i, 0)
		switch {
		case p == 0:
			style = base
		case p == 1:
			style.Bold = true
		case p == 2:
			style.Dim = true
		case p == 3:
			style.Italic = true
		case p == 4:
			style.Underline = true
		case p == 7:
			style.Reverse = true
		case p == 9:
			style.Strike = true
		case p == 22:
			style.Bold, style.Dim = false, false
		case p == 23:
			style.Italic = false
		case p == 24:
			style.Underline = false
		case p == 27:
			style.Reverse = false
		case p == 29:
			style.Strike = false
		case p >= 30 && p <= 37:
			style.Fg = indexed(p - 30)
		case p == 38:
			if c, skip, ok := extendedColor(params, i); ok {
				style.Fg = c
				i += skip
			}
		case p == 39:
			style.Fg = base.Fg
		case p >= 40 && p <= 47:
			style.Bg = indexed(p - 40)
		case p == 48:
			if c, skip, ok := extendedColor(params, i); ok {
				style.Bg = c
				i += skip
			}
		case p == 49:
			style.Bg = base.Bg
		case p >= 90 && p <= 97:
			style.Fg = indexed(p - 90 + 8)
		case p >= 100 && p <= 107:
			style.Bg = indexed(p - 100 + 8)
		}
	}
	return style
}

// extendedColor decodes "38;5;n" and "38;2;r;g;b" starting at params[i].
func extendedColor(params ansi.Params, i int) (lipgloss.Color, int, bool) {
	if i+2 >= len(params) {
		return "", 0, false
	}
	mode, _, _ := params.Param(i+1, 0)
	switch {
	case mode == 5:
		idx, _, _ := params.Param(i+2, 0)
		return indexed(idx), 2, true
	case mode == 2 && i+4 < len(params):
		rv, _, _ := params.Param(i+2, 0)
		gv, _, _ := params.Param(i+3, 0)
		bv, _, _ := params.Param(i+4, 0)
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(rv), uint8(gv), uint8(bv))), 4, true
	}
	return "", 0, false
}

func indexed(n int) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(n))
}
