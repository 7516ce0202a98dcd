package compositor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/scrollbox/internal/geom"
	"github.com/andyrewlee/scrollbox/internal/scroll"
)

func TestCanvasRenderDoubleBuffer(t *testing.T) {
	canvas := NewCanvas(4, 1)
	style := Style{Fg: lipgloss.Color("#ffffff")}
	canvas.Fill(style)
	canvas.DrawText(0, 0, "abcd", style)

	first := canvas.Render()
	firstPlain := ansi.Strip(first)

	canvas.DrawText(0, 0, "wxyz", style)
	_ = canvas.Render()

	if strings.Contains(ansi.Strip(first), "wxyz") {
		t.Fatalf("expected prior render output to remain stable across next render")
	}
	if !strings.Contains(firstPlain, "abcd") {
		t.Fatalf("expected first render to contain original text, got %q", firstPlain)
	}
}

func TestClipStackLimitsDrawing(t *testing.T) {
	canvas := NewCanvas(6, 2)
	canvas.PushClip(geom.RectXYWH(1, 0, 3, 1))
	canvas.PushClip(geom.RectXYWH(2, 0, 10, 10))
	canvas.DrawText(0, 0, "abcdef", Style{})
	canvas.DrawText(0, 1, "ghijkl", Style{})
	canvas.PopClip()
	canvas.PopClip()

	if got := canvas.PlainRow(0); got != "  cd  " {
		t.Fatalf("unexpected clipped row %q", got)
	}
	if got := canvas.PlainRow(1); got != "      " {
		t.Fatalf("row outside the clip should be untouched, got %q", got)
	}
	if canvas.Clip() != canvas.Bounds() {
		t.Fatalf("clip not restored: %v", canvas.Clip())
	}
}

func TestDrawTextWideRunes(t *testing.T) {
	canvas := NewCanvas(5, 1)
	end := canvas.DrawText(0, 0, "a世b", Style{})
	if end != 4 {
		t.Fatalf("expected end column 4, got %d", end)
	}
	if canvas.CellAt(1, 0).Width != 2 || canvas.CellAt(2, 0).Width != 0 {
		t.Fatalf("wide rune should occupy two cells")
	}
	if got := canvas.PlainRow(0); got != "a世b " {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestDrawANSIParsesStyles(t *testing.T) {
	canvas := NewCanvas(8, 1)
	base := Style{Bg: lipgloss.Color("236")}
	canvas.DrawANSI(0, 0, "\x1b[1;31mhi\x1b[0m \x1b[38;2;255;0;128mx\x1b[39m", base)

	h := canvas.CellAt(0, 0)
	if h.Rune != 'h' || !h.Style.Bold || h.Style.Fg != "1" || h.Style.Bg != "236" {
		t.Fatalf("unexpected styled cell %+v", h)
	}
	if sp := canvas.CellAt(2, 0); sp.Style != base {
		t.Fatalf("reset should return to the base style, got %+v", sp.Style)
	}
	if x := canvas.CellAt(3, 0); x.Rune != 'x' || x.Style.Fg != "#ff0080" {
		t.Fatalf("unexpected true-color cell %+v", x)
	}
}

func TestDrawBorder(t *testing.T) {
	canvas := NewCanvas(4, 3)
	canvas.DrawBorder(geom.RectXYWH(0, 0, 4, 3), Style{}, false)
	want := []string{"┌──┐", "│  │", "└──┘"}
	for y, w := range want {
		if got := canvas.PlainRow(y); got != w {
			t.Fatalf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestPainterTrackAndOverlay(t *testing.T) {
	canvas := NewCanvas(3, 4)
	p := NewPainter(canvas, DefaultTheme())

	tr := scroll.NewTrack(1)
	tr.SetRange(4)
	tr.SetPage(4)
	tr.SetRect(geom.RectXYWH(2, 0, 1, 4))
	p.PaintTrack(tr, true)

	if canvas.CellAt(2, 0).Rune != '┃' || canvas.CellAt(2, 1).Rune != '┃' {
		t.Fatalf("expected the thumb in the top half")
	}
	if canvas.CellAt(2, 3).Rune != '│' {
		t.Fatalf("expected track below the thumb")
	}

	canvas.DrawText(0, 1, "ab", Style{})
	p.FillRect(geom.RectXYWH(0, 1, 2, 1))
	if c := canvas.CellAt(1, 1); c.Rune != 'b' || !c.Style.Reverse {
		t.Fatalf("overlay should tint and keep text, got %+v", c)
	}
}

func TestCanvasOriginTranslatesDrawing(t *testing.T) {
	canvas := NewCanvas(4, 2)
	canvas.SetOrigin(geom.Point{X: 10, Y: 5})
	if canvas.Bounds() != geom.RectXYWH(10, 5, 4, 2) {
		t.Fatalf("unexpected bounds %v", canvas.Bounds())
	}

	canvas.DrawText(9, 6, "xabcdef", Style{})
	if got := canvas.PlainRow(1); got != "abcd" {
		t.Fatalf("unexpected translated row %q", got)
	}
	canvas.PaintRect(geom.RectXYWH(12, 5, 10, 1), Style{Bold: true})
	if !canvas.CellAt(12, 5).Style.Bold || canvas.CellAt(11, 5).Style.Bold {
		t.Fatalf("fill should cover columns 12 and up only")
	}
	if c := canvas.CellAt(0, 0); c != DefaultCell() {
		t.Fatalf("out of bounds lookup should be blank, got %+v", c)
	}
}
