package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestLayoutModes(t *testing.T) {
	m := NewManager()

	m.Resize(120, 40)
	if m.Mode() != ModeTwoPane {
		t.Fatalf("expected two-pane mode, got %v", m.Mode())
	}
	if !m.ShowInfo() {
		t.Fatalf("expected info pane to be visible")
	}

	m.Resize(50, 40)
	if m.Mode() != ModeOnePane {
		t.Fatalf("expected one-pane mode, got %v", m.Mode())
	}
	if m.ShowInfo() || !m.InfoRect().Empty() {
		t.Fatalf("expected info pane hidden in one-pane mode")
	}
}

func TestLayoutWidthConstraints(t *testing.T) {
	m := NewManager()
	m.Resize(70, 20)

	if m.ListWidth() < m.minListWidth {
		t.Fatalf("list width should be >= minListWidth, got %d", m.ListWidth())
	}
	if got := m.leftGutter + m.ListWidth() + m.gapX + m.InfoWidth(); got != 70 {
		t.Fatalf("panes should fill the width, got %d", got)
	}
	if m.Height() != 18 {
		t.Fatalf("expected header and footer rows reserved, got height %d", m.Height())
	}
	lr, ir := m.ListRect(), m.InfoRect()
	if lr.Top != 1 || lr.Height() != 18 {
		t.Fatalf("unexpected list rect %v", lr)
	}
	if ir.Left != lr.Right+1 {
		t.Fatalf("info pane should start after the gap: list %v info %v", lr, ir)
	}
}

func TestRenderJoinsPanes(t *testing.T) {
	m := NewManager()
	m.Resize(80, 4)

	list := strings.Repeat("L", m.ListWidth()) + "\n" + strings.Repeat("L", m.ListWidth())
	info := strings.Repeat("I", m.InfoWidth()) + "\n" + strings.Repeat("I", m.InfoWidth())
	out := ansi.Strip(m.Render("head", list, info, "foot"))

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], " head") {
		t.Fatalf("header not padded: %q", lines[0])
	}
	if !strings.Contains(lines[1], "L I") {
		t.Fatalf("expected list and info joined with a gap: %q", lines[1])
	}
}

func TestHiddenInfoUsesFullWidth(t *testing.T) {
	m := NewManager()
	m.SetInfoVisible(false)
	m.Resize(120, 40)
	if m.Mode() != ModeOnePane || m.ListWidth() != 119 {
		t.Fatalf("expected one wide pane, got mode %v width %d", m.Mode(), m.ListWidth())
	}

	m.SetInfoVisible(true)
	m.Resize(120, 40)
	if m.Mode() != ModeTwoPane {
		t.Fatalf("expected the info pane back")
	}
}
