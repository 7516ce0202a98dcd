package common

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/scrollbox/internal/messages"
)

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		visible int32
		factor  int
		unit    int64
		want    int64
	}{
		{visible: 40, factor: 4, unit: 1, want: 10},
		{visible: 16, factor: 8, unit: 3, want: 6},
		{visible: 3, factor: 4, unit: 1, want: 1},
		{visible: 0, factor: 4, unit: 2, want: 2},
		{visible: 40, factor: 0, unit: 1, want: 1},
		{visible: 40, factor: 4, unit: 0, want: 10},
	}
	for _, tt := range tests {
		if got := WheelDelta(tt.visible, tt.factor, tt.unit); got != tt.want {
			t.Fatalf("WheelDelta(%d, %d, %d) = %d, want %d", tt.visible, tt.factor, tt.unit, got, tt.want)
		}
	}
}

func TestSafeCmdRecoversPanic(t *testing.T) {
	cmd := SafeCmd(func() tea.Msg { panic("boom") })
	msg := cmd()
	errMsg, ok := msg.(messages.Error)
	if !ok {
		t.Fatalf("expected messages.Error, got %T", msg)
	}
	if !errMsg.Logged || !strings.Contains(errMsg.Error(), "boom") {
		t.Fatalf("unexpected error message %+v", errMsg)
	}
	if SafeBatch(nil, nil) != nil {
		t.Fatal("batch of nil commands should be nil")
	}
}

type fatalPanic struct{}

func (fatalPanic) Fatal() bool { return true }

func TestSafeCmdReraisesFatal(t *testing.T) {
	defer func() {
		if _, ok := recover().(fatalPanic); !ok {
			t.Fatal("expected the fatal panic to propagate")
		}
	}()
	SafeCmd(func() tea.Msg { panic(fatalPanic{}) })()
	t.Fatal("SafeCmd swallowed a fatal panic")
}

func TestCopyToClipboard(t *testing.T) {
	var got string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}
	defer func() { clipboardWrite = orig }()

	if err := CopyToClipboard("  \n"); !errors.Is(err, ErrNothingToCopy) {
		t.Fatalf("expected ErrNothingToCopy, got %v", err)
	}
	if err := CopyToClipboard("row 01\nrow 02"); err != nil {
		t.Fatalf("CopyToClipboard() error = %v", err)
	}
	if got != "row 01\nrow 02" {
		t.Fatalf("clipboard got %q", got)
	}
}

func TestKeyMapHelpItems(t *testing.T) {
	km := DefaultKeyMap()
	km.ToggleInfo.SetEnabled(false)

	items := km.HelpItems()
	for _, item := range items {
		if item.Desc == "info" {
			t.Fatal("disabled bindings should not be listed")
		}
	}
	if len(items) == 0 || items[0].Key != "↑/k" {
		t.Fatalf("unexpected help items %+v", items)
	}
	if !key.Matches(tea.KeyPressMsg{Code: 'j', Text: "j"}, km.Down) {
		t.Fatal("j should move down")
	}
}

func TestRenderHelpBar(t *testing.T) {
	out := ansi.Strip(RenderHelpBar(DefaultStyles(), []HelpItem{{Key: "q", Desc: "quit"}, {Key: "y", Desc: "copy"}}, 40))
	if !strings.Contains(out, "q:quit  y:copy") {
		t.Fatalf("unexpected help bar %q", out)
	}
}

func TestToastLifecycle(t *testing.T) {
	now := time.Unix(100, 0)
	m := NewToastModel()
	m.now = func() time.Time { return now }

	if m.View() != "" {
		t.Fatal("no toast should render initially")
	}
	if cmd := m.Show(messages.Toast{Message: "copied", Level: messages.ToastSuccess}); cmd == nil {
		t.Fatal("Show should schedule a dismissal")
	}
	if !strings.Contains(ansi.Strip(m.View()), "copied") {
		t.Fatalf("expected toast text, got %q", m.View())
	}

	// An early dismissal from a previous toast must not hide this one.
	m.Update(ToastDismissed{})
	if !m.Visible() {
		t.Fatal("toast dismissed too early")
	}

	now = now.Add(3 * time.Second)
	m.Update(ToastDismissed{})
	if m.Visible() || m.View() != "" {
		t.Fatal("toast should be gone after its duration")
	}
}
