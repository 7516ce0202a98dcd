package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/andyrewlee/scrollbox/internal/messages"
)

// ToastModel shows one transient status message in the footer.
type ToastModel struct {
	current   *messages.Toast
	showUntil time.Time
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates a new toast model
func NewToastModel() *ToastModel {
	return &ToastModel{
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// ToastDismissed is sent when a toast should be dismissed
type ToastDismissed struct{}

// Show displays a toast notification
func (m *ToastModel) Show(toast messages.Toast) tea.Cmd {
	duration := 3 * time.Second
	if toast.Level == messages.ToastError {
		duration = 5 * time.Second
	}
	m.current = &toast
	m.showUntil = m.now().Add(duration)

	return SafeTick(duration, func(time.Time) tea.Msg {
		return ToastDismissed{}
	})
}

// Update handles messages
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.Toast:
		return m, m.Show(msg)
	case ToastDismissed:
		if !m.now().Before(m.showUntil) {
			m.current = nil
		}
	}
	return m, nil
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}

	var style lipgloss.Style
	icon := "i "
	switch m.current.Level {
	case messages.ToastSuccess:
		style = m.styles.ToastSuccess
		icon = "✓ "
	case messages.ToastError:
		style = m.styles.ToastError
		icon = "! "
	default:
		style = m.styles.ToastInfo
	}
	return style.Render(icon + m.current.Message)
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.now().Before(m.showUntil)
}

// Dismiss immediately hides the toast
func (m *ToastModel) Dismiss() {
	m.current = nil
}
