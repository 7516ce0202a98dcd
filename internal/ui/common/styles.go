package common

import "github.com/charmbracelet/lipgloss"

// Styles contains the text styles used outside the cell canvas.
type Styles struct {
	// Text hierarchy
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style

	// Chrome
	Header lipgloss.Style
	Footer lipgloss.Style
	Info   lipgloss.Style

	// Help bar
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns the default application styles using Tokyo Night palette
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Body: lipgloss.NewStyle().
			Foreground(ColorForeground),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorSurface1),

		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorSurface1),

		Info: lipgloss.NewStyle().
			Foreground(ColorForeground).
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(ColorBorder).
			PaddingLeft(1),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),

		HelpKey: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),

		ToastSuccess: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorSuccess).
			Foreground(ColorBackground),

		ToastError: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorError).
			Foreground(ColorBackground),

		ToastInfo: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorInfo).
			Foreground(ColorBackground),
	}
}

// HelpItem is one key/description pair of the help bar.
type HelpItem struct {
	Key  string
	Desc string
}

// RenderHelpBar renders a help bar with the given key-description pairs
func RenderHelpBar(s Styles, items []HelpItem, width int) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, s.HelpKey.Render(item.Key)+":"+s.HelpDesc.Render(item.Desc))
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
	return s.Help.Width(width).MaxHeight(1).Render(joined)
}

func joinSpaced(parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}
