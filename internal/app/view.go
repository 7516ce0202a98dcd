package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/scrollbox/internal/perf"
	"github.com/andyrewlee/scrollbox/internal/ui/common"
)

// View renders header, list, info pane and footer.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true

	content := a.render()
	if a.zone != nil {
		content = a.zone.Scan(content)
	}
	view.SetContent(content)
	return view
}

func (a *App) render() string {
	if a.quitting || a.width == 0 || a.height == 0 {
		return ""
	}
	info := ""
	if a.layout.ShowInfo() {
		info = a.renderInfo()
	}
	return a.layout.Render(a.renderHeader(), a.list.View(), info, a.renderFooter())
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render("scrollbox")
	top := a.mark(zoneTop, "[top]")
	end := a.mark(zoneEnd, "[end]")
	follow := "[follow]"
	if a.opts.Follow {
		follow = "[following]"
	}
	follow = a.mark(zoneFollow, follow)

	line := strings.Join([]string{title, top, end, follow}, " ")
	return a.styles.Header.Render(ansi.Truncate(line, a.usableWidth(), ""))
}

func (a *App) mark(id, label string) string {
	label = a.styles.HelpKey.Render(label)
	if a.zone == nil {
		return label
	}
	return a.zone.Mark(id, label)
}

func (a *App) renderFooter() string {
	if a.toast.Visible() {
		return a.toast.View()
	}
	if a.lastErr != nil {
		return a.styles.ToastError.Render(ansi.Truncate("! "+a.lastErr.Error(), a.usableWidth(), "…"))
	}
	if a.cfg != nil && !a.cfg.UI.ShowKeymapHints {
		return ""
	}
	return common.RenderHelpBar(a.styles, a.keys.HelpItems(), a.usableWidth())
}

func (a *App) renderInfo() string {
	style := a.styles.Info
	w := a.layout.InfoWidth() - style.GetHorizontalFrameSize()
	h := a.layout.Height() - style.GetVerticalFrameSize()
	if w < 1 || h < 1 {
		return ""
	}
	box := a.list.Container()
	pos, rng := box.ScrollPos(), box.ScrollRange()
	sel := a.list.Selection()

	lines := []string{
		a.styles.Title.Render("Info"),
		"",
		fmt.Sprintf("rows      %d", len(a.list.Rows())),
		fmt.Sprintf("selected  %d", a.selected),
		fmt.Sprintf("pos       %d,%d", pos.X, pos.Y),
		fmt.Sprintf("range     %d,%d", rng.W, rng.H),
		fmt.Sprintf("hold end  %t", box.HoldEnd()),
	}
	switch {
	case sel.InDrag():
		r, _ := sel.SelectionRect()
		lines = append(lines, fmt.Sprintf("drag      %dx%d", r.Width(), r.Height()))
		if sel.ScrollTimerActive() {
			lines = append(lines, a.styles.Muted.Render("auto-scrolling"))
		}
	case sel.ButtonDown():
		lines = append(lines, "drag      pressed")
	default:
		lines = append(lines, "drag      -")
	}
	if a.cfg != nil {
		lines = append(lines,
			"",
			a.styles.Muted.Render("settings"),
			fmt.Sprintf("unit      %d,%d", a.cfg.Scroll.UnitX, a.cfg.Scroll.UnitY),
			fmt.Sprintf("animated  %t", a.cfg.Scroll.Animated),
			fmt.Sprintf("threshold %d", a.cfg.Selection.Threshold),
			fmt.Sprintf("interval  %s", a.cfg.Selection.Interval()),
		)
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, w, "…")
	}
	if len(lines) > h {
		lines = lines[:h]
	}
	// Width and Height exclude the border in lipgloss; padding is inside.
	return style.
		Width(w + style.GetHorizontalPadding()).
		Height(h + style.GetVerticalPadding()).
		Render(strings.Join(lines, "\n"))
}

func (a *App) usableWidth() int {
	if a.width <= 1 {
		return a.width
	}
	return a.width - 1
}
