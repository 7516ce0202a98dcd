package common

import "charm.land/bubbles/v2/key"

// KeyMap holds the list box key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Left       key.Binding
	Right      key.Binding
	SelectAll  key.Binding
	Copy       key.Binding
	Clear      key.Binding
	ToggleInfo key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f", "space"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Copy:       key.NewBinding(key.WithKeys("y", "ctrl+c"), key.WithHelp("y", "copy")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		ToggleInfo: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+q"), key.WithHelp("q", "quit")),
	}
}

// HelpItems lists the bindings shown in the footer.
func (k KeyMap) HelpItems() []HelpItem {
	bindings := []key.Binding{k.Up, k.Down, k.PageDown, k.End, k.SelectAll, k.Copy, k.ToggleInfo, k.Quit}
	items := make([]HelpItem, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		items = append(items, HelpItem{Key: h.Key, Desc: h.Desc})
	}
	return items
}
