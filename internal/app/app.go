// Package app is the root bubbletea model of the scrollbox demo: a list box
// with an info pane, header and footer.
package app

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/scrollbox/internal/config"
	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/messages"
	"github.com/andyrewlee/scrollbox/internal/perf"
	"github.com/andyrewlee/scrollbox/internal/ui/common"
	"github.com/andyrewlee/scrollbox/internal/ui/layout"
	"github.com/andyrewlee/scrollbox/internal/ui/listbox"
)

const listID = "rows"

// Zone IDs for the clickable header buttons.
const (
	zoneTop    = "header-top"
	zoneEnd    = "header-end"
	zoneFollow = "header-follow"
)

// Options configures the demo content.
type Options struct {
	// Follow appends a row every FollowInterval, like a log tail.
	Follow         bool
	FollowInterval time.Duration
	// NextRow produces the text of appended row n.
	NextRow func(n int) string
}

// followTick carries the follow generation that scheduled it; ticks from an
// earlier generation are dropped.
type followTick struct{ gen int }

// App is the root model.
type App struct {
	cfg    *config.Config
	opts   Options
	layout *layout.Manager
	list   *listbox.Model
	toast  *common.ToastModel
	styles common.Styles
	keys   common.KeyMap
	zone   *zone.Manager

	width    int
	height   int
	showInfo bool
	selected  int
	lastErr   error
	quitting  bool
	followGen int

	copyFn func(string) error

	externalMsgs   chan tea.Msg
	externalSender func(tea.Msg)
	externalOnce   sync.Once
}

// New builds the app around rows.
func New(cfg *config.Config, rows []*listbox.Row, opts Options) *App {
	if opts.FollowInterval <= 0 {
		opts.FollowInterval = time.Second
	}
	if opts.NextRow == nil {
		opts.NextRow = func(n int) string { return fmt.Sprintf("appended row %d", n) }
	}
	a := &App{
		cfg:      cfg,
		opts:     opts,
		layout:   layout.NewManager(),
		list:     listbox.New(listID, cfg),
		toast:    common.NewToastModel(),
		styles:   common.DefaultStyles(),
		keys:     common.DefaultKeyMap(),
		showInfo: true,
		copyFn:   common.CopyToClipboard,
	}
	if cfg != nil {
		a.showInfo = cfg.UI.ShowInfo
	}
	a.list.SetRows(rows)
	a.list.Focus()
	return a
}

// SetZone enables clickable header zones.
func (a *App) SetZone(z *zone.Manager) { a.zone = z }

// List exposes the list box.
func (a *App) List() *listbox.Model { return a.list }

// Init starts the follow ticker when enabled.
func (a *App) Init() tea.Cmd {
	if a.opts.Follow {
		return a.followCmd()
	}
	return nil
}

// followCmd starts a new tick chain, retiring any chain still in flight.
func (a *App) followCmd() tea.Cmd {
	a.followGen++
	return a.nextFollow()
}

func (a *App) nextFollow() tea.Cmd {
	gen := a.followGen
	return common.SafeTick(a.opts.FollowInterval, func(time.Time) tea.Msg { return followTick{gen: gen} })
}

// Update recovers from panics so a bug in one handler doesn't kill the
// terminal. Fatal assertion failures are re-raised.
func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("panic in app.Update: %v\n%s", r, debug.Stack())
			if f, ok := r.(interface{ Fatal() bool }); ok && f.Fatal() {
				panic(r)
			}
			a.lastErr = fmt.Errorf("internal error: %v", r)
			model = a
			cmd = nil
		}
	}()
	return a.update(msg)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer perf.Time("update")()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			a.list.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keys.ToggleInfo):
			a.showInfo = !a.showInfo
			a.resize(a.width, a.height)
			return a, a.saveInfoCmd()
		case key.Matches(msg, a.keys.Clear):
			// Esc also clears the list selection below.
			a.toast.Dismiss()
			a.lastErr = nil
		}

	case tea.MouseClickMsg:
		if cmd, ok := a.handleZoneClick(msg); ok {
			return a, cmd
		}

	case messages.SelectionChanged:
		a.selected = len(msg.Selected)
		return a, nil

	case messages.ScrollChanged, messages.ScrollOffsetChanged, messages.BlankClicked:
		// The header reads the live position; nothing to store.
		return a, nil

	case messages.CopySelection:
		return a, a.copyCmd(msg.Text)

	case messages.Toast:
		_, cmd := a.toast.Update(msg)
		return a, cmd

	case common.ToastDismissed:
		a.toast.Update(msg)
		return a, nil

	case messages.Error:
		if !msg.Logged {
			logging.Error("%s", msg.Error())
		}
		a.lastErr = msg
		return a, a.toast.Show(messages.Toast{Message: msg.Error(), Level: messages.ToastError})

	case messages.ConfigReloaded:
		a.applyConfig(msg.Config)
		return a, a.toast.Show(messages.Toast{Message: "config reloaded", Level: messages.ToastInfo})

	case followTick:
		if !a.opts.Follow || msg.gen != a.followGen {
			return a, nil
		}
		n := len(a.list.Rows())
		a.list.AppendRows(listbox.NewRow(a.opts.NextRow(n)))
		_, cmd := a.list.Update(nil)
		return a, common.SafeBatch(cmd, a.nextFollow())
	}

	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.layout.SetInfoVisible(a.showInfo)
	a.layout.Resize(width, height)
	a.list.SetRect(a.layout.ListRect())
}

func (a *App) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.Paths == nil && a.cfg != nil {
		cfg.Paths = a.cfg.Paths
	}
	a.cfg = cfg
	a.list.Configure(cfg)
	logging.Info("applied reloaded config")
}

// saveInfoCmd persists the info pane visibility. The write runs on a copy
// so a later reload cannot race it.
func (a *App) saveInfoCmd() tea.Cmd {
	if a.cfg == nil || a.cfg.Paths == nil {
		return nil
	}
	a.cfg.UI.ShowInfo = a.showInfo
	snapshot := *a.cfg
	return common.SafeCmd(func() tea.Msg {
		if err := snapshot.Save(); err != nil {
			return messages.Error{Err: err, Context: "save config"}
		}
		logging.Debug("saved show_info=%v to %s", snapshot.UI.ShowInfo, snapshot.Paths.ConfigPath)
		return nil
	})
}

func (a *App) copyCmd(text string) tea.Cmd {
	copyFn := a.copyFn
	return common.SafeCmd(func() tea.Msg {
		if err := copyFn(text); err != nil {
			logging.Warn("copy failed: %v", err)
			return messages.Error{Err: err, Context: "copy"}
		}
		return messages.Toast{Message: "copied to clipboard", Level: messages.ToastSuccess}
	})
}

func (a *App) handleZoneClick(msg tea.MouseClickMsg) (tea.Cmd, bool) {
	if a.zone == nil || msg.Button != tea.MouseLeft {
		return nil, false
	}
	box := a.list.Container()
	switch {
	case a.inZone(zoneTop, msg.X, msg.Y):
		box.HomeUp()
	case a.inZone(zoneEnd, msg.X, msg.Y):
		box.EndDown(a.cfg == nil || a.cfg.Scroll.Animated)
	case a.inZone(zoneFollow, msg.X, msg.Y):
		if cmd := a.toggleFollow(); cmd != nil {
			return cmd, true
		}
	default:
		return nil, false
	}
	_, cmd := a.list.Update(nil)
	return cmd, true
}

// toggleFollow flips tailing. Either way the running tick chain is retired,
// so quick off/on toggles never leave two chains appending.
func (a *App) toggleFollow() tea.Cmd {
	a.opts.Follow = !a.opts.Follow
	if a.opts.Follow {
		return a.followCmd()
	}
	a.followGen++
	return nil
}

func (a *App) inZone(id string, x, y int) bool {
	z := a.zone.Get(id)
	if z == nil || z.IsZero() {
		return false
	}
	return x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY
}
