package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// SetMsgSender installs the program's Send for messages produced off the UI
// goroutine (config reloads).
func (a *App) SetMsgSender(send func(tea.Msg)) {
	if send == nil {
		return
	}
	a.externalOnce.Do(func() {
		a.externalMsgs = make(chan tea.Msg, 64)
		a.externalSender = send
		go a.drainExternalMsgs()
	})
}

// Post queues msg for delivery to the program without blocking the caller.
func (a *App) Post(msg tea.Msg) {
	if msg == nil || a.externalMsgs == nil {
		return
	}
	select {
	case a.externalMsgs <- msg:
	default:
		logging.Warn("external message queue full; dropping %T", msg)
	}
}

func (a *App) drainExternalMsgs() {
	for msg := range a.externalMsgs {
		a.externalSender(msg)
	}
}
