package messages

import (
	"github.com/andyrewlee/scrollbox/internal/config"
	"github.com/andyrewlee/scrollbox/internal/geom"
)

// ScrollChanged is sent after a list box scroll position changes.
// Horizontal/Vertical flag which axis moved.
type ScrollChanged struct {
	ListID     string
	Pos        geom.Point64
	Horizontal bool
	Vertical   bool
}

// ScrollOffsetChanged is sent when the 32-bit render offset moved.
type ScrollOffsetChanged struct {
	ListID string
	Offset geom.Point
}

// SelectionChanged is sent when the set of selected rows changes.
type SelectionChanged struct {
	ListID   string
	Selected []int
}

// BlankClicked is sent when a click landed on empty list area.
type BlankClicked struct {
	ListID string
	Right  bool
}

// CopySelection asks the host to copy the selected rows.
type CopySelection struct {
	ListID string
	Text   string
}

// ConfigReloaded is sent by the config watcher after the file changed.
type ConfigReloaded struct {
	Path   string
	Config *config.Config
}

// ToastLevel represents the severity of a toast notification.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast requests a status-line notification.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error is sent when an error occurs
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
