// Package selection implements rubber-band frame selection for list-like
// containers, including the auto-scroll loop that runs while a drag rests
// beyond the viewport edge.
package selection

import "github.com/andyrewlee/scrollbox/internal/geom"

// Button identifies the mouse button driving a gesture.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Sender identifies the control that received a mouse event. Hosts choose
// the values; the controller only compares them.
type Sender int

// EventKind is raised through Host.RaiseEvent.
type EventKind int

const (
	EventSelectionChanged EventKind = iota
	EventDragBegin
	EventDragEnd
)

func (k EventKind) String() string {
	switch k {
	case EventSelectionChanged:
		return "selection_changed"
	case EventDragBegin:
		return "drag_begin"
	case EventDragEnd:
		return "drag_end"
	default:
		return "unknown"
	}
}

// Host is the container a Controller serves. Points are screen cells;
// frame selection bounds are content space relative to ScreenOrigin.
type Host interface {
	// OnBlankAreaClicked runs the blank-click policy and reports whether it
	// did anything.
	OnBlankAreaClicked(btn Button) bool
	// ApplyFrameSelection selects the items overlapping the bounds and
	// reports whether the selected set changed.
	ApplyFrameSelection(left, right, top, bottom int64) bool
	RaiseEvent(kind EventKind)
	Invalidate()
	Viewport() geom.Rect
	ScreenOrigin() geom.Point

	ScrollPos() geom.Point64
	ScrollRange() geom.Size64
	LineUp(delta int64, animated bool)
	LineDown(delta int64, animated bool)
	LineLeft(delta int64)
	LineRight(delta int64)

	MultiSelect() bool
	HasCapture(s Sender) bool
	IsSelf(s Sender) bool
}

// OverlayPainter draws the drag rectangle.
type OverlayPainter interface {
	FillRect(r geom.Rect)
	StrokeRect(r geom.Rect)
}
