package scroll

import (
	"time"

	"github.com/andyrewlee/scrollbox/internal/geom"
)

// LayoutKind identifies the arrangement strategy of a LayoutEngine.
type LayoutKind int

const (
	KindVertical LayoutKind = iota
	KindHorizontal
	// KindTile wraps children into rows; its required size is re-derived
	// against the corrected rectangle before scrollbars are decided.
	KindTile
)

func (k LayoutKind) String() string {
	switch k {
	case KindVertical:
		return "vertical"
	case KindHorizontal:
		return "horizontal"
	case KindTile:
		return "tile"
	default:
		return "unknown"
	}
}

// Item is a child of a scrollable container. Rects are in unscrolled
// container space; painting and hit-testing subtract the render offset.
type Item interface {
	IsVisible() bool
	// Measure returns the desired size given the available space.
	Measure(avail geom.Size) geom.Size
	SetRect(r geom.Rect)
	Rect() geom.Rect
}

// LayoutEngine arranges items inside rect (after deflating by padding) and
// reports the size the box would need, padding included. The required size
// is the children's own extent: stretching a child to fill the rect must not
// inflate it.
type LayoutEngine interface {
	ArrangeChildren(items []Item, rect geom.Rect, padding geom.Insets) geom.Size64
	Kind() LayoutKind
}

// Easing configures the scroll animator's curve.
type Easing struct {
	Duration time.Duration
	Interval time.Duration
	// Accel and Decel are exponents applied to the start and end of the
	// curve. Zero means linear on that side.
	Accel float64
	Decel float64
}

// ScrollAnimator interpolates a value over time.
type ScrollAnimator interface {
	SetStartValue(v int64)
	SetEndValue(v int64)
	StartValue() int64
	EndValue() int64
	IsPlaying() bool
	SetEasing(e Easing)
	SetCallback(fn func(v int64))
	Start()
	Reset()
}

// ScrollEvent describes a scroll position change.
type ScrollEvent struct {
	Pos        geom.Point64
	Horizontal bool
	Vertical   bool
}

// Listener receives container notifications.
type Listener interface {
	ScrollChanged(ev ScrollEvent)
	ScrollOffsetChanged(offset geom.Point)
	Invalidate(r geom.Rect)
}

// Painter renders a container. Rects passed in are in screen space.
type Painter interface {
	PushClip(r geom.Rect)
	PopClip()
	PaintItem(item Item, r geom.Rect)
	PaintTrack(t ScrollTrack, vertical bool)
}
