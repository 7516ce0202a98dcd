package geom

import (
	"fmt"
	"math"
)

// Point64 is a position in content (scroll) space.
type Point64 struct {
	X int64
	Y int64
}

// Add returns p translated by s.
func (p Point64) Add(s Size64) Point64 {
	return Point64{X: p.X + s.W, Y: p.Y + s.H}
}

// Sub returns the per-axis difference p - q.
func (p Point64) Sub(q Point64) Size64 {
	return Size64{W: p.X - q.X, H: p.Y - q.Y}
}

func (p Point64) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size64 is a 2D extent in content space. Used for scroll ranges and the
// virtual offset.
type Size64 struct {
	W int64
	H int64
}

// NonNegative clamps both axes to >= 0.
func (s Size64) NonNegative() Size64 {
	if s.W < 0 {
		s.W = 0
	}
	if s.H < 0 {
		s.H = 0
	}
	return s
}

func (s Size64) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Point is a screen-space position.
type Point struct {
	X int32
	Y int32
}

// To64 widens p into content space.
func (p Point) To64() Point64 {
	return Point64{X: int64(p.X), Y: int64(p.Y)}
}

// Size is a screen-space extent.
type Size struct {
	W int32
	H int32
}

// Insets is a per-edge padding.
type Insets struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Horizontal returns Left+Right.
func (in Insets) Horizontal() int32 { return in.Left + in.Right }

// Vertical returns Top+Bottom.
func (in Insets) Vertical() int32 { return in.Top + in.Bottom }

// Rect is a screen-space rectangle with exclusive Right/Bottom edges.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// RectXYWH builds a rect from an origin and a size.
func RectXYWH(x, y, w, h int32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width never reports a negative value.
func (r Rect) Width() int32 {
	if r.Right < r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height never reports a negative value.
func (r Rect) Height() int32 {
	if r.Bottom < r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// Size returns the rect's extent.
func (r Rect) Size() Size {
	return Size{W: r.Width(), H: r.Height()}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Normalized collapses inverted edges so Width/Height are consistent.
func (r Rect) Normalized() Rect {
	if r.Right < r.Left {
		r.Right = r.Left
	}
	if r.Bottom < r.Top {
		r.Bottom = r.Top
	}
	return r
}

// Deflate shrinks the rect by in. The result is never inverted.
func (r Rect) Deflate(in Insets) Rect {
	out := Rect{
		Left:   r.Left + in.Left,
		Top:    r.Top + in.Top,
		Right:  r.Right - in.Right,
		Bottom: r.Bottom - in.Bottom,
	}
	return out.Normalized()
}

// Offset translates the rect by (dx, dy).
func (r Rect) Offset(dx, dy int32) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Contains reports whether pt lies inside the rect.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.Left && pt.X < r.Right && pt.Y >= r.Top && pt.Y < r.Bottom
}

// Intersect returns the overlap of r and o, or an empty rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max32(r.Left, o.Left),
		Top:    max32(r.Top, o.Top),
		Right:  min32(r.Right, o.Right),
		Bottom: min32(r.Bottom, o.Bottom),
	}
	if out.Right <= out.Left || out.Bottom <= out.Top {
		return Rect{}
	}
	return out
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}

// Clamp64 limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp64(v, lo, hi int64) int64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ToScreen is the only narrowing from content space into screen space:
// RenderOffset = Truncate32(pos - virtual). ok is false when the difference
// does not fit in int32, in which case the result saturates.
func ToScreen(pos Point64, virtual Size64) (pt Point, ok bool) {
	x, okX := narrow(pos.X - virtual.W)
	y, okY := narrow(pos.Y - virtual.H)
	return Point{X: x, Y: y}, okX && okY
}

func narrow(v int64) (int32, bool) {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32, false
	case v < math.MinInt32:
		return math.MinInt32, false
	}
	return int32(v), true
}

// Saturate32 narrows v into int32, saturating at the bounds.
func Saturate32(v int64) int32 {
	out, _ := narrow(v)
	return out
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
