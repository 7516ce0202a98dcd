package scroll

import (
	"github.com/andyrewlee/scrollbox/internal/assert"
	"github.com/andyrewlee/scrollbox/internal/geom"
)

// DefaultThickness is the width of a vertical track (height of a horizontal
// one) in cells.
const DefaultThickness int32 = 1

// ScrollTrack is the scrollbar model the container drives.
type ScrollTrack interface {
	Pos() int64
	SetPos(v int64)
	Range() int64
	SetRange(v int64)
	IsValid() bool
	Thickness() int32
	SetRect(r geom.Rect)
	Rect() geom.Rect
}

// Track is the default ScrollTrack. A track is valid (shown) exactly when
// its range is positive.
type Track struct {
	pos       int64
	rng       int64
	page      int64
	thickness int32
	rect      geom.Rect
}

// NewTrack returns a hidden track with the given thickness.
func NewTrack(thickness int32) *Track {
	if thickness < 0 {
		thickness = 0
	}
	return &Track{thickness: thickness}
}

func (t *Track) Pos() int64 { return t.pos }

// SetPos clamps v into [0, Range].
func (t *Track) SetPos(v int64) {
	t.pos = geom.Clamp64(v, 0, t.rng)
}

func (t *Track) Range() int64 { return t.rng }

// SetRange updates the range and re-clamps the position. Negative ranges are
// a contract violation and collapse to zero.
func (t *Track) SetRange(v int64) {
	if !assert.That(v >= 0, "scroll range must be non-negative, got %d", v) {
		v = 0
	}
	t.rng = v
	t.pos = geom.Clamp64(t.pos, 0, t.rng)
}

func (t *Track) IsValid() bool { return t.rng > 0 }

func (t *Track) Thickness() int32 { return t.thickness }

func (t *Track) SetRect(r geom.Rect) { t.rect = r.Normalized() }

func (t *Track) Rect() geom.Rect { return t.rect }

// SetPage records the visible extent along the track's axis; it only affects
// thumb sizing.
func (t *Track) SetPage(v int64) {
	if v < 0 {
		v = 0
	}
	t.page = v
}

// Thumb returns the thumb offset and length along a track of length n.
func (t *Track) Thumb(n int32) (offset, length int32) {
	if n <= 0 {
		return 0, 0
	}
	if t.rng <= 0 {
		return 0, n
	}
	total := t.page + t.rng
	length = n
	if total > 0 && t.page > 0 {
		length = int32(int64(n) * t.page / total)
	}
	if length < 1 {
		length = 1
	}
	if length > n {
		length = n
	}
	free := int64(n - length)
	offset = int32(free * t.pos / t.rng)
	return offset, length
}
