package scroll

import (
	"math"
	"time"

	"github.com/andyrewlee/scrollbox/internal/timer"
)

// WheelEasing is the fixed policy for animated line scrolling: a short
// decelerating curve with no acceleration phase.
var WheelEasing = Easing{
	Duration: 200 * time.Millisecond,
	Interval: 16 * time.Millisecond,
	Accel:    0,
	Decel:    1,
}

// Animator is a ScrollAnimator driven by a timer.Scheduler.
type Animator struct {
	sched timer.Scheduler
	tok   *timer.Token

	start   int64
	end     int64
	current int64
	elapsed time.Duration
	easing  Easing
	playing bool
	cb      func(int64)
}

// NewAnimator returns an idle animator using WheelEasing.
func NewAnimator(sched timer.Scheduler) *Animator {
	return &Animator{
		sched:  sched,
		tok:    sched.NewToken(),
		easing: WheelEasing,
	}
}

func (a *Animator) SetStartValue(v int64) {
	a.start = v
	a.current = v
}

// SetEndValue moves the target. While playing, the curve is rebased on the
// current value so the animation continues toward the new target without
// restarting its timer.
func (a *Animator) SetEndValue(v int64) {
	if a.playing {
		a.start = a.current
		a.elapsed = 0
	}
	a.end = v
}

func (a *Animator) StartValue() int64 { return a.start }

func (a *Animator) EndValue() int64 { return a.end }

func (a *Animator) IsPlaying() bool { return a.playing }

func (a *Animator) SetEasing(e Easing) {
	if e.Duration <= 0 {
		e.Duration = WheelEasing.Duration
	}
	if e.Interval <= 0 {
		e.Interval = WheelEasing.Interval
	}
	a.easing = e
}

func (a *Animator) SetCallback(fn func(v int64)) { a.cb = fn }

// Start begins playing from the start value.
func (a *Animator) Start() {
	a.elapsed = 0
	a.current = a.start
	a.playing = true
	a.sched.Schedule(a.tok, a.step, a.easing.Interval, timer.RepeatForever)
}

// Reset stops playback without emitting a final value.
func (a *Animator) Reset() {
	a.playing = false
	a.elapsed = 0
	a.sched.Cancel(a.tok)
}

// Close releases the timer token; the animator cannot be restarted.
func (a *Animator) Close() {
	a.playing = false
	a.sched.Close(a.tok)
}

func (a *Animator) step() {
	if !a.playing {
		return
	}
	a.elapsed += a.easing.Interval
	t := float64(a.elapsed) / float64(a.easing.Duration)
	if t > 1 {
		t = 1
	}
	v := a.start + int64(math.Round(float64(a.end-a.start)*a.ease(t)))
	if t >= 1 {
		v = a.end
		a.Reset()
	}
	a.current = v
	if a.cb != nil {
		a.cb(v)
	}
}

func (a *Animator) ease(t float64) float64 {
	in := 1 + a.easing.Accel
	out := 1 + a.easing.Decel
	switch {
	case a.easing.Accel == 0 && a.easing.Decel == 0:
		return t
	case a.easing.Accel == 0:
		return 1 - math.Pow(1-t, out)
	case a.easing.Decel == 0:
		return math.Pow(t, in)
	}
	if t < 0.5 {
		return math.Pow(2*t, in) / 2
	}
	return 1 - math.Pow(2*(1-t), out)/2
}
