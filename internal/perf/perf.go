// Package perf collects cheap timings and counters for the layout and
// auto-scroll hot paths. Collection is off unless SCROLLBOX_PROFILE is set.
package perf

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

const defaultIntervalMs = 5000

// Counter names shared across packages.
const (
	ArrangePass    = "layout.arrange_pass"
	VisibilityFlip = "layout.visibility_flip"
	AutoScrollTick = "selection.autoscroll_tick"
)

type stat struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*stat{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(isEnabled())
	logInterval.Store(int64(defaultLogInterval()))
}

// Enabled reports whether profiling is enabled.
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records elapsed time when invoked.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record captures a duration sample for the given name.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &stat{}
		stats[name] = s
	}
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	mu.Unlock()

	maybeLog()
}

// Count increments a named counter by delta.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()

	maybeLog()
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	Flush("")
}

// Flush logs a summary of current stats/counters and resets them.
func Flush(reason string) {
	statList, counterList := Snapshot()
	prefix := "PERF"
	if strings.TrimSpace(reason) != "" {
		prefix = "PERF " + reason
	}
	for _, s := range statList {
		logging.Info("%s %s count=%d avg=%s min=%s max=%s", prefix, s.Name, s.Count, s.Avg, s.Min, s.Max)
	}
	for _, c := range counterList {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

// StatSnapshot captures perf duration stats for diagnostics/tests.
type StatSnapshot struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
}

// CounterSnapshot captures perf counters for diagnostics/tests.
type CounterSnapshot struct {
	Name  string
	Value int64
}

// Snapshot returns current perf stats/counters sorted by name and resets them.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	mu.Lock()
	defer mu.Unlock()

	statsOut := make([]StatSnapshot, 0, len(stats))
	for name, s := range stats {
		if s.count == 0 {
			continue
		}
		statsOut = append(statsOut, StatSnapshot{
			Name:  name,
			Count: s.count,
			Avg:   time.Duration(int64(s.total) / s.count),
			Min:   s.min,
			Max:   s.max,
		})
	}
	counterOut := make([]CounterSnapshot, 0, len(counters))
	for name, v := range counters {
		if v == 0 {
			continue
		}
		counterOut = append(counterOut, CounterSnapshot{Name: name, Value: v})
	}
	stats = map[string]*stat{}
	counters = map[string]int64{}

	sort.Slice(statsOut, func(i, j int) bool { return statsOut[i].Name < statsOut[j].Name })
	sort.Slice(counterOut, func(i, j int) bool { return counterOut[i].Name < counterOut[j].Name })
	return statsOut, counterOut
}

// EnableForTest forces perf collection on (and disables periodic logging).
// It returns a restore function to reset prior settings.
func EnableForTest() func() {
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(true)
	logInterval.Store(0)
	lastLog.Store(0)
	_, _ = Snapshot()
	return func() {
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
		_, _ = Snapshot()
	}
}

func isEnabled() bool {
	raw := strings.TrimSpace(os.Getenv("SCROLLBOX_PROFILE"))
	if raw == "" {
		return false
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}

func defaultLogInterval() time.Duration {
	interval := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("SCROLLBOX_PROFILE_INTERVAL_MS")); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			interval = val
		}
	}
	return time.Duration(interval) * time.Millisecond
}
