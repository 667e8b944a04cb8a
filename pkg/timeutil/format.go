// Package timeutil provides animation timing and time formatting
// helpers for scrolltoolbar.
//
// Journal timestamps are stored as Unix nanoseconds (int64). This
// package converts them to human-readable strings for the CLI, and
// holds the fixed durations the toolbar animations run with.
package timeutil

import (
	"fmt"
	"time"
)

const (
	// SelectionDuration is how long the selection indicator takes to
	// slide from the old item to the new one.
	SelectionDuration = 200 * time.Millisecond
	// AppearStep is the extra delay added per subitem when the panel
	// plays its staggered entrance.
	AppearStep = 50 * time.Millisecond
	// AppearDuration is the length of a single subitem's entrance.
	AppearDuration = 250 * time.Millisecond
)

// StaggerDelays returns n cumulative delays: step, 2*step, ... n*step.
func StaggerDelays(n int, step time.Duration) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	var acc time.Duration
	for i := range delays {
		acc += step
		delays[i] = acc
	}
	return delays
}

// Progress returns how far along [0,1] an animation of the given
// duration is after elapsed time, having started after delay.
func Progress(elapsed, delay, duration time.Duration) float64 {
	if elapsed <= delay {
		return 0
	}
	if duration <= 0 {
		return 1
	}
	p := float64(elapsed-delay) / float64(duration)
	if p > 1 {
		return 1
	}
	return p
}

// FromNano converts a Unix nanosecond timestamp to time.Time.
func FromNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

// NowNano returns the current time as Unix nanoseconds.
func NowNano() int64 {
	return time.Now().UnixNano()
}

// FormatTimestamp formats a Unix nanosecond timestamp as "HH:MM:SS.mmm".
func FormatTimestamp(ns int64) string {
	return FromNano(ns).Format("15:04:05.000")
}

// FormatTimestampFull formats a Unix nanosecond timestamp with date.
// Format: "2006-01-02 15:04:05.000"
func FormatTimestampFull(ns int64) string {
	return FromNano(ns).Format("2006-01-02 15:04:05.000")
}

// FormatDuration formats a duration to a short human-readable string.
// Examples: "50ms", "1.2s", "2m 15.3s"
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	remaining := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm %.1fs", minutes, remaining)
}
