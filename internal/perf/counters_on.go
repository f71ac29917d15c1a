//go:build ooo_profile

package perf

import (
	"sync/atomic"
	"time"
)

// Enabled reports whether counters are compiled in.
const Enabled = true

var counters [NumCounters]atomic.Uint64

// Get returns the accumulated nanoseconds of c.
func Get(c Counter) uint64 {
	if !c.Valid() {
		return 0
	}
	return counters[c].Load()
}

// Len returns the number of counters.
func Len() int {
	return NumCounters
}

// Reset zeroes every counter.
func Reset() {
	for i := range counters {
		counters[i].Store(0)
	}
}

// Measure runs fn and adds its wall time to c.
func Measure(c Counter, fn func()) {
	start := time.Now()
	fn()
	if c.Valid() {
		counters[c].Add(uint64(time.Since(start).Nanoseconds())) //nolint:gosec // durations are non-negative
	}
}
