package ooo

import "github.com/hupe1980/ooo/internal/perf"

// PerfCountersEnabled reports whether timing counters are compiled in
// (build tag ooo_profile).
const PerfCountersEnabled = perf.Enabled

// PerfCounter returns the accumulated nanoseconds of counter i. It returns
// 0 for unknown counters and when counters are not compiled in.
func PerfCounter(i int) uint64 {
	return perf.Get(perf.Counter(i))
}

// PerfCounterName returns the operation timed by counter i.
func PerfCounterName(i int) string {
	return perf.Counter(i).String()
}

// PerfCounterCount returns the number of counters, 0 when not compiled in.
func PerfCounterCount() int {
	return perf.Len()
}

// ResetPerfCounters zeroes every counter.
func ResetPerfCounters() {
	perf.Reset()
}
