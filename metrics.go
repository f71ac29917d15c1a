package ooo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSort is called after each index or key sort.
	RecordSort(n int, duration time.Duration)

	// RecordMerge is called after each index merge. runs counts the inputs,
	// n the merged entries.
	RecordMerge(runs, n int, duration time.Duration, err error)

	// RecordReshuffle is called after each fixed-width reshuffle or
	// merge-shuffle.
	RecordReshuffle(width Width, rows int, duration time.Duration, err error)

	// RecordVarMerge is called after each variable-length merge or reshuffle.
	RecordVarMerge(rows int, bytes int64, duration time.Duration, err error)

	// RecordColumnJobs is called after each MergeColumns call.
	RecordColumnJobs(jobs, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSort(int, time.Duration)                    {}
func (NoopMetricsCollector) RecordMerge(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordReshuffle(Width, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordVarMerge(int, int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordColumnJobs(int, int, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SortCount        atomic.Int64
	SortedEntries    atomic.Int64
	SortTotalNanos   atomic.Int64
	MergeCount       atomic.Int64
	MergeErrors      atomic.Int64
	MergedEntries    atomic.Int64
	MergeTotalNanos  atomic.Int64
	ReshuffleCount   atomic.Int64
	ReshuffleErrors  atomic.Int64
	ReshuffledRows   atomic.Int64
	VarMergeCount    atomic.Int64
	VarMergeErrors   atomic.Int64
	VarMergeBytes    atomic.Int64
	ColumnJobBatches atomic.Int64
	ColumnJobs       atomic.Int64
	ColumnJobsFailed atomic.Int64
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(n int, duration time.Duration) {
	b.SortCount.Add(1)
	b.SortedEntries.Add(int64(n))
	b.SortTotalNanos.Add(duration.Nanoseconds())
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(_, n int, duration time.Duration, err error) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MergeErrors.Add(1)
		return
	}
	b.MergedEntries.Add(int64(n))
}

// RecordReshuffle implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReshuffle(_ Width, rows int, _ time.Duration, err error) {
	b.ReshuffleCount.Add(1)
	if err != nil {
		b.ReshuffleErrors.Add(1)
		return
	}
	b.ReshuffledRows.Add(int64(rows))
}

// RecordVarMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVarMerge(_ int, bytes int64, _ time.Duration, err error) {
	b.VarMergeCount.Add(1)
	if err != nil {
		b.VarMergeErrors.Add(1)
		return
	}
	b.VarMergeBytes.Add(bytes)
}

// RecordColumnJobs implements MetricsCollector.
func (b *BasicMetricsCollector) RecordColumnJobs(jobs, failed int, _ time.Duration) {
	b.ColumnJobBatches.Add(1)
	b.ColumnJobs.Add(int64(jobs))
	b.ColumnJobsFailed.Add(int64(failed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SortCount:        b.SortCount.Load(),
		SortedEntries:    b.SortedEntries.Load(),
		SortAvgNanos:     avg(b.SortTotalNanos.Load(), b.SortCount.Load()),
		MergeCount:       b.MergeCount.Load(),
		MergeErrors:      b.MergeErrors.Load(),
		MergedEntries:    b.MergedEntries.Load(),
		MergeAvgNanos:    avg(b.MergeTotalNanos.Load(), b.MergeCount.Load()),
		ReshuffleCount:   b.ReshuffleCount.Load(),
		ReshuffleErrors:  b.ReshuffleErrors.Load(),
		ReshuffledRows:   b.ReshuffledRows.Load(),
		VarMergeCount:    b.VarMergeCount.Load(),
		VarMergeErrors:   b.VarMergeErrors.Load(),
		VarMergeBytes:    b.VarMergeBytes.Load(),
		ColumnJobBatches: b.ColumnJobBatches.Load(),
		ColumnJobs:       b.ColumnJobs.Load(),
		ColumnJobsFailed: b.ColumnJobsFailed.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SortCount        int64
	SortedEntries    int64
	SortAvgNanos     int64
	MergeCount       int64
	MergeErrors      int64
	MergedEntries    int64
	MergeAvgNanos    int64
	ReshuffleCount   int64
	ReshuffleErrors  int64
	ReshuffledRows   int64
	VarMergeCount    int64
	VarMergeErrors   int64
	VarMergeBytes    int64
	ColumnJobBatches int64
	ColumnJobs       int64
	ColumnJobsFailed int64
}
