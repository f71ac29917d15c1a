package ooo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/ooo/internal/column"
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/merge"
	"github.com/hupe1980/ooo/internal/perf"
	"github.com/hupe1980/ooo/internal/resource"
	"github.com/hupe1980/ooo/internal/simd"
	"github.com/hupe1980/ooo/internal/sorter"
)

// Engine runs out-of-order merge operations over caller-owned buffers.
//
// An Engine holds no per-call state and is safe for concurrent use. Calls on
// disjoint buffers may run in parallel; the engine never retains a buffer
// past the call except for the handles it allocates.
type Engine struct {
	sel     simd.Selector
	cols    column.Kernels
	idx     index.Kernels
	scalar  column.Kernels
	logger  *Logger
	metrics MetricsCollector
	rc      *resource.Controller
	debug   bool
}

// New creates an Engine.
func New(optFns ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	if o.pinISA && !o.isa.Valid() {
		return nil, fmt.Errorf("invalid ISA %d", uint8(o.isa))
	}
	if o.memoryLimit < 0 || o.copyBandwidth < 0 || o.maxWorkers < 0 {
		return nil, fmt.Errorf("%w: negative resource limit", ErrInvalidRange)
	}

	sel := simd.Auto()
	if o.pinISA {
		sel = simd.Pinned(o.isa)
	}

	e := &Engine{
		sel:     sel,
		cols:    column.For(sel),
		idx:     index.For(sel),
		scalar:  column.Scalar(),
		logger:  o.logger.WithISA(sel.ISA()),
		metrics: o.metrics,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			MaxWorkers:       int64(o.maxWorkers),
			CopyBytesPerSec:  o.copyBandwidth,
		}),
		debug: o.debugChecks,
	}

	o.logger.LogResolved(context.Background(), sel.ISA(), sel.IsPinned(), simd.IsOverridden())
	return e, nil
}

// ISA returns the instruction set the engine's kernels resolve to.
func (e *Engine) ISA() ISA {
	return e.sel.ISA()
}

// DebugChecks reports whether the engine verifies inputs and kernel output.
func (e *Engine) DebugChecks() bool {
	return e.debug
}

// MemoryUsage returns the bytes held by live handles of this engine.
func (e *Engine) MemoryUsage() int64 {
	return e.rc.MemoryUsage()
}

// SortIndex orders entries ascending by key in place. Runs shorter than
// SortThreshold use a comparison sort, longer runs an LSD radix sort; the
// relative order of equal keys is unspecified.
func (e *Engine) SortIndex(entries []Entry) {
	start := time.Now()
	perf.Measure(perf.SortIndex, func() {
		sorter.Sort(entries)
	})
	e.metrics.RecordSort(len(entries), time.Since(start))
}

// SortKeys orders bare unsigned keys ascending in place.
func (e *Engine) SortKeys(keys []uint64) {
	start := time.Now()
	perf.Measure(perf.SortKeys, func() {
		sorter.SortUint64(keys)
	})
	e.metrics.RecordSort(len(keys), time.Since(start))
}

// SortKeys128 orders signed 128-bit keys ascending in place.
func (e *Engine) SortKeys128(keys []Key128) {
	start := time.Now()
	sorter.Sort128(keys)
	e.metrics.RecordSort(len(keys), time.Since(start))
}

// MergeIndexes merges ascending runs into a newly allocated index. Nil and
// empty runs are allowed, and a run ends at its first entry carrying the
// Sentinel key. Entries keep their Row values; on equal keys the run given
// first wins. The result must be released with Free.
func (e *Engine) MergeIndexes(runs ...[]Entry) (*MergedIndex, error) {
	return e.mergeIndexes(runs, func(dst []Entry) int {
		return merge.KWay(runs, dst)
	})
}

// MergeTwoIndexes merges the existing run with an out-of-order run and tags
// every merged entry with its side, producing the index MergeShuffle and
// MergeVarColumn consume. The inputs are not modified.
func (e *Engine) MergeTwoIndexes(existing, ooo []Entry) (*MergedIndex, error) {
	runs := [][]Entry{existing, ooo}
	return e.mergeIndexes(runs, func(dst []Entry) int {
		return merge.TwoSided(existing, ooo, dst)
	})
}

func (e *Engine) mergeIndexes(runs [][]Entry, mergeFn func(dst []Entry) int) (*MergedIndex, error) {
	ctx := context.Background()
	start := time.Now()
	n := merge.TotalLen(runs)

	m, err := e.mergeIndexesInner(runs, n, mergeFn)

	e.metrics.RecordMerge(len(runs), n, time.Since(start), err)
	e.logger.LogMerge(ctx, len(runs), n, err)
	return m, err
}

func (e *Engine) mergeIndexesInner(runs [][]Entry, n int, mergeFn func(dst []Entry) int) (*MergedIndex, error) {
	if e.debug {
		if err := checkRunsSorted(runs); err != nil {
			return nil, err
		}
	}

	m, err := newMergedIndex(e.rc, n)
	if err != nil {
		return nil, err
	}

	perf.Measure(perf.MergeIndexes, func() {
		m.entries = m.entries[:mergeFn(m.entries)]
	})
	return m, nil
}

// Reshuffle writes dst[i] = src[idx[i].Row] for every slot of idx. Both
// buffers must share a width and dst must hold len(idx) elements.
func (e *Engine) Reshuffle(src, dst Buffer, idx []Entry) error {
	start := time.Now()
	err := e.reshuffle(src, dst, idx)
	e.metrics.RecordReshuffle(src.Width, len(idx), time.Since(start), err)
	e.logger.LogReshuffle(context.Background(), "reshuffle", src.Width, len(idx), err)
	return err
}

func (e *Engine) reshuffle(src, dst Buffer, idx []Entry) error {
	if err := checkWidths(src, dst); err != nil {
		return err
	}
	if dst.Len() < len(idx) {
		return fmt.Errorf("%w: %d slots for %d rows", ErrShortBuffer, dst.Len(), len(idx))
	}
	if e.debug {
		if err := checkRows(idx, src.Len(), -1); err != nil {
			return err
		}
	}

	var err error
	perf.Measure(reshuffleCounter(src.Width), func() {
		err = e.cols.Reshuffle(src, dst, idx)
	})
	if err != nil {
		return translateError(err)
	}

	if e.debug {
		return e.crossCheckFixed("reshuffle", dst, len(idx), func(out Buffer) error {
			return e.scalar.Reshuffle(src, out, idx)
		})
	}
	return nil
}

// MergeShuffle merges the existing column a and the out-of-order column b
// into dst along a two-source merge index in one pass. All buffers must
// share a width and dst must hold len(idx) elements.
func (e *Engine) MergeShuffle(a, b, dst Buffer, idx []Entry) error {
	start := time.Now()
	err := e.mergeShuffle(a, b, dst, idx)
	e.metrics.RecordReshuffle(a.Width, len(idx), time.Since(start), err)
	e.logger.LogReshuffle(context.Background(), "merge shuffle", a.Width, len(idx), err)
	return err
}

func (e *Engine) mergeShuffle(a, b, dst Buffer, idx []Entry) error {
	if err := checkWidths(a, b, dst); err != nil {
		return err
	}
	if dst.Len() < len(idx) {
		return fmt.Errorf("%w: %d slots for %d rows", ErrShortBuffer, dst.Len(), len(idx))
	}
	if e.debug {
		if err := checkRows(idx, a.Len(), b.Len()); err != nil {
			return err
		}
	}

	var err error
	perf.Measure(mergeShuffleCounter(a.Width), func() {
		err = e.cols.MergeShuffle(a, b, dst, idx)
	})
	if err != nil {
		return translateError(err)
	}

	if e.debug {
		return e.crossCheckFixed("merge shuffle", dst, len(idx), func(out Buffer) error {
			return e.scalar.MergeShuffle(a, b, out, idx)
		})
	}
	return nil
}

// MergeVarColumn32 merges two variable-length columns with 32-bit offsets
// along a two-source merge index. Bytes are written to dst.Data starting at
// cursor; dst.Offsets[i] receives the start of slot i and, when dst has
// len(idx)+1 offsets, the last one receives the end. It returns the final
// cursor.
func (e *Engine) MergeVarColumn32(idx []Entry, a, b, dst VarColumn32, cursor int64) (int64, error) {
	start := time.Now()
	end, err := mergeVar(e, idx, a, b, dst, cursor, perf.MergeVar32, e.cols.MergeVar32, e.scalar.MergeVar32)
	e.recordVar(len(idx), end-cursor, start, err)
	return end, err
}

// MergeVarColumn64 is MergeVarColumn32 for 64-bit offsets.
func (e *Engine) MergeVarColumn64(idx []Entry, a, b, dst VarColumn64, cursor int64) (int64, error) {
	start := time.Now()
	end, err := mergeVar(e, idx, a, b, dst, cursor, perf.MergeVar64, e.cols.MergeVar64, e.scalar.MergeVar64)
	e.recordVar(len(idx), end-cursor, start, err)
	return end, err
}

// MergeVarColumnAlloc merges two variable-length columns into a newly
// allocated column sized exactly for the result. The result must be
// released with Free.
func (e *Engine) MergeVarColumnAlloc(idx []Entry, a, b VarColumn64) (*VarColumn, error) {
	start := time.Now()
	v, err := e.mergeVarAlloc(idx, a, b)
	var size int64
	if v != nil {
		size = v.size
	}
	e.recordVar(len(idx), size, start, err)
	return v, err
}

func (e *Engine) mergeVarAlloc(idx []Entry, a, b VarColumn64) (*VarColumn, error) {
	if e.debug {
		if err := checkVarSources(idx, a, b); err != nil {
			return nil, err
		}
	}

	size := column.VarSize64(idx, a, b)
	v, err := newVarColumn(e.rc, len(idx), size)
	if err != nil {
		return nil, err
	}

	perf.Measure(perf.MergeVar64, func() {
		e.cols.MergeVar64(idx, a, b, v.col, 0)
	})
	return v, nil
}

// ReshuffleVarColumn permutes a single variable-length column along idx
// into dst, starting at byte zero. It returns the bytes written.
func (e *Engine) ReshuffleVarColumn(idx []Entry, src, dst VarColumn64) (int64, error) {
	start := time.Now()
	n, err := e.reshuffleVar(idx, src, dst)
	e.recordVar(len(idx), n, start, err)
	return n, err
}

func (e *Engine) reshuffleVar(idx []Entry, src, dst VarColumn64) (int64, error) {
	if e.debug {
		if err := checkVarColumn(src); err != nil {
			return 0, err
		}
		if err := checkRows(idx, src.Rows(), -1); err != nil {
			return 0, err
		}
	}
	if len(dst.Offsets) < len(idx) {
		return 0, fmt.Errorf("%w: %d offsets for %d rows", ErrShortBuffer, len(dst.Offsets), len(idx))
	}

	var size int64
	for _, en := range idx {
		r := en.RowID()
		size += src.Offsets[r+1] - src.Offsets[r]
	}
	if size > int64(len(dst.Data)) {
		return 0, fmt.Errorf("%w: %d bytes for %d", ErrShortBuffer, len(dst.Data), size)
	}

	var n int64
	perf.Measure(perf.ReshuffleVar, func() {
		n = e.cols.ReshuffleVar64(idx, src, dst)
	})
	return n, nil
}

func (e *Engine) recordVar(rows int, bytes int64, start time.Time, err error) {
	if err != nil {
		bytes = 0
	}
	e.metrics.RecordVarMerge(rows, bytes, time.Since(start), err)
	e.logger.LogVarMerge(context.Background(), rows, bytes, err)
}

// BinarySearch looks up value in the ascending slice data[lo:hi+1].
//
// ScanForward returns the first match or, when value is absent, the first
// index holding a greater key (hi+1 if none). ScanBackward returns the last
// match or, when value is absent, the last index holding a smaller key
// (lo-1 if none).
func (e *Engine) BinarySearch(data []int64, value int64, lo, hi int, dir Direction) (int, error) {
	if err := checkRange(len(data), lo, hi); err != nil {
		return 0, err
	}
	return index.Search(data, value, lo, hi, dir), nil
}

// BinarySearchIndex is BinarySearch over the keys of an ascending run.
func (e *Engine) BinarySearchIndex(entries []Entry, value int64, lo, hi int, dir Direction) (int, error) {
	if err := checkRange(len(entries), lo, hi); err != nil {
		return 0, err
	}
	return index.SearchEntries(entries, value, lo, hi, dir), nil
}

// MakeTimestampIndex builds the identity run over data[lo:hi+1]:
// dst[i-lo] = {data[i], i}. With debug checks a key equal to Sentinel is
// rejected.
func (e *Engine) MakeTimestampIndex(data []int64, lo, hi int, dst []Entry) error {
	if err := checkRange(len(data), lo, hi); err != nil {
		return err
	}
	if n := hi - lo + 1; len(dst) < n {
		return fmt.Errorf("%w: %d entries for %d rows", ErrShortBuffer, len(dst), n)
	}
	if e.debug {
		if err := checkKeys(data[lo : hi+1]); err != nil {
			return err
		}
	}
	perf.Measure(perf.MakeIndex, func() {
		e.idx.MakeTimestampIndex(data, lo, hi, dst)
	})
	return nil
}

// ShiftTimestampIndex copies keys from src and renumbers rows from zero.
func (e *Engine) ShiftTimestampIndex(src, dst []Entry) error {
	if len(dst) < len(src) {
		return fmt.Errorf("%w: %d entries for %d", ErrShortBuffer, len(dst), len(src))
	}
	perf.Measure(perf.ShiftIndex, func() {
		e.idx.ShiftTimestampIndex(src, dst)
	})
	return nil
}

// FlattenIndex rewrites every row to its position in entries.
func (e *Engine) FlattenIndex(entries []Entry) {
	perf.Measure(perf.FlattenIndex, func() {
		e.idx.FlattenIndex(entries)
	})
}

// CopyIndex copies entries[lo:hi+1] into dst.
func (e *Engine) CopyIndex(entries []Entry, lo, hi int, dst []Entry) error {
	if err := checkRange(len(entries), lo, hi); err != nil {
		return err
	}
	if n := hi - lo + 1; len(dst) < n {
		return fmt.Errorf("%w: %d entries for %d", ErrShortBuffer, len(dst), n)
	}
	perf.Measure(perf.CopyIndex, func() {
		copy(dst, entries[lo:hi+1])
	})
	return nil
}

// CopyTimestamps extracts the keys of entries[lo:hi+1] into dst.
func (e *Engine) CopyTimestamps(entries []Entry, lo, hi int, dst []int64) error {
	if err := checkRange(len(entries), lo, hi); err != nil {
		return err
	}
	if n := hi - lo + 1; len(dst) < n {
		return fmt.Errorf("%w: %d keys for %d", ErrShortBuffer, len(dst), n)
	}
	perf.Measure(perf.CopyTimestamps, func() {
		e.idx.CopyTimestampRange(entries, lo, hi, dst)
	})
	return nil
}

// ShiftCopy writes dst[i-lo] = src[i] - shift for i in [lo, hi].
func (e *Engine) ShiftCopy(shift int64, src []int64, lo, hi int, dst []int64) error {
	if err := checkRange(len(src), lo, hi); err != nil {
		return err
	}
	if n := hi - lo + 1; len(dst) < n {
		return fmt.Errorf("%w: %d values for %d", ErrShortBuffer, len(dst), n)
	}
	perf.Measure(perf.ShiftCopy, func() {
		e.cols.ShiftCopy(shift, src, lo, hi, dst)
	})
	return nil
}

// SetVarRefs32 points every slot of dst at a null value of a column whose
// values carry a 4-byte length header: dst[i] = offset + 4*i.
func (e *Engine) SetVarRefs32(dst []int64, offset int64) {
	perf.Measure(perf.SetVarRefs32, func() {
		e.cols.SetVarRefs32(dst, offset)
	})
}

// SetVarRefs64 is SetVarRefs32 for 8-byte length headers.
func (e *Engine) SetVarRefs64(dst []int64, offset int64) {
	perf.Measure(perf.SetVarRefs64, func() {
		e.cols.SetVarRefs64(dst, offset)
	})
}

// FillInt64 sets every element of dst to v.
func (e *Engine) FillInt64(dst []int64, v int64) {
	perf.Measure(perf.FillInt64, func() { e.cols.FillInt64(dst, v) })
}

// FillInt32 sets every element of dst to v.
func (e *Engine) FillInt32(dst []int32, v int32) {
	perf.Measure(perf.FillInt32, func() { e.cols.FillInt32(dst, v) })
}

// FillInt16 sets every element of dst to v.
func (e *Engine) FillInt16(dst []int16, v int16) {
	perf.Measure(perf.FillInt16, func() { e.cols.FillInt16(dst, v) })
}

// FillFloat64 sets every element of dst to v.
func (e *Engine) FillFloat64(dst []float64, v float64) {
	perf.Measure(perf.FillFloat64, func() { e.cols.FillFloat64(dst, v) })
}

// FillFloat32 sets every element of dst to v.
func (e *Engine) FillFloat32(dst []float32, v float32) {
	perf.Measure(perf.FillFloat32, func() { e.cols.FillFloat32(dst, v) })
}

// FillBytes sets every byte of dst to v.
func (e *Engine) FillBytes(dst []byte, v byte) {
	e.cols.FillBytes(dst, v)
}

func reshuffleCounter(w Width) perf.Counter {
	switch w {
	case W8:
		return perf.Reshuffle8
	case W16:
		return perf.Reshuffle16
	case W32:
		return perf.Reshuffle32
	case W256:
		return perf.Reshuffle256
	default:
		return perf.Reshuffle64
	}
}

func mergeShuffleCounter(w Width) perf.Counter {
	switch w {
	case W8:
		return perf.MergeShuffle8
	case W16:
		return perf.MergeShuffle16
	case W32:
		return perf.MergeShuffle32
	case W256:
		return perf.MergeShuffle256
	default:
		return perf.MergeShuffle64
	}
}
