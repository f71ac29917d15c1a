package ooo

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/hupe1980/ooo/internal/column"
	"github.com/hupe1980/ooo/internal/conv"
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/perf"
)

type varKernel[O column.Offset] func(idx []Entry, a, b, dst column.VarColumn[O], cursor int64) int64

func mergeVar[O column.Offset](
	e *Engine, idx []Entry, a, b, dst column.VarColumn[O], cursor int64,
	c perf.Counter, kernel, scalar varKernel[O],
) (int64, error) {
	if cursor < 0 {
		return cursor, fmt.Errorf("%w: cursor %d", ErrInvalidRange, cursor)
	}
	if e.debug {
		if err := checkVarSources(idx, a, b); err != nil {
			return cursor, err
		}
	}
	if len(dst.Offsets) < len(idx) {
		return cursor, fmt.Errorf("%w: %d offsets for %d rows", ErrShortBuffer, len(dst.Offsets), len(idx))
	}

	end := cursor + column.VarSize(idx, a, b)
	if unsafe.Sizeof(O(0)) == 4 {
		if _, err := conv.Int64ToInt32(end); err != nil {
			return cursor, fmt.Errorf("%w: %w", ErrOffsetOverflow, err)
		}
	}
	if end > int64(len(dst.Data)) {
		return cursor, fmt.Errorf("%w: %d bytes for %d", ErrShortBuffer, len(dst.Data), end)
	}

	var got int64
	perf.Measure(c, func() {
		got = kernel(idx, a, b, dst, cursor)
	})

	if e.debug && e.ISA().Tier() > 0 {
		if err := crossCheckVar(e, idx, a, b, dst, cursor, end, scalar); err != nil {
			return got, err
		}
	}
	return got, nil
}

func (e *Engine) crossCheckFixed(op string, dst Buffer, n int, scalar func(out Buffer) error) error {
	if e.ISA().Tier() == 0 {
		return nil
	}
	size := n * dst.Width.Bytes()
	out := Buffer{Data: make([]byte, size), Width: dst.Width}
	if err := scalar(out); err != nil {
		return translateError(err)
	}

	want, got := column.Fingerprint(out.Data), column.Fingerprint(dst.Data[:size])
	if want != got {
		e.logger.LogKernelMismatch(context.Background(), op+" "+dst.Width.String(), e.ISA(), want, got)
		return fmt.Errorf("%w: %s %s", ErrKernelMismatch, op, dst.Width)
	}
	return nil
}

func crossCheckVar[O column.Offset](
	e *Engine, idx []Entry, a, b, dst column.VarColumn[O], cursor, end int64, scalar varKernel[O],
) error {
	out := column.VarColumn[O]{
		Offsets: make([]O, len(dst.Offsets)),
		Data:    make([]byte, len(dst.Data)),
	}
	scalar(idx, a, b, out, cursor)

	k := min(len(dst.Offsets), len(idx)+1)
	want := column.FingerprintVar(column.VarColumn[O]{Offsets: out.Offsets[:k], Data: out.Data[cursor:end]})
	got := column.FingerprintVar(column.VarColumn[O]{Offsets: dst.Offsets[:k], Data: dst.Data[cursor:end]})
	if want != got {
		e.logger.LogKernelMismatch(context.Background(), "merge var column", e.ISA(), want, got)
		return fmt.Errorf("%w: merge var column", ErrKernelMismatch)
	}
	return nil
}

func checkWidths(bufs ...Buffer) error {
	w := bufs[0].Width
	if !w.Valid() {
		return &ErrUnsupportedWidth{Width: w, cause: column.ErrUnsupportedWidth}
	}
	for _, b := range bufs[1:] {
		if b.Width != w {
			return fmt.Errorf("%w: %s and %s", ErrWidthMismatch, w, b.Width)
		}
	}
	return nil
}

func checkRange(n, lo, hi int) error {
	if lo < 0 || hi >= n || hi < lo-1 {
		return fmt.Errorf("%w: [%d, %d] of %d", ErrInvalidRange, lo, hi, n)
	}
	return nil
}

// checkRows verifies every row reference of idx. A negative nb checks a
// single-source index against na and ignores the side bit.
func checkRows(idx []Entry, na, nb int) error {
	for i, en := range idx {
		row, side, limit := en.RowID(), SideExisting, na
		if nb >= 0 {
			side = en.Side()
			if side == SideOOO {
				limit = nb
			}
		}
		if row >= uint64(limit) {
			return &ErrRowReference{Slot: i, Row: row, Side: side, Limit: limit}
		}
	}
	return nil
}

func checkKeys(data []int64) error {
	for i, v := range data {
		if v == Sentinel {
			return fmt.Errorf("%w: position %d", ErrSentinelKey, i)
		}
	}
	return nil
}

func checkRunsSorted(runs [][]Entry) error {
	for i, r := range runs {
		if !index.IsSorted(r) {
			return fmt.Errorf("%w: run %d", ErrNotSorted, i)
		}
	}
	return nil
}

func checkVarColumn[O column.Offset](c column.VarColumn[O]) error {
	if !c.Monotonic() {
		return ErrNonMonotonicOffsets
	}
	return nil
}

func checkVarSources[O column.Offset](idx []Entry, a, b column.VarColumn[O]) error {
	if err := checkVarColumn(a); err != nil {
		return fmt.Errorf("existing: %w", err)
	}
	if err := checkVarColumn(b); err != nil {
		return fmt.Errorf("ooo: %w", err)
	}
	return checkRows(idx, a.Rows(), b.Rows())
}
