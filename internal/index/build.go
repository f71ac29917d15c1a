package index

import "github.com/hupe1980/ooo/internal/simd"

type (
	makeFunc    func(data []int64, lo, hi int, dst []Entry)
	shiftFunc   func(src, dst []Entry)
	flattenFunc func(entries []Entry)
	copyFunc    func(entries []Entry, dst []int64)
)

var kernelMakeTimestampIndex = simd.NewKernel[makeFunc]("make_timestamp_index", makeTimestampIndexGeneric).
	With(3, makeTimestampIndexUnrolled)

var kernelShiftTimestampIndex = simd.NewKernel[shiftFunc]("shift_timestamp_index", shiftTimestampIndexGeneric)

var kernelFlattenIndex = simd.NewKernel[flattenFunc]("flatten_index", flattenIndexGeneric).
	With(3, flattenIndexUnrolled)

var kernelCopyTimestamps = simd.NewKernel[copyFunc]("copy_index", copyTimestampsGeneric).
	With(3, copyTimestampsUnrolled)

// MakeTimestampIndex builds the identity run over data[lo:hi+1]:
// dst[i-lo] = {data[i], i}. dst must hold hi-lo+1 entries.
func MakeTimestampIndex(data []int64, lo, hi int, dst []Entry) {
	kernelMakeTimestampIndex.Get()(data, lo, hi, dst)
}

// ShiftTimestampIndex copies keys from src and renumbers rows from zero:
// dst[i] = {src[i].Ts, i}.
func ShiftTimestampIndex(src, dst []Entry) {
	kernelShiftTimestampIndex.Get()(src, dst)
}

// FlattenIndex rewrites every row tag to its position: entries[i].Row = i.
func FlattenIndex(entries []Entry) {
	kernelFlattenIndex.Get()(entries)
}

// CopyTimestamps extracts the keys of entries into dst.
func CopyTimestamps(entries []Entry, dst []int64) {
	kernelCopyTimestamps.Get()(entries, dst)
}

// Kernels is the index kernel set resolved through one selector. Each call
// resolves its kernel through the selector, so an automatic selector still
// resolves a kernel on its first invocation. The zero value uses the
// process-wide cached selection.
type Kernels struct {
	sel simd.Selector
}

// For returns the kernel set for sel.
func For(sel simd.Selector) Kernels {
	return Kernels{sel: sel}
}

// MakeTimestampIndex is the package MakeTimestampIndex through the selector.
func (k Kernels) MakeTimestampIndex(data []int64, lo, hi int, dst []Entry) {
	simd.Select(k.sel, kernelMakeTimestampIndex)(data, lo, hi, dst)
}

// ShiftTimestampIndex is the package ShiftTimestampIndex through the selector.
func (k Kernels) ShiftTimestampIndex(src, dst []Entry) {
	simd.Select(k.sel, kernelShiftTimestampIndex)(src, dst)
}

// FlattenIndex is the package FlattenIndex through the selector.
func (k Kernels) FlattenIndex(entries []Entry) {
	simd.Select(k.sel, kernelFlattenIndex)(entries)
}

// CopyTimestamps is the package CopyTimestamps through the selector.
func (k Kernels) CopyTimestamps(entries []Entry, dst []int64) {
	simd.Select(k.sel, kernelCopyTimestamps)(entries, dst)
}

// CopyTimestampRange extracts the keys of entries[lo:hi+1] into dst.
func (k Kernels) CopyTimestampRange(entries []Entry, lo, hi int, dst []int64) {
	k.CopyTimestamps(entries[lo:hi+1], dst)
}

func makeTimestampIndexGeneric(data []int64, lo, hi int, dst []Entry) {
	for i := lo; i <= hi; i++ {
		dst[i-lo] = Entry{Ts: data[i], Row: uint64(i)}
	}
}

func makeTimestampIndexUnrolled(data []int64, lo, hi int, dst []Entry) {
	n := hi - lo + 1
	if n <= 0 {
		return
	}
	src := data[lo : hi+1]
	dst = dst[:n]
	row := uint64(lo)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = Entry{Ts: src[i], Row: row}
		dst[i+1] = Entry{Ts: src[i+1], Row: row + 1}
		dst[i+2] = Entry{Ts: src[i+2], Row: row + 2}
		dst[i+3] = Entry{Ts: src[i+3], Row: row + 3}
		row += 4
	}
	for ; i < n; i++ {
		dst[i] = Entry{Ts: src[i], Row: row}
		row++
	}
}

func shiftTimestampIndexGeneric(src, dst []Entry) {
	dst = dst[:len(src)]
	for i := range src {
		dst[i] = Entry{Ts: src[i].Ts, Row: uint64(i)}
	}
}

func flattenIndexGeneric(entries []Entry) {
	for i := range entries {
		entries[i].Row = uint64(i)
	}
}

func flattenIndexUnrolled(entries []Entry) {
	n := len(entries)
	i := 0
	for ; i+4 <= n; i += 4 {
		entries[i].Row = uint64(i)
		entries[i+1].Row = uint64(i + 1)
		entries[i+2].Row = uint64(i + 2)
		entries[i+3].Row = uint64(i + 3)
	}
	for ; i < n; i++ {
		entries[i].Row = uint64(i)
	}
}

func copyTimestampsGeneric(entries []Entry, dst []int64) {
	dst = dst[:len(entries)]
	for i := range entries {
		dst[i] = entries[i].Ts
	}
}

func copyTimestampsUnrolled(entries []Entry, dst []int64) {
	n := len(entries)
	dst = dst[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = entries[i].Ts
		dst[i+1] = entries[i+1].Ts
		dst[i+2] = entries[i+2].Ts
		dst[i+3] = entries[i+3].Ts
	}
	for ; i < n; i++ {
		dst[i] = entries[i].Ts
	}
}
