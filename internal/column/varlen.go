package column

import (
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/simd"
)

// Offset is the element type of a variable-length offsets array.
type Offset interface {
	~int32 | ~int64
}

// VarColumn is a variable-length column: value i is
// Data[Offsets[i]:Offsets[i+1]]. A column of n values carries n+1 offsets.
type VarColumn[O Offset] struct {
	Offsets []O
	Data    []byte
}

type (
	// VarColumn32 is a variable-length column with 32-bit offsets.
	VarColumn32 = VarColumn[int32]
	// VarColumn64 is a variable-length column with 64-bit offsets.
	VarColumn64 = VarColumn[int64]
)

// Rows returns the number of values in the column.
func (c VarColumn[O]) Rows() int {
	if len(c.Offsets) == 0 {
		return 0
	}
	return len(c.Offsets) - 1
}

// Value returns the bytes of row r.
func (c VarColumn[O]) Value(r int) []byte {
	return c.Data[c.Offsets[r]:c.Offsets[r+1]]
}

// Monotonic reports whether the offsets never decrease and stay inside Data.
func (c VarColumn[O]) Monotonic() bool {
	for i := 1; i < len(c.Offsets); i++ {
		if c.Offsets[i] < c.Offsets[i-1] {
			return false
		}
	}
	if n := len(c.Offsets); n > 0 {
		return c.Offsets[0] >= 0 && int64(c.Offsets[n-1]) <= int64(len(c.Data))
	}
	return true
}

type (
	mergeVarFunc[O Offset]     func(idx []index.Entry, a, b, dst VarColumn[O], cursor int64) int64
	reshuffleVarFunc[O Offset] func(idx []index.Entry, src, dst VarColumn[O]) int64
)

var (
	kernelMergeVar32 = simd.NewKernel[mergeVarFunc[int32]]("merge_copy_var_column_int32", mergeVarGeneric[int32]).
				With(3, mergeVarPrefetched[int32])
	kernelMergeVar64 = simd.NewKernel[mergeVarFunc[int64]]("merge_copy_var_column_int64", mergeVarGeneric[int64]).
				With(3, mergeVarPrefetched[int64])
	kernelReshuffleVar64 = simd.NewKernel[reshuffleVarFunc[int64]]("sort_var_column", reshuffleVarGeneric[int64])
)

// MergeVar32 merges two variable-length columns along a two-source merge
// index. Bytes are appended to dst.Data starting at cursor and dst.Offsets[i]
// receives the start of slot i. When dst has room for len(idx)+1 offsets the
// terminating offset is written too. It returns the final cursor.
func MergeVar32(idx []index.Entry, a, b, dst VarColumn32, cursor int64) int64 {
	return kernelMergeVar32.Get()(idx, a, b, dst, cursor)
}

// MergeVar64 is MergeVar32 for 64-bit offsets.
func MergeVar64(idx []index.Entry, a, b, dst VarColumn64, cursor int64) int64 {
	return kernelMergeVar64.Get()(idx, a, b, dst, cursor)
}

// ReshuffleVar64 permutes a single variable-length column along idx into
// dst, starting at byte zero, and returns the number of bytes written.
func ReshuffleVar64(idx []index.Entry, src, dst VarColumn64) int64 {
	return kernelReshuffleVar64.Get()(idx, src, dst)
}

// VarSize returns the number of bytes a merge of a and b along idx writes.
func VarSize[O Offset](idx []index.Entry, a, b VarColumn[O]) int64 {
	sources := [2]VarColumn[O]{a, b}
	var total int64
	for _, e := range idx {
		src := sources[e.Side()]
		r := e.RowID()
		total += int64(src.Offsets[r+1] - src.Offsets[r])
	}
	return total
}

// VarSize32 is VarSize for 32-bit offsets.
func VarSize32(idx []index.Entry, a, b VarColumn32) int64 { return VarSize(idx, a, b) }

// VarSize64 is VarSize for 64-bit offsets.
func VarSize64(idx []index.Entry, a, b VarColumn64) int64 { return VarSize(idx, a, b) }

func mergeVarGeneric[O Offset](idx []index.Entry, a, b, dst VarColumn[O], cursor int64) int64 {
	sources := [2]VarColumn[O]{a, b}
	for i, e := range idx {
		src := sources[e.Side()]
		r := e.RowID()
		lo, hi := src.Offsets[r], src.Offsets[r+1]
		n := copy(dst.Data[cursor:], src.Data[lo:hi])
		dst.Offsets[i] = O(cursor)
		cursor += int64(n)
	}
	if len(dst.Offsets) > len(idx) {
		dst.Offsets[len(idx)] = O(cursor)
	}
	return cursor
}

// mergeVarPrefetched resolves the source ranges of a block of slots before
// copying them, which keeps the offset loads ahead of the byte copies.
func mergeVarPrefetched[O Offset](idx []index.Entry, a, b, dst VarColumn[O], cursor int64) int64 {
	const block = 8
	sources := [2]VarColumn[O]{a, b}
	var (
		los  [block]O
		his  [block]O
		data [block][]byte
	)
	n := len(idx)
	for base := 0; base < n; base += block {
		m := min(block, n-base)
		for j := range m {
			e := idx[base+j]
			src := sources[e.Side()]
			r := e.RowID()
			los[j], his[j] = src.Offsets[r], src.Offsets[r+1]
			data[j] = src.Data
		}
		for j := range m {
			k := copy(dst.Data[cursor:], data[j][los[j]:his[j]])
			dst.Offsets[base+j] = O(cursor)
			cursor += int64(k)
		}
	}
	if len(dst.Offsets) > n {
		dst.Offsets[n] = O(cursor)
	}
	return cursor
}

func reshuffleVarGeneric[O Offset](idx []index.Entry, src, dst VarColumn[O]) int64 {
	var cursor int64
	for i, e := range idx {
		r := e.RowID()
		lo, hi := src.Offsets[r], src.Offsets[r+1]
		n := copy(dst.Data[cursor:], src.Data[lo:hi])
		dst.Offsets[i] = O(cursor)
		cursor += int64(n)
	}
	if len(dst.Offsets) > len(idx) {
		dst.Offsets[len(idx)] = O(cursor)
	}
	return cursor
}
