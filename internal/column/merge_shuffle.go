package column

import (
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/simd"
)

type mergeShuffleFunc[T Fixed] func(a, b, dst []T, idx []index.Entry)

func newMergeShuffle[T Fixed](name string) *simd.Kernel[mergeShuffleFunc[T]] {
	return simd.NewKernel[mergeShuffleFunc[T]](name, mergeShuffleGeneric[T]).
		With(1, mergeShuffleUnrolled4[T]).
		With(3, mergeShuffleUnrolled8[T])
}

var (
	kernelMergeShuffle8   = newMergeShuffle[int8]("merge_shuffle_int8")
	kernelMergeShuffle16  = newMergeShuffle[int16]("merge_shuffle_int16")
	kernelMergeShuffle32  = newMergeShuffle[int32]("merge_shuffle_int32")
	kernelMergeShuffle64  = newMergeShuffle[int64]("merge_shuffle_int64")
	kernelMergeShuffle256 = newMergeShuffle[Long256]("merge_shuffle_256bit")
)

// MergeShuffle8 merges two 8-bit columns along a two-source merge index.
func MergeShuffle8(a, b, dst []int8, idx []index.Entry) { kernelMergeShuffle8.Get()(a, b, dst, idx) }

// MergeShuffle16 merges two 16-bit columns along a two-source merge index.
func MergeShuffle16(a, b, dst []int16, idx []index.Entry) { kernelMergeShuffle16.Get()(a, b, dst, idx) }

// MergeShuffle32 merges two 32-bit columns along a two-source merge index.
func MergeShuffle32(a, b, dst []int32, idx []index.Entry) { kernelMergeShuffle32.Get()(a, b, dst, idx) }

// MergeShuffle64 merges two 64-bit columns along a two-source merge index.
func MergeShuffle64(a, b, dst []int64, idx []index.Entry) { kernelMergeShuffle64.Get()(a, b, dst, idx) }

// MergeShuffle256 merges two 256-bit columns along a two-source merge index.
func MergeShuffle256(a, b, dst []Long256, idx []index.Entry) {
	kernelMergeShuffle256.Get()(a, b, dst, idx)
}

// mergeShuffleGeneric writes dst[i] from the side and row named by idx[i].
// Side 0 reads a, side 1 reads b.
func mergeShuffleGeneric[T Fixed](a, b, dst []T, idx []index.Entry) {
	sources := [2][]T{a, b}
	for i := range idx {
		e := idx[i]
		dst[i] = sources[e.Side()][e.RowID()]
	}
}

func mergeShuffleUnrolled4[T Fixed](a, b, dst []T, idx []index.Entry) {
	sources := [2][]T{a, b}
	n := len(idx)
	dst = dst[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		e0, e1, e2, e3 := idx[i], idx[i+1], idx[i+2], idx[i+3]
		dst[i] = sources[e0.Side()][e0.RowID()]
		dst[i+1] = sources[e1.Side()][e1.RowID()]
		dst[i+2] = sources[e2.Side()][e2.RowID()]
		dst[i+3] = sources[e3.Side()][e3.RowID()]
	}
	for ; i < n; i++ {
		e := idx[i]
		dst[i] = sources[e.Side()][e.RowID()]
	}
}

func mergeShuffleUnrolled8[T Fixed](a, b, dst []T, idx []index.Entry) {
	sources := [2][]T{a, b}
	n := len(idx)
	dst = dst[:n]
	i := 0
	for ; i+8 <= n; i += 8 {
		e0, e1, e2, e3 := idx[i], idx[i+1], idx[i+2], idx[i+3]
		e4, e5, e6, e7 := idx[i+4], idx[i+5], idx[i+6], idx[i+7]
		dst[i] = sources[e0.Side()][e0.RowID()]
		dst[i+1] = sources[e1.Side()][e1.RowID()]
		dst[i+2] = sources[e2.Side()][e2.RowID()]
		dst[i+3] = sources[e3.Side()][e3.RowID()]
		dst[i+4] = sources[e4.Side()][e4.RowID()]
		dst[i+5] = sources[e5.Side()][e5.RowID()]
		dst[i+6] = sources[e6.Side()][e6.RowID()]
		dst[i+7] = sources[e7.Side()][e7.RowID()]
	}
	for ; i < n; i++ {
		e := idx[i]
		dst[i] = sources[e.Side()][e.RowID()]
	}
}
