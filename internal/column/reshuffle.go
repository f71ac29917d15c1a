package column

import (
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/simd"
)

type reshuffleFunc[T Fixed] func(src, dst []T, idx []index.Entry)

func newReshuffle[T Fixed](name string) *simd.Kernel[reshuffleFunc[T]] {
	return simd.NewKernel[reshuffleFunc[T]](name, reshuffleGeneric[T]).
		With(1, reshuffleUnrolled4[T]).
		With(3, reshuffleUnrolled8[T])
}

var (
	kernelReshuffle8   = newReshuffle[int8]("re_shuffle_int8")
	kernelReshuffle16  = newReshuffle[int16]("re_shuffle_int16")
	kernelReshuffle32  = newReshuffle[int32]("re_shuffle_int32")
	kernelReshuffle64  = newReshuffle[int64]("re_shuffle_int64")
	kernelReshuffle256 = newReshuffle[Long256]("re_shuffle_256bit")
)

// Reshuffle8 writes dst[i] = src[idx[i].RowID()] for 8-bit values.
func Reshuffle8(src, dst []int8, idx []index.Entry) { kernelReshuffle8.Get()(src, dst, idx) }

// Reshuffle16 writes dst[i] = src[idx[i].RowID()] for 16-bit values.
func Reshuffle16(src, dst []int16, idx []index.Entry) { kernelReshuffle16.Get()(src, dst, idx) }

// Reshuffle32 writes dst[i] = src[idx[i].RowID()] for 32-bit values.
func Reshuffle32(src, dst []int32, idx []index.Entry) { kernelReshuffle32.Get()(src, dst, idx) }

// Reshuffle64 writes dst[i] = src[idx[i].RowID()] for 64-bit values.
func Reshuffle64(src, dst []int64, idx []index.Entry) { kernelReshuffle64.Get()(src, dst, idx) }

// Reshuffle256 writes dst[i] = src[idx[i].RowID()] for 256-bit values.
func Reshuffle256(src, dst []Long256, idx []index.Entry) { kernelReshuffle256.Get()(src, dst, idx) }

func reshuffleGeneric[T Fixed](src, dst []T, idx []index.Entry) {
	for i := range idx {
		dst[i] = src[idx[i].RowID()]
	}
}

func reshuffleUnrolled4[T Fixed](src, dst []T, idx []index.Entry) {
	n := len(idx)
	dst = dst[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		r0, r1, r2, r3 := idx[i].RowID(), idx[i+1].RowID(), idx[i+2].RowID(), idx[i+3].RowID()
		dst[i] = src[r0]
		dst[i+1] = src[r1]
		dst[i+2] = src[r2]
		dst[i+3] = src[r3]
	}
	for ; i < n; i++ {
		dst[i] = src[idx[i].RowID()]
	}
}

func reshuffleUnrolled8[T Fixed](src, dst []T, idx []index.Entry) {
	n := len(idx)
	dst = dst[:n]
	i := 0
	for ; i+8 <= n; i += 8 {
		r0, r1, r2, r3 := idx[i].RowID(), idx[i+1].RowID(), idx[i+2].RowID(), idx[i+3].RowID()
		r4, r5, r6, r7 := idx[i+4].RowID(), idx[i+5].RowID(), idx[i+6].RowID(), idx[i+7].RowID()
		dst[i] = src[r0]
		dst[i+1] = src[r1]
		dst[i+2] = src[r2]
		dst[i+3] = src[r3]
		dst[i+4] = src[r4]
		dst[i+5] = src[r5]
		dst[i+6] = src[r6]
		dst[i+7] = src[r7]
	}
	for ; i < n; i++ {
		dst[i] = src[idx[i].RowID()]
	}
}
