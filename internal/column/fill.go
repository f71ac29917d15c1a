package column

import "github.com/hupe1980/ooo/internal/simd"

type fillFunc[T any] func(dst []T, v T)

func newFill[T any](name string) *simd.Kernel[fillFunc[T]] {
	return simd.NewKernel[fillFunc[T]](name, fillGeneric[T]).
		With(3, fillDoubling[T])
}

var (
	kernelFillInt64   = newFill[int64]("set_memory_vanilla_int64")
	kernelFillInt32   = newFill[int32]("set_memory_vanilla_int32")
	kernelFillInt16   = newFill[int16]("set_memory_vanilla_short")
	kernelFillFloat64 = newFill[float64]("set_memory_vanilla_double")
	kernelFillFloat32 = newFill[float32]("set_memory_vanilla_float")
	kernelFillBytes   = newFill[byte]("platform_memset")
)

// FillInt64 sets every element of dst to v.
func FillInt64(dst []int64, v int64) { kernelFillInt64.Get()(dst, v) }

// FillInt32 sets every element of dst to v.
func FillInt32(dst []int32, v int32) { kernelFillInt32.Get()(dst, v) }

// FillInt16 sets every element of dst to v.
func FillInt16(dst []int16, v int16) { kernelFillInt16.Get()(dst, v) }

// FillFloat64 sets every element of dst to v.
func FillFloat64(dst []float64, v float64) { kernelFillFloat64.Get()(dst, v) }

// FillFloat32 sets every element of dst to v.
func FillFloat32(dst []float32, v float32) { kernelFillFloat32.Get()(dst, v) }

// FillBytes sets every byte of dst to v.
func FillBytes(dst []byte, v byte) { kernelFillBytes.Get()(dst, v) }

func fillGeneric[T any](dst []T, v T) {
	for i := range dst {
		dst[i] = v
	}
}

// fillDoubling seeds one element and grows the filled prefix with copy,
// which lowers to the runtime's bulk memmove.
func fillDoubling[T any](dst []T, v T) {
	if len(dst) == 0 {
		return
	}
	dst[0] = v
	for filled := 1; filled < len(dst); filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}
