package column

import "github.com/hupe1980/ooo/internal/simd"

type (
	varRefsFunc   func(dst []int64, offset int64)
	shiftCopyFunc func(shift int64, src []int64, lo, hi int, dst []int64)
)

var (
	kernelSetVarRefs32 = simd.NewKernel[varRefsFunc]("set_var_refs_32_bit", setVarRefs(4))
	kernelSetVarRefs64 = simd.NewKernel[varRefsFunc]("set_var_refs_64_bit", setVarRefs(8))
	kernelShiftCopy    = simd.NewKernel[shiftCopyFunc]("shift_copy", shiftCopyGeneric).
				With(3, shiftCopyUnrolled)
)

// SetVarRefs32 points every slot of dst at a null value of a column whose
// values carry a 4-byte length header: dst[i] = offset + 4*i.
func SetVarRefs32(dst []int64, offset int64) { kernelSetVarRefs32.Get()(dst, offset) }

// SetVarRefs64 is SetVarRefs32 for 8-byte length headers.
func SetVarRefs64(dst []int64, offset int64) { kernelSetVarRefs64.Get()(dst, offset) }

// ShiftCopy writes dst[i-lo] = src[i] - shift for i in [lo, hi].
func ShiftCopy(shift int64, src []int64, lo, hi int, dst []int64) {
	kernelShiftCopy.Get()(shift, src, lo, hi, dst)
}

func setVarRefs(stride int64) varRefsFunc {
	return func(dst []int64, offset int64) {
		for i := range dst {
			dst[i] = offset + stride*int64(i)
		}
	}
}

func shiftCopyGeneric(shift int64, src []int64, lo, hi int, dst []int64) {
	for i := lo; i <= hi; i++ {
		dst[i-lo] = src[i] - shift
	}
}

func shiftCopyUnrolled(shift int64, src []int64, lo, hi int, dst []int64) {
	if hi < lo {
		return
	}
	s := src[lo : hi+1]
	d := dst[:len(s)]
	i := 0
	for ; i+4 <= len(s); i += 4 {
		d[i] = s[i] - shift
		d[i+1] = s[i+1] - shift
		d[i+2] = s[i+2] - shift
		d[i+3] = s[i+3] - shift
	}
	for ; i < len(s); i++ {
		d[i] = s[i] - shift
	}
}
