package column

import (
	"fmt"

	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/simd"
)

// Kernels is the column kernel set resolved through one selector.
// The zero value uses the process-wide cached selection.
type Kernels struct {
	sel simd.Selector
}

// For returns the kernel set for sel.
func For(sel simd.Selector) Kernels {
	return Kernels{sel: sel}
}

// ISA returns the ISA the kernels resolve to.
func (k Kernels) ISA() simd.ISA {
	return k.sel.ISA()
}

// Reshuffle writes dst[i] = src[idx[i].RowID()] for the width of src.
// Buffers must share a width; bounds are the caller's responsibility.
func (k Kernels) Reshuffle(src, dst Buffer, idx []index.Entry) error {
	if err := sameWidth(src, dst); err != nil {
		return err
	}
	switch src.Width {
	case W8:
		simd.Select(k.sel, kernelReshuffle8)(View[int8](src.Data), View[int8](dst.Data), idx)
	case W16:
		simd.Select(k.sel, kernelReshuffle16)(View[int16](src.Data), View[int16](dst.Data), idx)
	case W32:
		simd.Select(k.sel, kernelReshuffle32)(View[int32](src.Data), View[int32](dst.Data), idx)
	case W64:
		simd.Select(k.sel, kernelReshuffle64)(View[int64](src.Data), View[int64](dst.Data), idx)
	case W256:
		simd.Select(k.sel, kernelReshuffle256)(View[Long256](src.Data), View[Long256](dst.Data), idx)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedWidth, src.Width)
	}
	return nil
}

// MergeShuffle merges a and b into dst along a two-source merge index.
func (k Kernels) MergeShuffle(a, b, dst Buffer, idx []index.Entry) error {
	if err := sameWidth(a, b, dst); err != nil {
		return err
	}
	switch a.Width {
	case W8:
		simd.Select(k.sel, kernelMergeShuffle8)(View[int8](a.Data), View[int8](b.Data), View[int8](dst.Data), idx)
	case W16:
		simd.Select(k.sel, kernelMergeShuffle16)(View[int16](a.Data), View[int16](b.Data), View[int16](dst.Data), idx)
	case W32:
		simd.Select(k.sel, kernelMergeShuffle32)(View[int32](a.Data), View[int32](b.Data), View[int32](dst.Data), idx)
	case W64:
		simd.Select(k.sel, kernelMergeShuffle64)(View[int64](a.Data), View[int64](b.Data), View[int64](dst.Data), idx)
	case W256:
		simd.Select(k.sel, kernelMergeShuffle256)(View[Long256](a.Data), View[Long256](b.Data), View[Long256](dst.Data), idx)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedWidth, a.Width)
	}
	return nil
}

// MergeVar32 is the package MergeVar32 through the selector.
func (k Kernels) MergeVar32(idx []index.Entry, a, b, dst VarColumn32, cursor int64) int64 {
	return simd.Select(k.sel, kernelMergeVar32)(idx, a, b, dst, cursor)
}

// MergeVar64 is the package MergeVar64 through the selector.
func (k Kernels) MergeVar64(idx []index.Entry, a, b, dst VarColumn64, cursor int64) int64 {
	return simd.Select(k.sel, kernelMergeVar64)(idx, a, b, dst, cursor)
}

// ReshuffleVar64 is the package ReshuffleVar64 through the selector.
func (k Kernels) ReshuffleVar64(idx []index.Entry, src, dst VarColumn64) int64 {
	return simd.Select(k.sel, kernelReshuffleVar64)(idx, src, dst)
}

// FillInt64 is the package FillInt64 through the selector.
func (k Kernels) FillInt64(dst []int64, v int64) { simd.Select(k.sel, kernelFillInt64)(dst, v) }

// FillInt32 is the package FillInt32 through the selector.
func (k Kernels) FillInt32(dst []int32, v int32) { simd.Select(k.sel, kernelFillInt32)(dst, v) }

// FillInt16 is the package FillInt16 through the selector.
func (k Kernels) FillInt16(dst []int16, v int16) { simd.Select(k.sel, kernelFillInt16)(dst, v) }

// FillFloat64 is the package FillFloat64 through the selector.
func (k Kernels) FillFloat64(dst []float64, v float64) { simd.Select(k.sel, kernelFillFloat64)(dst, v) }

// FillFloat32 is the package FillFloat32 through the selector.
func (k Kernels) FillFloat32(dst []float32, v float32) { simd.Select(k.sel, kernelFillFloat32)(dst, v) }

// FillBytes is the package FillBytes through the selector.
func (k Kernels) FillBytes(dst []byte, v byte) { simd.Select(k.sel, kernelFillBytes)(dst, v) }

// SetVarRefs32 is the package SetVarRefs32 through the selector.
func (k Kernels) SetVarRefs32(dst []int64, offset int64) {
	simd.Select(k.sel, kernelSetVarRefs32)(dst, offset)
}

// SetVarRefs64 is the package SetVarRefs64 through the selector.
func (k Kernels) SetVarRefs64(dst []int64, offset int64) {
	simd.Select(k.sel, kernelSetVarRefs64)(dst, offset)
}

// ShiftCopy is the package ShiftCopy through the selector.
func (k Kernels) ShiftCopy(shift int64, src []int64, lo, hi int, dst []int64) {
	simd.Select(k.sel, kernelShiftCopy)(shift, src, lo, hi, dst)
}

// Scalar returns the kernel set pinned to the scalar oracle.
func Scalar() Kernels {
	return For(simd.Pinned(simd.Generic))
}

func sameWidth(bufs ...Buffer) error {
	w := bufs[0].Width
	if !w.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedWidth, w)
	}
	for _, b := range bufs[1:] {
		if b.Width != w {
			return fmt.Errorf("%w: %s and %s", ErrWidthMismatch, w, b.Width)
		}
	}
	return nil
}
