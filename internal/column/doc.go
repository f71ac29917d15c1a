// Package column provides the width-specialized data movement kernels of an
// out-of-order merge.
//
// Fixed-width columns are flat arrays of 8, 16, 32, 64 or 256-bit values.
// Variable-length columns are an offsets array in exclusive-end prefix form
// plus a byte blob; value i spans Data[Offsets[i]:Offsets[i+1]].
//
// # Kernels
//
//   - Reshuffle: dst[i] = src[idx[i].row]
//   - MergeShuffle: dst[i] = sources[idx[i].side][idx[i].row]
//   - MergeVar32/64: two-source merge of variable-length columns
//   - ReshuffleVar: single-source permutation of a variable-length column
//   - Fill: bulk fills of fixed-width columns
//   - SetVarRefs32/64, ShiftCopy: offset and timestamp rewrites
//
// Every kernel is dispatched through the simd package. Source and
// destination buffers must not overlap. Buffer bounds are the caller's
// responsibility.
package column
