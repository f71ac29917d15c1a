// Package ooo merges out-of-order rows into time-ordered columnar data.
//
// Rows of a time-series table arrive with non-monotonic timestamps. The
// engine turns them into a globally ordered permutation and moves column
// data along it with width-specialized kernels:
//
//   - Sort: SortIndex orders a run of index entries in place, using a
//     comparison sort below SortThreshold entries and an LSD radix sort
//     above it.
//   - Merge: MergeIndexes merges sorted runs with a tournament tree;
//     MergeTwoIndexes merges existing data with an out-of-order batch and
//     tags every slot with its side.
//   - Move: Reshuffle applies a permutation to a fixed-width column,
//     MergeShuffle merges two fixed-width columns in one pass, and
//     MergeVarColumn32/64 merge variable-length columns.
//   - Lookup: BinarySearch and MakeTimestampIndex seed runs and range scans.
//
// # Quick Start
//
//	eng, _ := ooo.New()
//
//	existing := []ooo.Entry{{Ts: 10, Row: 0}, {Ts: 30, Row: 1}}
//	batch := []ooo.Entry{{Ts: 20, Row: 0}}
//	eng.SortIndex(batch)
//
//	idx, _ := eng.MergeTwoIndexes(existing, batch)
//	defer idx.Free()
//
//	entries, _ := idx.Entries()
//	dst := make([]int64, len(entries))
//	_ = eng.MergeShuffle(ooo.BufferOf(oldPrices), ooo.BufferOf(newPrices), ooo.BufferOf(dst), entries)
//
// # Kernel Selection
//
// Every kernel has a scalar implementation and faster variants keyed by CPU
// capability tier. The best variant is resolved once per kernel and cached
// for the process. Set OOO_SIMD (generic, sse2, sse41, avx2, avx512, neon,
// sve2) to force a lower tier, or pin one engine with WithISA.
//
// # Validation
//
// The engine always checks widths, ranges and destination capacities. Row
// references, run order and offset monotonicity are caller contracts unless
// WithDebugChecks is enabled, which also cross-checks dispatched kernel
// output against the scalar implementation.
//
// # Ownership
//
// Buffers passed in are caller-owned and are not retained. MergedIndex and
// VarColumn handles own engine-allocated memory, counted against
// WithMemoryLimit, and must be released with Free.
package ooo
