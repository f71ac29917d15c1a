// Package conv provides checked integer conversions.
//
// Sizes and offsets in this module are carried as int64 so they are the same
// on every platform, but Go slices are indexed by int. These helpers reject
// values that would truncate on the running platform instead of wrapping.
//
// For conversions that are provably safe by construction (loop indices, row
// counts taken from len), use direct casts.
package conv
