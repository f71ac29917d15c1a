// Package sorter orders runs of index entries by key in place.
//
// Runs shorter than Threshold use an introspective quicksort (median-of-three
// pivot, heapsort fallback when recursion gets too deep). Longer runs use an
// 8-pass least-significant-digit radix sort that ping-pongs between the input
// and one scratch buffer of the same size. Both branches produce the same key
// order. Only the radix branch is stable: callers must not rely on the
// relative order of equal keys.
package sorter
