package sorter

import (
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/pool"
)

// Threshold is the run length from which Sort switches to radix sort.
const Threshold = 600

// signBit maps signed keys onto unsigned radix order.
const signBit = uint64(1) << 63

func entryKey(e index.Entry) uint64 { return uint64(e.Ts) ^ signBit }

func entryLess(a, b index.Entry) bool { return a.Ts < b.Ts }

func uintKey(v uint64) uint64 { return v }

func uintLess(a, b uint64) bool { return a < b }

// Sort orders entries ascending by key.
func Sort(entries []index.Entry) {
	switch n := len(entries); {
	case n <= 1:
	case n < Threshold:
		QuickSort(entries)
	default:
		RadixSort(entries)
	}
}

// QuickSort orders entries with the comparison branch regardless of length.
func QuickSort(entries []index.Entry) {
	introSort(entries, entryLess)
}

// RadixSort orders entries with the radix branch. Scratch comes from a pool
// and is returned before RadixSort returns.
func RadixSort(entries []index.Entry) {
	if len(entries) <= 1 {
		return
	}
	buf := pool.Entries.Get(len(entries))
	RadixSortScratch(entries, *buf)
	pool.Entries.Put(buf)
}

// RadixSortScratch orders entries with the radix branch using a caller
// supplied scratch buffer of at least len(entries) elements.
func RadixSortScratch(entries, scratch []index.Entry) {
	radixSort(entries, scratch[:len(entries)], entryKey)
}

// SortUint64 orders bare unsigned keys with the same size policy as Sort.
func SortUint64(keys []uint64) {
	switch n := len(keys); {
	case n <= 1:
	case n < Threshold:
		introSort(keys, uintLess)
	default:
		buf := pool.Keys.Get(n)
		radixSort(keys, *buf, uintKey)
		pool.Keys.Put(buf)
	}
}

// Key128 is a signed 128-bit key in little-endian word order, so a
// []Key128 shares its layout with a flat buffer of 128-bit integers.
type Key128 struct {
	Lo uint64
	Hi int64
}

// Less reports whether k orders before o as a signed 128-bit integer.
func (k Key128) Less(o Key128) bool {
	if k.Hi != o.Hi {
		return k.Hi < o.Hi
	}
	return k.Lo < o.Lo
}

func key128Less(a, b Key128) bool { return a.Less(b) }

// Sort128 orders 128-bit keys ascending in place with the comparison branch.
// Equal keys are indistinguishable, so stability does not apply.
func Sort128(keys []Key128) {
	introSort(keys, key128Less)
}
