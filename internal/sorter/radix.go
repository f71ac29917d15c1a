package sorter

const (
	radixPasses  = 8
	radixBuckets = 256
)

// radixSort sorts a by key with eight byte-wide LSD passes. scratch must have
// the same length as a. Passes alternate a->scratch and scratch->a, so the
// result lands back in a after the last (even) pass.
func radixSort[T any](a, scratch []T, key func(T) uint64) {
	var counts [radixPasses][radixBuckets]int

	// One linear scan fills all eight histograms.
	for i := range a {
		k := key(a[i])
		counts[0][k&0xff]++
		counts[1][k>>8&0xff]++
		counts[2][k>>16&0xff]++
		counts[3][k>>24&0xff]++
		counts[4][k>>32&0xff]++
		counts[5][k>>40&0xff]++
		counts[6][k>>48&0xff]++
		counts[7][k>>56]++
	}

	// Bucket counts become insertion offsets.
	for p := range counts {
		offset := 0
		for d := range counts[p] {
			c := counts[p][d]
			counts[p][d] = offset
			offset += c
		}
	}

	src, dst := a, scratch
	for p := range radixPasses {
		shuffle(&counts[p], src, dst, uint(p*8), key)
		src, dst = dst, src
	}
}

func shuffle[T any](offsets *[radixBuckets]int, src, dst []T, shift uint, key func(T) uint64) {
	dst = dst[:len(src)]
	for _, v := range src {
		d := key(v) >> shift & 0xff
		dst[offsets[d]] = v
		offsets[d]++
	}
}
