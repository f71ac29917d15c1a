package index

// Direction selects which boundary a search reports.
type Direction int8

const (
	// ScanForward prefers the first match. When the value is absent it
	// returns the first index whose key is greater, the starting point of a
	// forward scan.
	ScanForward Direction = 1
	// ScanBackward prefers the last match. When the value is absent it
	// returns the last index whose key is smaller, the starting point of a
	// backward scan.
	ScanBackward Direction = -1
)

// Search looks up value in the ascending slice data[lo:hi+1].
//
// For ScanForward the result lies in [lo, hi+1]; hi+1 means every key is
// smaller than value. For ScanBackward the result lies in [lo-1, hi]; lo-1
// means every key is greater than value.
func Search(data []int64, value int64, lo, hi int, dir Direction) int {
	if dir == ScanBackward {
		return upperBound(lo, hi+1, func(i int) bool { return data[i] <= value }) - 1
	}
	return upperBound(lo, hi+1, func(i int) bool { return data[i] < value })
}

// SearchEntries is Search over the keys of an ascending run.
func SearchEntries(entries []Entry, value int64, lo, hi int, dir Direction) int {
	if dir == ScanBackward {
		return upperBound(lo, hi+1, func(i int) bool { return entries[i].Ts <= value }) - 1
	}
	return upperBound(lo, hi+1, func(i int) bool { return entries[i].Ts < value })
}

// upperBound returns the first index in [l, h) where before is false,
// assuming before is true for a prefix of the range and false after it.
func upperBound(l, h int, before func(int) bool) int {
	for l < h {
		m := int(uint(l+h) >> 1)
		if before(m) {
			l = m + 1
		} else {
			h = m
		}
	}
	return l
}
