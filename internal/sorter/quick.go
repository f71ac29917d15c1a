package sorter

import "math/bits"

// insertionThreshold is the partition size below which insertion sort wins.
const insertionThreshold = 12

func introSort[T any](a []T, less func(x, y T) bool) {
	if len(a) < 2 {
		return
	}
	introSortRange(a, 0, len(a)-1, 2*bits.Len(uint(len(a))), less)
}

// introSortRange sorts a[lo:hi+1]. It recurses into the smaller partition and
// loops on the larger one, so stack depth stays logarithmic; depth bounds the
// number of partitioning rounds before falling back to heapsort.
func introSortRange[T any](a []T, lo, hi, depth int, less func(x, y T) bool) {
	for hi-lo+1 > insertionThreshold {
		if depth == 0 {
			heapSort(a[lo:hi+1], less)
			return
		}
		depth--

		p := partition(a, lo, hi, less)
		if p-lo < hi-p {
			introSortRange(a, lo, p-1, depth, less)
			lo = p + 1
		} else {
			introSortRange(a, p+1, hi, depth, less)
			hi = p - 1
		}
	}
	insertionSort(a[lo:hi+1], less)
}

// partition is a Lomuto partition around the median of a[lo], a[mid], a[hi].
// It returns the final pivot position.
func partition[T any](a []T, lo, hi int, less func(x, y T) bool) int {
	medianToHigh(a, lo, lo+(hi-lo)/2, hi, less)
	pivot := a[hi]

	i := lo
	for j := lo; j < hi; j++ {
		if !less(pivot, a[j]) {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}

// medianToHigh orders the three samples and moves the median to a[hi].
func medianToHigh[T any](a []T, lo, mid, hi int, less func(x, y T) bool) {
	if less(a[mid], a[lo]) {
		a[mid], a[lo] = a[lo], a[mid]
	}
	if less(a[hi], a[mid]) {
		a[hi], a[mid] = a[mid], a[hi]
		if less(a[mid], a[lo]) {
			a[mid], a[lo] = a[lo], a[mid]
		}
	}
	a[mid], a[hi] = a[hi], a[mid]
}

func insertionSort[T any](a []T, less func(x, y T) bool) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i
		for ; j > 0 && less(v, a[j-1]); j-- {
			a[j] = a[j-1]
		}
		a[j] = v
	}
}

func heapSort[T any](a []T, less func(x, y T) bool) {
	n := len(a)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n, less)
	}
	for end := n - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		siftDown(a, 0, end, less)
	}
}

func siftDown[T any](a []T, root, n int, less func(x, y T) bool) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && less(a[child], a[child+1]) {
			child++
		}
		if !less(a[root], a[child]) {
			return
		}
		a[root], a[child] = a[child], a[root]
		root = child
	}
}
