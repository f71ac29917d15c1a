package merge

import (
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/mem"
)

// TotalLen returns the combined length of runs.
func TotalLen(runs [][]index.Entry) int {
	n := 0
	for _, r := range runs {
		n += len(r)
	}
	return n
}

// KWay merges ascending runs into dst and returns the number of entries
// written. dst must hold TotalLen(runs) entries. Each entry keeps its
// provenance tag. Entries carrying the Sentinel key end their run and are
// not written.
func KWay(runs [][]index.Entry, dst []index.Entry) int {
	switch live := liveRuns(runs); len(live) {
	case 0:
		return 0
	case 1:
		return copy(dst, live[0])
	}

	t := NewTree(runs)
	n := 0
	for {
		e, ok := t.Pop()
		if !ok {
			return n
		}
		dst[n] = e
		n++
	}
}

// Two merges two ascending runs into dst. On equal keys entries of a come
// first.
func Two(a, b, dst []index.Entry) int {
	return KWay([][]index.Entry{a, b}, dst)
}

// TwoSided merges existing and ooo into dst and tags every emitted entry
// with its side. The inputs are not modified; their rows must fit in 63 bits.
func TwoSided(existing, ooo, dst []index.Entry) int {
	t := NewTree([][]index.Entry{existing, ooo})
	n := 0
	for {
		e, run, ok := t.PopRun()
		if !ok {
			return n
		}
		e.Row = index.Tag(e.Row, index.Side(run))
		dst[n] = e
		n++
	}
}

// Merge allocates an aligned destination and merges runs into it.
func Merge(runs ...[]index.Entry) []index.Entry {
	dst := mem.AllocSlice[index.Entry](TotalLen(runs))
	n := KWay(runs, dst)
	return dst[:n]
}

func liveRuns(runs [][]index.Entry) [][]index.Entry {
	var live [][]index.Entry
	for _, r := range runs {
		if r = Trim(r); len(r) > 0 {
			live = append(live, r)
		}
	}
	return live
}

// Trim returns run up to its first entry carrying the Sentinel key.
func Trim(run []index.Entry) []index.Entry {
	for i := range run {
		if run[i].Exhausted() {
			return run[:i]
		}
	}
	return run
}
