package merge

import (
	"math/bits"

	"github.com/hupe1980/ooo/internal/index"
)

type node struct {
	key  int64
	leaf int
}

type cursor struct {
	run []index.Entry
	pos int
}

// Tree is a tournament tree over a fixed set of runs. It lives for the
// duration of one merge and is not safe for concurrent use.
type Tree struct {
	// nodes[1] is the root; leaves occupy nodes[width:2*width].
	nodes []node
	runs  []cursor
	width int
	live  int
}

// NewTree seeds a tree with the head of every run. Nil and empty runs are
// exhausted from the start, and a run ends at its first entry carrying the
// Sentinel key.
func NewTree(runs [][]index.Entry) *Tree {
	width := nextPow2(len(runs))
	t := &Tree{
		nodes: make([]node, 2*width),
		runs:  make([]cursor, width),
		width: width,
	}

	for i := range width {
		key := index.Sentinel
		if i < len(runs) && len(runs[i]) > 0 && !runs[i][0].Exhausted() {
			t.runs[i].run = runs[i]
			key = runs[i][0].Ts
			t.live++
		}
		t.nodes[width+i] = node{key: key, leaf: i}
	}

	for p := width - 1; p >= 1; p-- {
		t.nodes[p] = t.match(p)
	}
	return t
}

// Live returns the number of runs that still hold entries.
func (t *Tree) Live() int {
	return t.live
}

// Pop removes and returns the smallest head entry across all runs.
// It returns false once every run is exhausted.
func (t *Tree) Pop() (index.Entry, bool) {
	e, _, ok := t.PopRun()
	return e, ok
}

// PopRun is Pop that also reports which run the entry came from.
func (t *Tree) PopRun() (index.Entry, int, bool) {
	if t.live == 0 || t.nodes[1].key == index.Sentinel {
		return index.Entry{}, -1, false
	}

	w := t.nodes[1].leaf
	c := &t.runs[w]
	e := c.run[c.pos]
	c.pos++

	key := index.Sentinel
	if c.pos < len(c.run) && !c.run[c.pos].Exhausted() {
		key = c.run[c.pos].Ts
	} else {
		t.live--
	}
	t.replay(w, key)
	return e, w, true
}

// replay refreshes leaf w with key and recomputes its ancestors.
func (t *Tree) replay(w int, key int64) {
	p := t.width + w
	t.nodes[p].key = key
	for p > 1 {
		p >>= 1
		t.nodes[p] = t.match(p)
	}
}

// match returns the winner of node p's children.
func (t *Tree) match(p int) node {
	l, r := t.nodes[2*p], t.nodes[2*p+1]
	if r.key < l.key {
		return r
	}
	return l
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
