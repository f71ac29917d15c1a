package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ooo/internal/index"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(4711).Keys(16, 0, 1000)
	b := NewRNG(4711).Keys(16, 0, 1000)
	assert.Equal(t, a, b)

	rng := NewRNG(4711)
	first := rng.Keys(16, 0, 1000)
	rng.Reset()
	assert.Equal(t, first, rng.Keys(16, 0, 1000))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestKeysRange(t *testing.T) {
	keys := NewRNG(1).Keys(1000, -50, 50)
	for _, k := range keys {
		assert.GreaterOrEqual(t, k, int64(-50))
		assert.Less(t, k, int64(50))
	}
}

func TestSortedRun(t *testing.T) {
	run := NewRNG(2).SortedRun(500, 100, 3)
	require.Len(t, run, 500)
	assert.Equal(t, int64(100), run[0].Ts)
	assert.True(t, index.IsSorted(run))
	for i, e := range run {
		assert.Equal(t, uint64(i), e.Row)
	}
}

func TestPermutation(t *testing.T) {
	perm := NewRNG(3).Permutation(64)
	seen := make(map[uint64]bool)
	for _, e := range perm {
		seen[e.Row] = true
	}
	assert.Len(t, seen, 64)
}

func TestMergeIndex(t *testing.T) {
	idx := NewRNG(5).MergeIndex(10, 7)
	require.Len(t, idx, 17)

	var next [2]uint64
	for _, e := range idx {
		s := e.Side()
		assert.Equal(t, next[s], e.RowID())
		next[s]++
	}
	assert.Equal(t, [2]uint64{10, 7}, next)
}

func TestReferenceMergeStable(t *testing.T) {
	a := []index.Entry{{Ts: 1, Row: index.Tag(0, index.SideExisting)}, {Ts: 2, Row: index.Tag(1, index.SideExisting)}}
	b := []index.Entry{{Ts: 1, Row: index.Tag(0, index.SideOOO)}}
	got := ReferenceMerge(a, b)
	assert.Equal(t, []index.Entry{a[0], b[0], a[1]}, got)
}

func TestIdentityAndKeys(t *testing.T) {
	id := Identity(4)
	assert.Equal(t, []int64{0, 1, 2, 3}, KeysOf(id))
	assert.Equal(t, []int64{1, 2, 3}, SortedKeys([]int64{3, 1, 2}))
}
