package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterNames(t *testing.T) {
	assert.Equal(t, "sort_index", SortIndex.String())
	assert.Equal(t, "reshuffle_256", Reshuffle256.String())
	assert.Equal(t, "unused", Counter(1).String())
	assert.Equal(t, "unused", Counter(-1).String())
	assert.Equal(t, "unused", Counter(NumCounters).String())
	assert.True(t, ShiftIndex.Valid())
	assert.False(t, Counter(NumCounters).Valid())
}

func TestMeasure(t *testing.T) {
	Reset()
	ran := false
	Measure(SortIndex, func() { ran = true })
	assert.True(t, ran)

	// Out-of-range slots still run the function.
	ran = false
	Measure(Counter(99), func() { ran = true })
	assert.True(t, ran)
	assert.Zero(t, Get(Counter(99)))

	if !Enabled {
		assert.Zero(t, Get(SortIndex))
		assert.Zero(t, Len())
		return
	}
	assert.Equal(t, NumCounters, Len())

	Measure(SortIndex, func() {
		s := 0
		for i := range 1000 {
			s += i
		}
		_ = s
	})
	Reset()
	assert.Zero(t, Get(SortIndex))
}
