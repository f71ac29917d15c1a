package simd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sumFunc func([]int64) int64

func sumScalar(v []int64) int64 {
	var s int64
	for _, x := range v {
		s += x
	}
	return s
}

func sumPairs(v []int64) int64 {
	var s0, s1 int64
	i := 0
	for ; i+2 <= len(v); i += 2 {
		s0 += v[i]
		s1 += v[i+1]
	}
	for ; i < len(v); i++ {
		s0 += v[i]
	}
	return s0 + s1
}

func TestKernelFallback(t *testing.T) {
	var calls [MaxTier + 1]int
	k := NewKernel("test_fallback", func() { calls[0]++ }).
		With(2, func() { calls[2]++ })

	k.For(Generic)()
	k.For(SSE2)()  // tier 1 -> scalar
	k.For(SSE41)() // tier 2
	k.For(AVX2)()  // tier 3 -> tier 2
	k.For(AVX512)()

	assert.Equal(t, 2, calls[0])
	assert.Equal(t, 3, calls[2])
}

func TestKernelTiersAgree(t *testing.T) {
	k := NewKernel[sumFunc]("test_sum", sumScalar).With(3, sumPairs)
	in := []int64{1, 2, 3, 4, 5, 6, 7}

	for isa := Generic; isa < numISA; isa++ {
		assert.Equal(t, int64(28), k.For(isa)(in), isa.String())
	}
	assert.Equal(t, int64(28), k.Scalar()(in))
}

func TestKernelGetCachesOnce(t *testing.T) {
	k := NewKernel[sumFunc]("test_cache", sumScalar).With(1, sumPairs)

	_, ok := k.Resolved()
	require.False(t, ok)

	var wg sync.WaitGroup
	results := make([]int64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = k.Get()([]int64{1, 2, 3})
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, int64(6), r)
	}

	isa, ok := k.Resolved()
	require.True(t, ok)
	assert.Equal(t, ActiveISA(), isa)
}

func TestKernelRegistry(t *testing.T) {
	k := NewKernel[sumFunc]("test_registry", sumScalar)
	k.Get()

	var found bool
	infos := Registry()
	for i, info := range infos {
		if i > 0 {
			assert.Less(t, infos[i-1].Name, info.Name)
		}
		if info.Name == "test_registry" {
			found = true
			assert.True(t, info.Resolved)
			assert.Equal(t, ActiveISA(), info.ISA)
		}
	}
	assert.True(t, found)
}

func TestKernelDuplicateNamePanics(t *testing.T) {
	NewKernel[sumFunc]("test_dup", sumScalar)
	assert.Panics(t, func() { NewKernel[sumFunc]("test_dup", sumScalar) })
}

func TestKernelWithRejectsBadTier(t *testing.T) {
	k := NewKernel[sumFunc]("test_bad_tier", sumScalar)
	assert.Panics(t, func() { k.With(0, sumPairs) })
	assert.Panics(t, func() { k.With(MaxTier+1, sumPairs) })
}

func TestSelector(t *testing.T) {
	k := NewKernel[sumFunc]("test_selector", sumScalar).With(4, sumPairs)

	auto := Auto()
	assert.False(t, auto.IsPinned())
	assert.Equal(t, ActiveISA(), auto.ISA())
	assert.Equal(t, int64(10), Select(auto, k)([]int64{1, 2, 3, 4}))

	pinned := Pinned(AVX512)
	assert.True(t, pinned.IsPinned())
	assert.Equal(t, AVX512, pinned.ISA())
	assert.Equal(t, int64(10), Select(pinned, k)([]int64{1, 2, 3, 4}))

	_, resolved := k.Resolved()
	assert.True(t, resolved, "auto selection populates the cache")
}
