package testutil

import (
	"cmp"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/ooo/internal/index"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Keys returns n keys drawn uniformly from [lo, hi).
func (r *RNG) Keys(n int, lo, hi int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := hi - lo
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = lo + r.rand.Int63n(span)
	}
	return keys
}

// Entries returns n entries with random keys in [lo, hi) and rows 0..n-1.
func (r *RNG) Entries(n int, lo, hi int64) []index.Entry {
	keys := r.Keys(n, lo, hi)
	entries := make([]index.Entry, n)
	for i, k := range keys {
		entries[i] = index.Entry{Ts: k, Row: uint64(i)}
	}
	return entries
}

// SortedRun returns an ascending run of n entries starting at start. Each key
// advances by a random step in [0, maxStep], so duplicates occur when
// maxStep allows zero steps. Rows are 0..n-1.
func (r *RNG) SortedRun(n int, start, maxStep int64) []index.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	run := make([]index.Entry, n)
	ts := start
	for i := range run {
		run[i] = index.Entry{Ts: ts, Row: uint64(i)}
		ts += r.rand.Int63n(maxStep + 1)
	}
	return run
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Permutation returns a random permutation of rows 0..n-1 as index entries
// whose keys equal their destination slot.
func (r *RNG) Permutation(n int) []index.Entry {
	r.mu.Lock()
	perm := r.rand.Perm(n)
	r.mu.Unlock()

	entries := make([]index.Entry, n)
	for i, p := range perm {
		entries[i] = index.Entry{Ts: int64(i), Row: uint64(p)}
	}
	return entries
}

// MergeIndex returns a random two-source merge index drawing every row of a
// source with na rows and a source with nb rows exactly once, each source in
// row order.
func (r *RNG) MergeIndex(na, nb int) []index.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]index.Entry, 0, na+nb)
	var ia, ib int
	for ia < na || ib < nb {
		takeA := ib >= nb || (ia < na && r.rand.Intn(na+nb) < na)
		if takeA {
			out = append(out, index.Entry{Ts: int64(len(out)), Row: index.Tag(uint64(ia), index.SideExisting)})
			ia++
		} else {
			out = append(out, index.Entry{Ts: int64(len(out)), Row: index.Tag(uint64(ib), index.SideOOO)})
			ib++
		}
	}
	return out
}

// Identity returns the identity permutation of n rows.
func Identity(n int) []index.Entry {
	entries := make([]index.Entry, n)
	for i := range entries {
		entries[i] = index.Entry{Ts: int64(i), Row: uint64(i)}
	}
	return entries
}

// SortedKeys returns an ascending copy of keys.
func SortedKeys(keys []int64) []int64 {
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}

// KeysOf extracts the keys of entries.
func KeysOf(entries []index.Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Ts
	}
	return out
}

// ReferenceMerge concatenates runs and stable-sorts by key, which is the
// result a k-way merge that breaks ties by run order must produce.
func ReferenceMerge(runs ...[]index.Entry) []index.Entry {
	var out []index.Entry
	for _, run := range runs {
		out = append(out, run...)
	}
	slices.SortStableFunc(out, func(a, b index.Entry) int {
		return cmp.Compare(a.Ts, b.Ts)
	})
	return out
}
