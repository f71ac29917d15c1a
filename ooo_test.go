package ooo

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ooo/testutil"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		e := newEngine(t)
		assert.True(t, e.ISA().Valid())
		assert.Contains(t, SupportedISAs(), ISAGeneric)
		assert.False(t, e.DebugChecks())
		assert.Zero(t, e.MemoryUsage())
	})

	t.Run("PinnedISA", func(t *testing.T) {
		e := newEngine(t, WithISA(ISAAVX2))
		assert.Equal(t, ISAAVX2, e.ISA())

		e = newEngine(t, WithISA(ISAAVX2), WithAutoISA())
		assert.True(t, e.ISA().Valid())
	})

	t.Run("InvalidISA", func(t *testing.T) {
		_, err := New(WithISA(ISA(99)))
		require.Error(t, err)
	})

	t.Run("NegativeLimits", func(t *testing.T) {
		_, err := New(WithMemoryLimit(-1))
		require.ErrorIs(t, err, ErrInvalidRange)
		_, err = New(WithMaxWorkers(-2))
		require.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestSortIndex(t *testing.T) {
	e := newEngine(t)

	t.Run("Small", func(t *testing.T) {
		entries := []Entry{{Ts: 5}, {Ts: 3}, {Ts: 1}, {Ts: 4}, {Ts: 2}}
		e.SortIndex(entries)
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, testutil.KeysOf(entries))
	})

	rng := testutil.NewRNG(42)
	for _, n := range []int{SortThreshold - 1, SortThreshold, 1000} {
		entries := rng.Entries(n, -1<<40, 1<<40)
		want := testutil.SortedKeys(testutil.KeysOf(entries))
		e.SortIndex(entries)
		assert.Equal(t, want, testutil.KeysOf(entries), "n=%d", n)
	}
}

func TestSortKeys(t *testing.T) {
	e := newEngine(t)
	rng := testutil.NewRNG(7)
	keys := make([]uint64, 1200)
	for i := range keys {
		keys[i] = rng.Uint64()
	}
	want := slices.Clone(keys)
	slices.Sort(want)

	e.SortKeys(keys)
	assert.Equal(t, want, keys)
}

func TestSortKeys128(t *testing.T) {
	e := newEngine(t)
	keys := []Key128{{Lo: 1, Hi: 0}, {Lo: 9, Hi: -1}, {Lo: 0, Hi: 0}, {Lo: 2, Hi: 5}}
	e.SortKeys128(keys)
	assert.Equal(t, []Key128{{Lo: 9, Hi: -1}, {Lo: 0, Hi: 0}, {Lo: 1, Hi: 0}, {Lo: 2, Hi: 5}}, keys)
}

func TestMergeIndexes(t *testing.T) {
	e := newEngine(t)
	a := []Entry{{Ts: 1, Row: 0}, {Ts: 3, Row: 1}, {Ts: 5, Row: 2}}
	b := []Entry{{Ts: 2, Row: 0}, {Ts: 4, Row: 1}, {Ts: 6, Row: 2}}

	m, err := e.MergeIndexes(a, nil, b, []Entry{})
	require.NoError(t, err)
	defer m.Free()

	entries, err := m.Entries()
	require.NoError(t, err)
	assert.Equal(t, []Entry{a[0], b[0], a[1], b[1], a[2], b[2]}, entries)
	assert.Equal(t, 6, m.Len())
}

func TestMergeIndexesAssociative(t *testing.T) {
	e := newEngine(t)
	rng := testutil.NewRNG(9)
	a := rng.SortedRun(40, 0, 5)
	b := rng.SortedRun(25, 10, 7)
	c := rng.SortedRun(60, -20, 3)

	all, err := e.MergeIndexes(a, b, c)
	require.NoError(t, err)
	defer all.Free()

	ab, err := e.MergeIndexes(a, b)
	require.NoError(t, err)
	defer ab.Free()
	abEntries, err := ab.Entries()
	require.NoError(t, err)

	abc, err := e.MergeIndexes(abEntries, c)
	require.NoError(t, err)
	defer abc.Free()

	want, _ := all.Entries()
	got, _ := abc.Entries()
	assert.Equal(t, want, got)
}

func TestMergeTwoIndexes(t *testing.T) {
	e := newEngine(t)
	existing := []Entry{{Ts: 10, Row: 0}, {Ts: 30, Row: 1}}
	batch := []Entry{{Ts: 20, Row: 0}, {Ts: 40, Row: 1}}

	m, err := e.MergeTwoIndexes(existing, batch)
	require.NoError(t, err)
	defer m.Free()

	entries, err := m.Entries()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Ts: 10, Row: Tag(0, SideExisting)},
		{Ts: 20, Row: Tag(0, SideOOO)},
		{Ts: 30, Row: Tag(1, SideExisting)},
		{Ts: 40, Row: Tag(1, SideOOO)},
	}, entries)
	assert.Equal(t, uint64(0), existing[1].Row>>63)
}

func TestReshuffle(t *testing.T) {
	rng := testutil.NewRNG(11)
	const n = 50
	idx := testutil.Identity(n)

	for _, isa := range []ISA{ISAGeneric, ISASSE2, ISAAVX2, ISAAVX512, ISANEON} {
		e := newEngine(t, WithISA(isa), WithDebugChecks(true))
		for _, w := range []Width{W8, W16, W32, W64, W256} {
			src := Buffer{Data: rng.Bytes(n * w.Bytes()), Width: w}
			dst := Buffer{Data: make([]byte, len(src.Data)), Width: w}
			require.NoError(t, e.Reshuffle(src, dst, idx))
			assert.Equal(t, src.Data, dst.Data, "%s/%s", isa, w)
		}
	}
}

func TestReshufflePermutation(t *testing.T) {
	e := newEngine(t, WithDebugChecks(true))
	src := []int64{100, 200, 300}
	dst := make([]int64, 3)
	idx := []Entry{{Ts: 0, Row: 2}, {Ts: 1, Row: 0}, {Ts: 2, Row: 1}}

	require.NoError(t, e.Reshuffle(BufferOf(src), BufferOf(dst), idx))
	assert.Equal(t, []int64{300, 100, 200}, dst)
}

func TestReshuffleErrors(t *testing.T) {
	e := newEngine(t)
	src := BufferOf([]int32{1, 2, 3})

	err := e.Reshuffle(src, BufferOf(make([]int64, 3)), testutil.Identity(3))
	require.ErrorIs(t, err, ErrWidthMismatch)

	err = e.Reshuffle(src, BufferOf(make([]int32, 2)), testutil.Identity(3))
	require.ErrorIs(t, err, ErrShortBuffer)

	bad := Buffer{Data: make([]byte, 6), Width: 24}
	err = e.Reshuffle(bad, bad, nil)
	var uw *ErrUnsupportedWidth
	require.ErrorAs(t, err, &uw)
	assert.Equal(t, Width(24), uw.Width)

	debug := newEngine(t, WithDebugChecks(true))
	err = debug.Reshuffle(src, BufferOf(make([]int32, 3)), []Entry{{Row: 0}, {Row: 3}, {Row: 1}})
	require.ErrorIs(t, err, ErrRowOutOfRange)
	var rr *ErrRowReference
	require.ErrorAs(t, err, &rr)
	assert.Equal(t, 1, rr.Slot)
}

func TestMergeShuffle(t *testing.T) {
	e := newEngine(t, WithDebugChecks(true))
	rng := testutil.NewRNG(12)
	const na, nb = 33, 17
	idx := rng.MergeIndex(na, nb)

	a := make([]int64, na)
	for i := range a {
		a[i] = int64(i)
	}
	b := make([]int64, nb)
	for i := range b {
		b[i] = int64(1000 + i)
	}
	dst := make([]int64, na+nb)
	require.NoError(t, e.MergeShuffle(BufferOf(a), BufferOf(b), BufferOf(dst), idx))

	for i, en := range idx {
		if en.Side() == SideExisting {
			assert.Equal(t, a[en.RowID()], dst[i])
		} else {
			assert.Equal(t, b[en.RowID()], dst[i])
		}
	}

	bad := []Entry{{Row: Tag(nb, SideOOO)}}
	err := e.MergeShuffle(BufferOf(a), BufferOf(b), BufferOf(dst), bad)
	require.ErrorIs(t, err, ErrRowOutOfRange)

	err = e.MergeShuffle(BufferOf(a), BufferOf([]int32{1}), BufferOf(dst), idx)
	require.ErrorIs(t, err, ErrWidthMismatch)
}

func TestMergeVarColumn(t *testing.T) {
	e := newEngine(t, WithDebugChecks(true))
	a := VarColumn64{Offsets: []int64{0, 3, 7}, Data: []byte("foobar!")}
	idx := []Entry{{Ts: 1, Row: Tag(0, SideExisting)}, {Ts: 2, Row: Tag(1, SideExisting)}}

	dst := VarColumn64{Offsets: make([]int64, 3), Data: make([]byte, 7)}
	n, err := e.MergeVarColumn64(idx, a, VarColumn64{}, dst, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, []int64{0, 3, 7}, dst.Offsets)
	assert.Equal(t, "foobar!", string(dst.Data))

	t.Run("ShortData", func(t *testing.T) {
		short := VarColumn64{Offsets: make([]int64, 3), Data: make([]byte, 6)}
		_, err := e.MergeVarColumn64(idx, a, VarColumn64{}, short, 0)
		require.ErrorIs(t, err, ErrShortBuffer)
	})

	t.Run("ShortOffsets", func(t *testing.T) {
		short := VarColumn64{Offsets: make([]int64, 1), Data: make([]byte, 7)}
		_, err := e.MergeVarColumn64(idx, a, VarColumn64{}, short, 0)
		require.ErrorIs(t, err, ErrShortBuffer)
	})

	t.Run("NonMonotonic", func(t *testing.T) {
		broken := VarColumn64{Offsets: []int64{0, 5, 3}, Data: []byte("foobar!")}
		_, err := e.MergeVarColumn64(idx, broken, VarColumn64{}, dst, 0)
		require.ErrorIs(t, err, ErrNonMonotonicOffsets)
	})

	t.Run("Narrow", func(t *testing.T) {
		a32 := VarColumn32{Offsets: []int32{0, 3, 7}, Data: []byte("foobar!")}
		b32 := VarColumn32{Offsets: []int32{0, 2}, Data: []byte("xy")}
		idx := []Entry{
			{Ts: 1, Row: Tag(0, SideExisting)},
			{Ts: 2, Row: Tag(0, SideOOO)},
			{Ts: 3, Row: Tag(1, SideExisting)},
		}
		dst := VarColumn32{Offsets: make([]int32, 4), Data: make([]byte, 12)}
		n, err := e.MergeVarColumn32(idx, a32, b32, dst, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
		assert.Equal(t, []int32{3, 6, 8, 12}, dst.Offsets)
		assert.Equal(t, "fooxybar!", string(dst.Data[3:]))
	})

	t.Run("NegativeCursor", func(t *testing.T) {
		_, err := e.MergeVarColumn64(idx, a, VarColumn64{}, dst, -1)
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("NarrowOffsetOverflow", func(t *testing.T) {
		a32 := VarColumn32{Offsets: []int32{0, 3, 7}, Data: []byte("foobar!")}
		dst := VarColumn32{Offsets: make([]int32, 3), Data: make([]byte, 7)}
		cursor := int64(math.MaxInt32 - 5)
		got, err := e.MergeVarColumn32(idx, a32, VarColumn32{}, dst, cursor)
		require.ErrorIs(t, err, ErrOffsetOverflow)
		assert.Equal(t, cursor, got)

		// The same end offset fits 64-bit offsets; only the buffer is short.
		_, err = e.MergeVarColumn64(idx, a, VarColumn64{}, VarColumn64{Offsets: make([]int64, 3), Data: make([]byte, 7)}, cursor)
		require.ErrorIs(t, err, ErrShortBuffer)
	})
}

func TestMergeVarColumnAlloc(t *testing.T) {
	e := newEngine(t)
	a := VarColumn64{Offsets: []int64{0, 1, 3}, Data: []byte("abb")}
	b := VarColumn64{Offsets: []int64{0, 4}, Data: []byte("cccc")}
	idx := []Entry{
		{Ts: 1, Row: Tag(1, SideExisting)},
		{Ts: 2, Row: Tag(0, SideOOO)},
		{Ts: 3, Row: Tag(0, SideExisting)},
	}

	v, err := e.MergeVarColumnAlloc(idx, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Size())
	assert.Equal(t, 3, v.Rows())
	assert.Positive(t, e.MemoryUsage())

	col, err := v.Column()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 6, 7}, col.Offsets)
	assert.Equal(t, "bbcccca", string(col.Data))

	v.Free()
	v.Free()
	assert.Zero(t, e.MemoryUsage())
	_, err = v.Column()
	require.ErrorIs(t, err, ErrFreed)
}

func TestReshuffleVarColumn(t *testing.T) {
	e := newEngine(t, WithDebugChecks(true))
	src := VarColumn64{Offsets: []int64{0, 2, 2, 5}, Data: []byte("abcde")}
	idx := []Entry{{Row: 2}, {Row: 1}, {Row: 0}}
	dst := VarColumn64{Offsets: make([]int64, 4), Data: make([]byte, 5)}

	n, err := e.ReshuffleVarColumn(idx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, []int64{0, 3, 3, 5}, dst.Offsets)
	assert.Equal(t, "cdeab", string(dst.Data))

	_, err = e.ReshuffleVarColumn(idx, src, VarColumn64{Offsets: make([]int64, 3), Data: make([]byte, 4)})
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestBinarySearch(t *testing.T) {
	e := newEngine(t)
	data := []int64{10, 20, 20, 30}
	hi := len(data) - 1

	tests := []struct {
		name  string
		value int64
		dir   Direction
		want  int
	}{
		{"FirstMatch", 20, ScanForward, 1},
		{"LastMatch", 20, ScanBackward, 2},
		{"AbsentForward", 25, ScanForward, 3},
		{"AbsentBackward", 25, ScanBackward, 2},
		{"BelowMinForward", 5, ScanForward, 0},
		{"BelowMinBackward", 5, ScanBackward, -1},
		{"AboveMaxForward", 35, ScanForward, 4},
		{"AboveMaxBackward", 35, ScanBackward, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.BinarySearch(data, tt.value, 0, hi, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			entries := make([]Entry, len(data))
			require.NoError(t, e.MakeTimestampIndex(data, 0, hi, entries))
			got, err = e.BinarySearchIndex(entries, tt.value, 0, hi, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := e.BinarySearch(data, 1, 0, 4, ScanForward)
	require.ErrorIs(t, err, ErrInvalidRange)
	_, err = e.BinarySearch(data, 1, -1, 2, ScanForward)
	require.ErrorIs(t, err, ErrInvalidRange)

	got, err := e.BinarySearch(nil, 1, 0, -1, ScanForward)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestIndexBuilders(t *testing.T) {
	e := newEngine(t)
	data := []int64{7, 8, 9, 10, 11}

	idx := make([]Entry, 3)
	require.NoError(t, e.MakeTimestampIndex(data, 1, 3, idx))
	assert.Equal(t, []Entry{{Ts: 8, Row: 1}, {Ts: 9, Row: 2}, {Ts: 10, Row: 3}}, idx)
	require.ErrorIs(t, e.MakeTimestampIndex(data, 1, 3, make([]Entry, 2)), ErrShortBuffer)

	shifted := make([]Entry, 3)
	require.NoError(t, e.ShiftTimestampIndex(idx, shifted))
	assert.Equal(t, []Entry{{Ts: 8, Row: 0}, {Ts: 9, Row: 1}, {Ts: 10, Row: 2}}, shifted)

	e.FlattenIndex(idx)
	assert.Equal(t, shifted, idx)

	cp := make([]Entry, 2)
	require.NoError(t, e.CopyIndex(idx, 1, 2, cp))
	assert.Equal(t, idx[1:], cp)

	ts := make([]int64, 2)
	require.NoError(t, e.CopyTimestamps(idx, 0, 1, ts))
	assert.Equal(t, []int64{8, 9}, ts)

	out := make([]int64, 3)
	require.NoError(t, e.ShiftCopy(7, data, 2, 4, out))
	assert.Equal(t, []int64{2, 3, 4}, out)
	require.ErrorIs(t, e.ShiftCopy(7, data, 2, 5, out), ErrInvalidRange)
}

func TestFillsAndRefs(t *testing.T) {
	e := newEngine(t)

	i64 := make([]int64, 9)
	e.FillInt64(i64, 3)
	assert.Equal(t, []int64{3, 3, 3, 3, 3, 3, 3, 3, 3}, i64)

	i32 := make([]int32, 2)
	e.FillInt32(i32, -1)
	assert.Equal(t, []int32{-1, -1}, i32)

	i16 := make([]int16, 3)
	e.FillInt16(i16, 5)
	assert.Equal(t, []int16{5, 5, 5}, i16)

	f64 := make([]float64, 2)
	e.FillFloat64(f64, 0.5)
	assert.Equal(t, []float64{0.5, 0.5}, f64)

	f32 := make([]float32, 2)
	e.FillFloat32(f32, 2)
	assert.Equal(t, []float32{2, 2}, f32)

	b := make([]byte, 4)
	e.FillBytes(b, 0x7f)
	assert.Equal(t, []byte{0x7f, 0x7f, 0x7f, 0x7f}, b)

	refs := make([]int64, 3)
	e.SetVarRefs32(refs, 16)
	assert.Equal(t, []int64{16, 20, 24}, refs)
	e.SetVarRefs64(refs, 16)
	assert.Equal(t, []int64{16, 24, 32}, refs)
}

func TestKernelRegistry(t *testing.T) {
	names := make([]string, 0)
	for _, k := range KernelRegistry() {
		names = append(names, k.Name)
	}
	assert.Contains(t, names, "re_shuffle_int64")
	assert.Contains(t, names, "merge_shuffle_256bit")
	assert.Contains(t, names, "merge_copy_var_column_int32")
	assert.Contains(t, names, "make_timestamp_index")
	assert.True(t, slices.IsSorted(names))
}

func TestMergeIndexesSentinelPadding(t *testing.T) {
	a := []Entry{{Ts: 1, Row: 0}, {Ts: 3, Row: 1}, {Ts: 5, Row: 2}}
	b := []Entry{{Ts: 2, Row: 0}, {Ts: 4, Row: 1}, {Ts: 6, Row: 2}}
	pad := []Entry{{Ts: Sentinel}}

	for _, debug := range []bool{false, true} {
		e := newEngine(t, WithDebugChecks(debug))

		m, err := e.MergeIndexes(a, b, pad)
		require.NoError(t, err)
		entries, err := m.Entries()
		require.NoError(t, err)
		assert.Equal(t, []Entry{a[0], b[0], a[1], b[1], a[2], b[2]}, entries)
		assert.Equal(t, 6, m.Len())
		m.Free()

		m, err = e.MergeIndexes(pad, pad)
		require.NoError(t, err)
		assert.Zero(t, m.Len())
		m.Free()
	}
}

func TestMergeTwoIndexesSentinelRun(t *testing.T) {
	e := newEngine(t, WithDebugChecks(true))
	existing := []Entry{{Ts: 10, Row: 0}, {Ts: 30, Row: 1}}
	pad := []Entry{{Ts: Sentinel}}

	m, err := e.MergeTwoIndexes(existing, pad)
	require.NoError(t, err)
	defer m.Free()
	entries, err := m.Entries()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Ts: 10, Row: Tag(0, SideExisting)},
		{Ts: 30, Row: Tag(1, SideExisting)},
	}, entries)

	empty, err := e.MergeTwoIndexes(nil, pad)
	require.NoError(t, err)
	defer empty.Free()
	assert.Zero(t, empty.Len())
}

func TestMakeTimestampIndexSentinelKey(t *testing.T) {
	data := []int64{1, 2, Sentinel}
	dst := make([]Entry, 3)

	e := newEngine(t, WithDebugChecks(true))
	require.ErrorIs(t, e.MakeTimestampIndex(data, 0, 2, dst), ErrSentinelKey)
	require.NoError(t, e.MakeTimestampIndex(data, 0, 1, dst))

	e = newEngine(t)
	require.NoError(t, e.MakeTimestampIndex(data, 0, 2, dst))
}
