package perf

// Counter addresses one accumulated timing slot.
type Counter int

// Counter slots. The numbering is stable; callers read counters by index.
const (
	MergeVar32 Counter = 0

	MergeVar64      Counter = 3
	SortIndex       Counter = 4
	Reshuffle32     Counter = 5
	Reshuffle64     Counter = 6
	Reshuffle16     Counter = 7
	Reshuffle8      Counter = 8
	MergeShuffle8   Counter = 9
	MergeShuffle16  Counter = 10
	MergeShuffle32  Counter = 11
	MergeShuffle64  Counter = 12
	MergeIndexes    Counter = 13
	ReshuffleVar    Counter = 14
	SortKeys        Counter = 15
	MergeColumns    Counter = 16
	FlattenIndex    Counter = 17
	MakeIndex       Counter = 18
	FillInt64       Counter = 19
	FillInt32       Counter = 20
	FillFloat64     Counter = 21
	FillFloat32     Counter = 22
	FillInt16       Counter = 23
	SetVarRefs32    Counter = 24
	SetVarRefs64    Counter = 25
	CopyIndex       Counter = 26
	ShiftCopy       Counter = 27
	CopyTimestamps  Counter = 28
	MergeShuffle256 Counter = 29
	Reshuffle256    Counter = 30
	ShiftIndex      Counter = 31
)

// NumCounters is the number of counter slots.
const NumCounters = 32

var names = [NumCounters]string{
	MergeVar32:      "merge_var_32",
	MergeVar64:      "merge_var_64",
	SortIndex:       "sort_index",
	Reshuffle32:     "reshuffle_32",
	Reshuffle64:     "reshuffle_64",
	Reshuffle16:     "reshuffle_16",
	Reshuffle8:      "reshuffle_8",
	MergeShuffle8:   "merge_shuffle_8",
	MergeShuffle16:  "merge_shuffle_16",
	MergeShuffle32:  "merge_shuffle_32",
	MergeShuffle64:  "merge_shuffle_64",
	MergeIndexes:    "merge_indexes",
	ReshuffleVar:    "reshuffle_var",
	SortKeys:        "sort_keys",
	MergeColumns:    "merge_columns",
	FlattenIndex:    "flatten_index",
	MakeIndex:       "make_index",
	FillInt64:       "fill_int64",
	FillInt32:       "fill_int32",
	FillFloat64:     "fill_float64",
	FillFloat32:     "fill_float32",
	FillInt16:       "fill_int16",
	SetVarRefs32:    "set_var_refs_32",
	SetVarRefs64:    "set_var_refs_64",
	CopyIndex:       "copy_index",
	ShiftCopy:       "shift_copy",
	CopyTimestamps:  "copy_timestamps",
	MergeShuffle256: "merge_shuffle_256",
	Reshuffle256:    "reshuffle_256",
	ShiftIndex:      "shift_index",
}

// String returns the slot name, or "unused" for reserved slots.
func (c Counter) String() string {
	if c < 0 || c >= NumCounters || names[c] == "" {
		return "unused"
	}
	return names[c]
}

// Valid reports whether c addresses a slot.
func (c Counter) Valid() bool {
	return c >= 0 && c < NumCounters
}
