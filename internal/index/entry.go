package index

import (
	"math"
	"unsafe"
)

// Sentinel is the exhaustion key. Real timestamps are strictly smaller.
const Sentinel int64 = math.MaxInt64

// Side identifies the source of a row in a two-source merge.
type Side uint8

const (
	// SideExisting is the already ordered data.
	SideExisting Side = 0
	// SideOOO is the out-of-order batch.
	SideOOO Side = 1
)

const (
	sideShift = 63
	rowMask   = uint64(1)<<sideShift - 1
)

// Entry is one row of an index: a sortable key and the row it came from.
//
// The layout (key first, 16 bytes) matches the flat index buffers exchanged
// with callers.
type Entry struct {
	Ts  int64
	Row uint64
}

// EntrySize is the size of an Entry in bytes.
const EntrySize = int(unsafe.Sizeof(Entry{}))

// Tag builds a provenance tag for row on side.
func Tag(row uint64, side Side) uint64 {
	return row&rowMask | uint64(side)<<sideShift
}

// Side returns the source side encoded in the tag.
func (e Entry) Side() Side {
	return Side(e.Row >> sideShift)
}

// RowID returns the row number without the side bit.
func (e Entry) RowID() uint64 {
	return e.Row & rowMask
}

// Exhausted reports whether the entry carries the sentinel key.
func (e Entry) Exhausted() bool {
	return e.Ts == Sentinel
}

// MarkSide tags every entry of a run with side, keeping the row numbers.
func MarkSide(entries []Entry, side Side) {
	for i := range entries {
		entries[i].Row = Tag(entries[i].Row, side)
	}
}

// IsSorted reports whether entries are in ascending key order.
func IsSorted(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].Ts < entries[i-1].Ts {
			return false
		}
	}
	return true
}

// FromBytes reinterprets a flat byte buffer as entries. The buffer length
// must be a multiple of EntrySize and the buffer 8-byte aligned.
func FromBytes(b []byte) []Entry {
	if len(b) < EntrySize {
		return nil
	}
	return unsafe.Slice((*Entry)(unsafe.Pointer(&b[0])), len(b)/EntrySize) //nolint:gosec // caller-described buffer
}

// Bytes reinterprets entries as a flat byte buffer.
func Bytes(entries []Entry) []byte {
	if len(entries) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&entries[0])), len(entries)*EntrySize) //nolint:gosec // same memory, byte view
}
