package ooo

import (
	"github.com/hupe1980/ooo/internal/column"
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/simd"
	"github.com/hupe1980/ooo/internal/sorter"
)

type (
	// Entry is one row of an index: a sortable key and the row it came from.
	// In two-source merge indexes the top bit of Row names the side.
	Entry = index.Entry

	// Side identifies the source of a row in a two-source merge.
	Side = index.Side

	// Direction selects which boundary BinarySearch reports.
	Direction = index.Direction

	// Width is the element width of a fixed-width column in bits.
	Width = column.Width

	// Long256 is a 256-bit value stored as four 64-bit words.
	Long256 = column.Long256

	// Fixed is the set of element types a Buffer can be built from.
	Fixed = column.Fixed

	// Buffer describes a fixed-width column: raw bytes plus element width.
	Buffer = column.Buffer

	// VarColumn32 is a variable-length column with 32-bit offsets.
	VarColumn32 = column.VarColumn32

	// VarColumn64 is a variable-length column with 64-bit offsets.
	VarColumn64 = column.VarColumn64

	// ISA is a CPU capability level used for kernel selection.
	ISA = simd.ISA

	// KernelInfo describes a registered kernel.
	KernelInfo = simd.KernelInfo

	// Key128 is a signed 128-bit sort key stored as two 64-bit words.
	Key128 = sorter.Key128
)

const (
	// SideExisting marks rows of the already ordered data.
	SideExisting = index.SideExisting
	// SideOOO marks rows of the out-of-order batch.
	SideOOO = index.SideOOO

	// ScanForward makes BinarySearch report the first match or the next
	// greater key.
	ScanForward = index.ScanForward
	// ScanBackward makes BinarySearch report the last match or the previous
	// smaller key.
	ScanBackward = index.ScanBackward

	// W8 is the width of 8-bit columns.
	W8 = column.W8
	// W16 is the width of 16-bit columns.
	W16 = column.W16
	// W32 is the width of 32-bit columns.
	W32 = column.W32
	// W64 is the width of 64-bit columns.
	W64 = column.W64
	// W256 is the width of 256-bit columns.
	W256 = column.W256

	// ISAGeneric is the portable scalar tier.
	ISAGeneric = simd.Generic
	// ISASSE2 is x86-64 SSE2.
	ISASSE2 = simd.SSE2
	// ISASSE41 is x86-64 SSE4.1.
	ISASSE41 = simd.SSE41
	// ISAAVX2 is x86-64 AVX2.
	ISAAVX2 = simd.AVX2
	// ISAAVX512 is x86-64 AVX-512.
	ISAAVX512 = simd.AVX512
	// ISANEON is ARM64 NEON.
	ISANEON = simd.NEON
	// ISASVE2 is ARM64 SVE2.
	ISASVE2 = simd.SVE2

	// Sentinel is the reserved exhaustion key; real keys are smaller.
	Sentinel = index.Sentinel

	// EntrySize is the size of an Entry in bytes.
	EntrySize = index.EntrySize

	// SortThreshold is the run length from which sorting uses radix sort.
	SortThreshold = sorter.Threshold
)

// Tag builds the Row value of a two-source merge index entry.
func Tag(row uint64, side Side) uint64 {
	return index.Tag(row, side)
}

// BufferOf wraps a typed slice without copying.
func BufferOf[T Fixed](v []T) Buffer {
	return column.BufferOf(v)
}

// View reinterprets the bytes of a buffer as a typed slice.
func View[T Fixed](b Buffer) []T {
	return column.View[T](b.Data)
}

// EntriesFromBytes reinterprets a flat, 8-byte aligned index buffer.
func EntriesFromBytes(b []byte) []Entry {
	return index.FromBytes(b)
}

// EntryBytes returns the flat byte view of entries.
func EntryBytes(entries []Entry) []byte {
	return index.Bytes(entries)
}

// ParseISA parses an ISA name such as "avx2" or "scalar".
func ParseISA(s string) (ISA, bool) {
	return simd.ParseISA(s)
}

// SupportedISAs returns every ISA the running CPU supports.
func SupportedISAs() []ISA {
	return simd.Supported()
}

// KernelRegistry lists every kernel with its cached selection.
func KernelRegistry() []KernelInfo {
	return simd.Registry()
}
