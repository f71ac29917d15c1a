package ooo

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/ooo/internal/column"
	"github.com/hupe1980/ooo/internal/conv"
	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/mem"
	"github.com/hupe1980/ooo/internal/resource"
)

// MergedIndex is an engine-allocated merge result. Its memory is accounted
// against the engine's memory limit until Free is called.
//
// Free must not race with other methods of the same handle.
type MergedIndex struct {
	entries []Entry
	res     *resource.Reservation
}

func newMergedIndex(rc *resource.Controller, n int) (*MergedIndex, error) {
	res, err := rc.Reserve(mem.SizeOf[Entry](n))
	if err != nil {
		return nil, err
	}
	return &MergedIndex{
		entries: mem.AllocSlice[Entry](n),
		res:     res,
	}, nil
}

// Entries returns the merged entries. The slice is owned by the handle and
// is invalid after Free.
func (m *MergedIndex) Entries() ([]Entry, error) {
	if m.res.Released() {
		return nil, ErrFreed
	}
	return m.entries, nil
}

// Len returns the number of merged entries, or 0 after Free.
func (m *MergedIndex) Len() int {
	return len(m.entries)
}

// SideSlots returns the destination slots filled from side. Consecutive
// slots are stored as ranges.
func (m *MergedIndex) SideSlots(side Side) (*roaring64.Bitmap, error) {
	if m.res.Released() {
		return nil, ErrFreed
	}
	return index.SideSlots(m.entries, side), nil
}

// Timestamps copies the merged keys into dst.
func (m *MergedIndex) Timestamps(dst []int64) error {
	if m.res.Released() {
		return ErrFreed
	}
	if len(dst) < len(m.entries) {
		return ErrShortBuffer
	}
	index.CopyTimestamps(m.entries, dst)
	return nil
}

// Bytes returns the flat byte view of the merged entries.
func (m *MergedIndex) Bytes() ([]byte, error) {
	if m.res.Released() {
		return nil, ErrFreed
	}
	return index.Bytes(m.entries), nil
}

// Free releases the handle's memory. Calling Free more than once is a no-op.
func (m *MergedIndex) Free() {
	if m.res.Release() {
		m.entries = nil
	}
}

// VarColumn is an engine-allocated variable-length column with 64-bit
// offsets. Its memory is accounted against the engine's memory limit until
// Free is called.
type VarColumn struct {
	col  VarColumn64
	size int64
	res  *resource.Reservation
}

func newVarColumn(rc *resource.Controller, rows int, size int64) (*VarColumn, error) {
	n, err := conv.Int64ToInt(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOffsetOverflow, err)
	}
	res, err := rc.Reserve(mem.SizeOf[int64](rows+1) + size)
	if err != nil {
		return nil, err
	}
	return &VarColumn{
		col: column.VarColumn64{
			Offsets: mem.AllocSlice[int64](rows + 1),
			Data:    mem.AllocAligned(n),
		},
		size: size,
		res:  res,
	}, nil
}

// Column returns the offsets and bytes. The slices are owned by the handle
// and are invalid after Free.
func (v *VarColumn) Column() (VarColumn64, error) {
	if v.res.Released() {
		return VarColumn64{}, ErrFreed
	}
	return v.col, nil
}

// Size returns the number of value bytes.
func (v *VarColumn) Size() int64 {
	return v.size
}

// Rows returns the number of values, or 0 after Free.
func (v *VarColumn) Rows() int {
	return v.col.Rows()
}

// Free releases the handle's memory. Calling Free more than once is a no-op.
func (v *VarColumn) Free() {
	if v.res.Release() {
		v.col = VarColumn64{}
	}
}
