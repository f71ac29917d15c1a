package ooo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ooo/internal/column"
	"github.com/hupe1980/ooo/internal/resource"
)

var (
	// ErrWidthMismatch is returned when the buffers of one call differ in width.
	ErrWidthMismatch = errors.New("width mismatch")

	// ErrShortBuffer is returned when a destination cannot hold the result.
	ErrShortBuffer = errors.New("destination buffer too short")

	// ErrInvalidRange is returned for lo/hi bounds outside the input.
	ErrInvalidRange = errors.New("invalid range")

	// ErrFreed is returned when a freed handle is used.
	ErrFreed = errors.New("handle already freed")

	// ErrOffsetOverflow is returned when a merge with 32-bit offsets would
	// write past the largest 32-bit offset.
	ErrOffsetOverflow = errors.New("offset overflows 32 bits")

	// ErrRowOutOfRange is returned by debug checks for an index entry that
	// names a row its source does not have.
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrNonMonotonicOffsets is returned by debug checks for a variable-length
	// column whose offsets decrease or leave its data.
	ErrNonMonotonicOffsets = errors.New("offsets not monotonic")

	// ErrNotSorted is returned by debug checks for a merge input that is not
	// ascending.
	ErrNotSorted = errors.New("run not sorted")

	// ErrSentinelKey is returned by debug checks for a data key equal to
	// Sentinel, which is reserved for marking the end of a run.
	ErrSentinelKey = errors.New("key equals the exhaustion sentinel")

	// ErrKernelMismatch is returned by debug checks when a dispatched kernel
	// disagrees with the scalar implementation.
	ErrKernelMismatch = errors.New("kernel output differs from scalar")

	// ErrMemoryLimitExceeded is returned when an allocation would exceed the
	// configured memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrUnsupportedWidth indicates an element width without kernels.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnsupportedWidth struct {
	Width Width
	cause error
}

func (e *ErrUnsupportedWidth) Error() string {
	return fmt.Sprintf("unsupported width: %d bits", uint16(e.Width))
}

func (e *ErrUnsupportedWidth) Unwrap() error { return e.cause }

// ErrRowReference carries the slot of an invalid index entry.
type ErrRowReference struct {
	Slot  int
	Row   uint64
	Side  Side
	Limit int
}

func (e *ErrRowReference) Error() string {
	return fmt.Sprintf("slot %d: row %d of side %d out of range [0, %d)", e.Slot, e.Row, e.Side, e.Limit)
}

func (e *ErrRowReference) Unwrap() error { return ErrRowOutOfRange }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, column.ErrUnsupportedWidth) {
		return &ErrUnsupportedWidth{cause: err}
	}
	if errors.Is(err, column.ErrWidthMismatch) {
		return fmt.Errorf("%w: %w", ErrWidthMismatch, err)
	}

	return err
}
