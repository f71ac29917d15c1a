package column

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrUnsupportedWidth is returned for element widths without a kernel.
	ErrUnsupportedWidth = errors.New("column: unsupported width")
	// ErrWidthMismatch is returned when buffers of one call differ in width.
	ErrWidthMismatch = errors.New("column: width mismatch")
)

// Width is the element width of a fixed-width column in bits.
type Width uint16

const (
	W8   Width = 8
	W16  Width = 16
	W32  Width = 32
	W64  Width = 64
	W256 Width = 256
)

// Widths lists every supported width.
var Widths = []Width{W8, W16, W32, W64, W256}

// Bytes returns the element size in bytes.
func (w Width) Bytes() int {
	return int(w) / 8
}

// Valid reports whether w has kernels.
func (w Width) Valid() bool {
	switch w {
	case W8, W16, W32, W64, W256:
		return true
	default:
		return false
	}
}

func (w Width) String() string {
	return fmt.Sprintf("%dbit", uint16(w))
}

// WidthOfBytes maps an element size in bytes to a Width.
func WidthOfBytes(n int) (Width, error) {
	w := Width(n * 8)
	if n <= 0 || !w.Valid() {
		return 0, fmt.Errorf("%w: %d bytes", ErrUnsupportedWidth, n)
	}
	return w, nil
}

// Long256 is a 256-bit value stored as four 64-bit words.
type Long256 [4]uint64

// Fixed is the set of element types with a fixed-width kernel.
type Fixed interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 |
		~int64 | ~uint64 | ~float64 | Long256
}

// Buffer describes a fixed-width column: raw bytes plus element width.
type Buffer struct {
	Data  []byte
	Width Width
}

// Len returns the number of whole elements in the buffer.
func (b Buffer) Len() int {
	if !b.Width.Valid() {
		return 0
	}
	return len(b.Data) / b.Width.Bytes()
}

// BufferOf wraps a typed slice without copying.
func BufferOf[T Fixed](v []T) Buffer {
	var zero T
	size := int(unsafe.Sizeof(zero))
	w := Width(size * 8)
	if len(v) == 0 {
		return Buffer{Width: w}
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*size) //nolint:gosec // byte view of the same memory
	return Buffer{Data: data, Width: w}
}

// View reinterprets b as a slice of T. The byte length is truncated to a
// whole number of elements.
func View[T Fixed](b []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	n := len(b) / size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n) //nolint:gosec // caller-described buffer
}
