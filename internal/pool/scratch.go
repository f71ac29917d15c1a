// Package pool provides reusable scratch buffers for sort passes.
// Uses sync.Pool so repeated sorts of similar size do not reallocate.
package pool

import (
	"sync"

	"github.com/hupe1980/ooo/internal/index"
	"github.com/hupe1980/ooo/internal/mem"
)

// MaxRetained is the largest buffer, in elements, that Put keeps.
// Larger buffers are dropped so one huge sort does not pin memory.
const MaxRetained = 1 << 22

// Scratch is a pool of slices of T.
type Scratch[T any] struct {
	p sync.Pool
}

// Entries holds scratch for index entry sorts.
var Entries Scratch[index.Entry]

// Keys holds scratch for bare key sorts.
var Keys Scratch[uint64]

// Get returns a slice of length n. Its contents are unspecified.
func (s *Scratch[T]) Get(n int) *[]T {
	if v, ok := s.p.Get().(*[]T); ok && cap(*v) >= n {
		*v = (*v)[:n]
		return v
	}
	buf := mem.AllocSlice[T](n)
	return &buf
}

// Put returns buf to the pool.
func (s *Scratch[T]) Put(buf *[]T) {
	if buf == nil || cap(*buf) > MaxRetained {
		return
	}
	s.p.Put(buf)
}
