package simd

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Kernel is a named operation with one implementation per capability tier.
//
// The scalar implementation is mandatory and serves as the correctness
// oracle. Tiers without an implementation fall back to the nearest lower
// tier. Get resolves the implementation for the active ISA on first use and
// caches it for the lifetime of the process.
type Kernel[F any] struct {
	name     string
	tiers    [MaxTier + 1]*F
	resolved atomic.Pointer[resolution[F]]
}

type resolution[F any] struct {
	fn  F
	isa ISA
}

// KernelInfo describes a registered kernel for diagnostics.
type KernelInfo struct {
	Name     string
	Resolved bool
	ISA      ISA
}

type registered interface {
	Name() string
	Resolved() (ISA, bool)
}

var (
	registryMu sync.Mutex
	registry   = map[string]registered{}
)

// NewKernel creates and registers a kernel with its scalar implementation.
// Kernel names must be unique; registering a name twice panics.
func NewKernel[F any](name string, scalar F) *Kernel[F] {
	k := &Kernel[F]{name: name}
	k.tiers[0] = &scalar

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("simd: duplicate kernel " + name)
	}
	registry[name] = k
	return k
}

// With sets the implementation for a tier and returns the kernel.
// It is meant for package-level construction, before any Get call.
func (k *Kernel[F]) With(tier int, fn F) *Kernel[F] {
	if tier <= 0 || tier > MaxTier {
		panic("simd: tier out of range for " + k.name)
	}
	k.tiers[tier] = &fn
	return k
}

// Name returns the kernel name.
func (k *Kernel[F]) Name() string {
	return k.name
}

// For returns the implementation for the given ISA without touching the cache.
func (k *Kernel[F]) For(isa ISA) F {
	for t := isa.Tier(); t > 0; t-- {
		if fn := k.tiers[t]; fn != nil {
			return *fn
		}
	}
	return *k.tiers[0]
}

// Scalar returns the scalar implementation.
func (k *Kernel[F]) Scalar() F {
	return *k.tiers[0]
}

// Get returns the implementation for the active ISA.
//
// Concurrent first calls may both resolve; resolution is a pure function of
// the active ISA, and only one result is published with a compare-and-swap,
// so every caller observes the same complete selection.
func (k *Kernel[F]) Get() F {
	if r := k.resolved.Load(); r != nil {
		return r.fn
	}
	isa := ActiveISA()
	r := &resolution[F]{fn: k.For(isa), isa: isa}
	if !k.resolved.CompareAndSwap(nil, r) {
		r = k.resolved.Load()
	}
	return r.fn
}

// Resolved reports the cached ISA and whether Get has run.
func (k *Kernel[F]) Resolved() (ISA, bool) {
	r := k.resolved.Load()
	if r == nil {
		return Generic, false
	}
	return r.isa, true
}

// Registry returns every registered kernel sorted by name.
func Registry() []KernelInfo {
	registryMu.Lock()
	out := make([]KernelInfo, 0, len(registry))
	for name, k := range registry {
		isa, ok := k.Resolved()
		out = append(out, KernelInfo{Name: name, Resolved: ok, ISA: isa})
	}
	registryMu.Unlock()

	slices.SortFunc(out, func(a, b KernelInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Selector chooses between the process-wide cached selection and an
// explicitly pinned ISA.
type Selector struct {
	isa    ISA
	pinned bool
}

// Auto selects kernels through the process-wide cache.
func Auto() Selector {
	return Selector{}
}

// Pinned selects kernels for isa on every call, bypassing the cache.
// An ISA the CPU does not support is still honored; the kernels in this
// module are portable Go and only differ in unrolling.
func Pinned(isa ISA) Selector {
	return Selector{isa: isa, pinned: true}
}

// ISA returns the ISA the selector resolves to.
func (s Selector) ISA() ISA {
	if s.pinned {
		return s.isa
	}
	return ActiveISA()
}

// IsPinned reports whether the selector bypasses the cache.
func (s Selector) IsPinned() bool {
	return s.pinned
}

// Select resolves k through s.
func Select[F any](s Selector, k *Kernel[F]) F {
	if s.pinned {
		return k.For(s.isa)
	}
	return k.Get()
}
