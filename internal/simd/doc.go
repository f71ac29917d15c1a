// Package simd provides CPU capability detection and per-kernel dispatch.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2, SSE4.1, SSE2
//   - ARM64: NEON, SVE2
//
// Capabilities are ranked into tiers (scalar < tier-1 < ... < tier-4).
// A Kernel carries one implementation per tier and resolves the best one
// for the running CPU on first use. Set OOO_SIMD to force a lower ISA.
//
// # Guarantees
//
// Every tier of a kernel is observably equivalent to its scalar
// implementation on identical input. Detection never fails; the scalar tier
// is always available.
package simd
