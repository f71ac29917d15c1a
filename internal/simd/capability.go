package simd

import (
	"os"
	"runtime"
	"strings"
)

// ISA represents a SIMD instruction set architecture.
type ISA uint8

const (
	// Generic represents the pure scalar Go implementation.
	Generic ISA = iota
	// SSE2 represents the x86-64 baseline (128-bit SIMD).
	SSE2
	// SSE41 represents x86-64 SSE4.1 (128-bit SIMD with blends and 64-bit compares).
	SSE41
	// AVX2 represents x86-64 AVX2 (256-bit SIMD).
	AVX2
	// AVX512 represents x86-64 AVX-512 (512-bit SIMD, F+BW+VL).
	AVX512
	// NEON represents ARM64 NEON (128-bit SIMD, ASIMD).
	NEON
	// SVE2 represents ARM64 SVE2 (scalable vectors).
	SVE2

	numISA
)

// EnvOverride names the environment variable that forces a specific ISA.
const EnvOverride = "OOO_SIMD"

// MaxTier is the highest capability tier.
const MaxTier = 4

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case SSE2:
		return "sse2"
	case SSE41:
		return "sse41"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case NEON:
		return "neon"
	case SVE2:
		return "sve2"
	default:
		return "unknown"
	}
}

// Valid reports whether i names a known ISA.
func (i ISA) Valid() bool {
	return i < numISA
}

// Tier ranks an ISA on the scalar < tier-1 < tier-2 < tier-3 < tier-4 scale.
// ISAs of different architectures share tiers; kernels are keyed by tier.
func (i ISA) Tier() int {
	switch i {
	case SSE2:
		return 1
	case SSE41, NEON:
		return 2
	case AVX2, SVE2:
		return 3
	case AVX512:
		return 4
	default:
		return 0
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "scalar":
		return Generic, true
	case "sse2":
		return SSE2, true
	case "sse41", "sse4.1":
		return SSE41, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	case "neon":
		return NEON, true
	case "sve2":
		return SVE2, true
	default:
		return Generic, false
	}
}

// Package-level state, written only by the platform init functions.
var (
	// activeISA is the selected implementation tier.
	activeISA ISA

	// hasOverride is true if OOO_SIMD selected the ISA.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasSSE2     bool
	hasSSE41    bool
	hasAVX2     bool
	hasAVX512F  bool
	hasAVX512BW bool
	hasAVX512VL bool
	hasASIMD    bool
	hasSVE2     bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	activeISA, hasOverride = selectISA(os.Getenv(EnvOverride))
}

// selectISA applies an override string on top of detection. An override that
// does not parse or names an ISA the CPU lacks is ignored.
func selectISA(override string) (ISA, bool) {
	if override != "" {
		if isa, ok := ParseISA(override); ok && Available(isa) {
			return isa, true
		}
	}
	return Detect(), false
}

// Available reports whether an ISA is supported on this CPU.
func Available(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case SSE2:
		return hasSSE2
	case SSE41:
		return hasSSE41
	case AVX2:
		return hasAVX2
	case AVX512:
		return hasAVX512F && hasAVX512BW && hasAVX512VL
	case NEON:
		return hasASIMD
	case SVE2:
		return hasSVE2
	default:
		return false
	}
}

// Detect returns the best ISA the running CPU supports. It is a pure
// function of the CPU feature flags and never fails.
func Detect() ISA {
	switch runtime.GOARCH {
	case "amd64":
		return detectAMD64()
	case "arm64":
		return detectARM64()
	default:
		return Generic
	}
}

func detectAMD64() ISA {
	switch {
	case Available(AVX512):
		return AVX512
	case hasAVX2:
		return AVX2
	case hasSSE41:
		return SSE41
	case hasSSE2:
		return SSE2
	default:
		return Generic
	}
}

func detectARM64() ISA {
	// Apple silicon reports SVE2 through emulation only; NEON is faster there.
	if hasSVE2 && runtime.GOOS != "darwin" {
		return SVE2
	}
	if hasASIMD {
		return NEON
	}
	return Generic
}

// ActiveISA returns the ISA selected for this process.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if OOO_SIMD selected the ISA.
func IsOverridden() bool {
	return hasOverride
}

// Supported lists every ISA available on this CPU, lowest tier first.
func Supported() []ISA {
	out := make([]ISA, 0, numISA)
	for isa := Generic; isa < numISA; isa++ {
		if Available(isa) {
			out = append(out, isa)
		}
	}
	return out
}
