package ooo

import "github.com/hupe1980/ooo/internal/simd"

type options struct {
	isa           ISA
	pinISA        bool
	logger        *Logger
	metrics       MetricsCollector
	memoryLimit   int64
	maxWorkers    int
	copyBandwidth int64
	debugChecks   bool
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures an Engine.
type Option func(*options)

// WithISA pins every kernel of the engine to isa instead of the process-wide
// selection. The kernels are portable Go, so an ISA the CPU lacks is still
// honored; use this for reproducible benchmarks and tests.
func WithISA(isa ISA) Option {
	return func(o *options) {
		o.isa = isa
		o.pinISA = true
	}
}

// WithAutoISA uses the process-wide kernel selection. This is the default.
// The OOO_SIMD environment variable can lower it at process start.
func WithAutoISA() Option {
	return func(o *options) {
		o.isa = simd.Generic
		o.pinISA = false
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed,
// NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithMemoryLimit caps the bytes held by live MergedIndex and VarColumn
// handles. 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxWorkers bounds how many column jobs MergeColumns runs at once.
// Defaults to 1.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.maxWorkers = n
	}
}

// WithCopyBandwidth throttles the bytes moved by MergeColumns.
// 0 means unlimited.
func WithCopyBandwidth(bytesPerSec int64) Option {
	return func(o *options) {
		o.copyBandwidth = bytesPerSec
	}
}

// WithDebugChecks enables the expensive boundary checks: every row
// reference, run order and offset monotonicity is verified, and dispatched
// kernel output is cross-checked against the scalar implementation.
func WithDebugChecks(enabled bool) Option {
	return func(o *options) {
		o.debugChecks = enabled
	}
}
