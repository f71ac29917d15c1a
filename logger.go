package ooo

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with merge-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithISA adds the resolved instruction set to the logger.
func (l *Logger) WithISA(isa ISA) *Logger {
	return &Logger{
		Logger: l.Logger.With("isa", isa.String()),
	}
}

// WithColumn adds a column name field to the logger.
func (l *Logger) WithColumn(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogResolved logs the kernel selection of a new engine.
func (l *Logger) LogResolved(ctx context.Context, isa ISA, pinned, overridden bool) {
	l.InfoContext(ctx, "kernels resolved",
		"isa", isa.String(),
		"tier", isa.Tier(),
		"pinned", pinned,
		"env_override", overridden,
	)
}

// LogMerge logs an index merge.
func (l *Logger) LogMerge(ctx context.Context, runs, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index merge failed",
			"runs", runs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index merge completed",
			"runs", runs,
			"entries", entries,
		)
	}
}

// LogReshuffle logs a fixed-width reshuffle or merge-shuffle.
func (l *Logger) LogReshuffle(ctx context.Context, op string, width Width, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed",
			"width", width.String(),
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, op+" completed",
			"width", width.String(),
			"rows", rows,
		)
	}
}

// LogVarMerge logs a variable-length column merge.
func (l *Logger) LogVarMerge(ctx context.Context, rows int, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "var column merge failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "var column merge completed",
			"rows", rows,
			"bytes", bytes,
		)
	}
}

// LogColumnJobs logs a batch of parallel column jobs.
func (l *Logger) LogColumnJobs(ctx context.Context, jobs int, err error) {
	if err != nil {
		l.WarnContext(ctx, "column jobs failed",
			"jobs", jobs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "column jobs completed",
			"jobs", jobs,
		)
	}
}

// LogColumnJob logs one job of a MergeColumns batch. Callers tag the
// logger with WithColumn.
func (l *Logger) LogColumnJob(ctx context.Context, kind string, bytes int64, err error) {
	if err != nil {
		l.WarnContext(ctx, "column job failed",
			"kind", kind,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "column job completed",
			"kind", kind,
			"bytes", bytes,
		)
	}
}

// LogKernelMismatch logs a dispatched kernel that disagreed with the scalar
// implementation.
func (l *Logger) LogKernelMismatch(ctx context.Context, kernel string, isa ISA, want, got uint64) {
	l.WarnContext(ctx, "kernel cross-check mismatch",
		"kernel", kernel,
		"isa", isa.String(),
		"want", want,
		"got", got,
	)
}
