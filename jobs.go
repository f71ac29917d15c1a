package ooo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ooo/internal/perf"
)

// FixedJob merges or reshuffles one fixed-width column. With a nil B.Data
// and a zero B.Width the job is a single-source Reshuffle of A.
type FixedJob struct {
	A, B Buffer
	Dst  Buffer
}

// VarJob merges one variable-length column with 64-bit offsets.
// Written receives the final cursor.
type VarJob struct {
	A, B    VarColumn64
	Dst     VarColumn64
	Cursor  int64
	Written int64
}

// VarJob32 merges one variable-length column with 32-bit offsets.
// Written receives the final cursor.
type VarJob32 struct {
	A, B    VarColumn32
	Dst     VarColumn32
	Cursor  int64
	Written int64
}

// ColumnJob is one column of an out-of-order merge. Exactly one of Fixed,
// Var and Var32 must be set.
type ColumnJob struct {
	Name  string
	Fixed *FixedJob
	Var   *VarJob
	Var32 *VarJob32
}

// ErrInvalidJob is returned for a ColumnJob without exactly one payload.
var ErrInvalidJob = errors.New("column job must set exactly one of Fixed, Var, Var32")

// MergeColumns runs every job along idx, in parallel on disjoint buffers.
//
// Concurrency is bounded by WithMaxWorkers and copied bytes are throttled by
// WithCopyBandwidth. Each job is a synchronous kernel call; cancelling ctx
// only keeps jobs that have not started from running. The first error is
// returned, wrapped with the job name.
func (e *Engine) MergeColumns(ctx context.Context, idx []Entry, jobs []ColumnJob) error {
	start := time.Now()
	var failed atomic.Int64

	err := perfMeasureErr(perf.MergeColumns, func() error {
		for i := range jobs {
			if err := jobs[i].validate(); err != nil {
				failed.Add(1)
				return fmt.Errorf("%s: %w", jobs[i].Name, err)
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.rc.MaxWorkers())

		for i := range jobs {
			job := &jobs[i]
			g.Go(func() error {
				if err := e.runJob(gctx, idx, job); err != nil {
					failed.Add(1)
					return fmt.Errorf("%s: %w", job.Name, err)
				}
				return nil
			})
		}
		return g.Wait()
	})

	e.metrics.RecordColumnJobs(len(jobs), int(failed.Load()), time.Since(start))
	e.logger.LogColumnJobs(ctx, len(jobs), err)
	return err
}

func (e *Engine) runJob(ctx context.Context, idx []Entry, job *ColumnJob) error {
	bytes := job.bytes(idx)
	err := e.execJob(ctx, idx, job, bytes)
	e.logger.WithColumn(job.Name).LogColumnJob(ctx, job.kind(), bytes, err)
	return err
}

func (e *Engine) execJob(ctx context.Context, idx []Entry, job *ColumnJob, bytes int64) error {
	if err := e.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer e.rc.ReleaseWorker()

	if err := e.rc.AcquireCopy(ctx, bytes); err != nil {
		return err
	}

	switch {
	case job.Fixed != nil:
		f := job.Fixed
		if f.B.Data == nil && f.B.Width == 0 {
			return e.Reshuffle(f.A, f.Dst, idx)
		}
		return e.MergeShuffle(f.A, f.B, f.Dst, idx)
	case job.Var != nil:
		v := job.Var
		n, err := e.MergeVarColumn64(idx, v.A, v.B, v.Dst, v.Cursor)
		v.Written = n
		return err
	default:
		v := job.Var32
		n, err := e.MergeVarColumn32(idx, v.A, v.B, v.Dst, v.Cursor)
		v.Written = n
		return err
	}
}

func (j *ColumnJob) validate() error {
	set := 0
	if j.Fixed != nil {
		set++
	}
	if j.Var != nil {
		set++
	}
	if j.Var32 != nil {
		set++
	}
	if set != 1 {
		return ErrInvalidJob
	}
	return nil
}

func (j *ColumnJob) kind() string {
	switch {
	case j.Fixed != nil:
		if j.Fixed.B.Data == nil && j.Fixed.B.Width == 0 {
			return "reshuffle"
		}
		return "merge shuffle"
	case j.Var != nil:
		return "var64"
	default:
		return "var32"
	}
}

// bytes estimates the bytes a job moves, for copy throttling.
func (j *ColumnJob) bytes(idx []Entry) int64 {
	switch {
	case j.Fixed != nil:
		if !j.Fixed.A.Width.Valid() {
			return 0
		}
		return int64(len(idx) * j.Fixed.A.Width.Bytes())
	case j.Var != nil:
		return int64(len(j.Var.A.Data) + len(j.Var.B.Data))
	default:
		return int64(len(j.Var32.A.Data) + len(j.Var32.B.Data))
	}
}

func perfMeasureErr(c perf.Counter, fn func() error) error {
	var err error
	perf.Measure(c, func() { err = fn() })
	return err
}
