// Package resource bounds the memory, concurrency and copy bandwidth of
// merge work.
//
//	┌──────────────────────────────────────────────────────────┐
//	│                       Controller                         │
//	├──────────────────┬──────────────────┬────────────────────┤
//	│  Memory Limit    │  Worker Slots    │  Copy Limiter      │
//	│  (fail-fast)     │  (semaphore)     │  (token bucket)    │
//	├──────────────────┼──────────────────┼────────────────────┤
//	│  AcquireMemory   │  AcquireWorker   │  AcquireCopy       │
//	│  Reserve         │  MaxWorkers      │                    │
//	│  ReleaseMemory   │  ReleaseWorker   │                    │
//	└──────────────────┴──────────────────┴────────────────────┘
//
// # Memory
//
// Merged indexes and merged variable-length columns allocated by the engine
// are accounted here. AcquireMemory never blocks; it fails with
// ErrMemoryLimitExceeded and the caller decides what to do:
//
//	r, err := rc.Reserve(n * 16)
//	if err != nil {
//	    return err
//	}
//	defer r.Release()
//
// A Reservation releases exactly once no matter how often Release is called,
// which is what makes handle Free idempotent.
//
// # Workers
//
// Parallel column jobs take one worker slot each.
//
// # Copy Bandwidth
//
// A token bucket measured in bytes moved, for callers that run merges next
// to latency-sensitive work.
//
// # Nil Safety
//
// All methods handle a nil Controller; they become no-ops.
package resource
