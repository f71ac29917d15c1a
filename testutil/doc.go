// Package testutil provides testing utilities for the merge engine.
//
// This package is intended for use in tests and benchmarks only.
// It generates deterministic keys, sorted runs, merge indexes and column
// data, and computes reference results to compare kernels against.
//
// # Random Runs
//
//	rng := testutil.NewRNG(seed)
//	run := rng.SortedRun(1000, 0, 5)       // ascending keys, rows 0..999
//	keys := rng.Keys(1000, -1<<40, 1<<40)  // arbitrary signed keys
//
// # Reference Results
//
//	want := testutil.ReferenceMerge(runs...)
package testutil
