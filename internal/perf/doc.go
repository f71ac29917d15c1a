// Package perf holds index-addressed timing counters for the merge kernels.
//
// Counters are compiled in with the ooo_profile build tag. Without it Get
// and Len return zero, Reset does nothing and Measure only runs its function.
package perf
