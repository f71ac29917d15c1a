// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Scratch and result buffers of the merge kernels start on a 64-byte
// boundary so that wide loads never straddle a cache line.
package mem
