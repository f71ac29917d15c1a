// Package index defines the sortable index entry and the utilities that build
// and search runs of entries.
//
// An Entry pairs a 64-bit timestamp key with a provenance tag naming the
// source row. In two-source merges the top bit of the tag selects the source
// side. Sentinel is the exhaustion key: it compares greater than every real
// timestamp.
package index
