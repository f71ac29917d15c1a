// Package merge combines ascending runs of index entries into one ascending
// sequence with a tournament tree.
//
// The tree is sized to the next power of two at or above the run count and
// padded with exhausted leaves. Each internal node holds the smaller key of
// its two children; on equal keys the lower run index wins, so the merge is
// stable by run order. Emitting an entry advances its run and replays the
// single path from that leaf to the root: O(N log K).
package merge
