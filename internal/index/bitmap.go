package index

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// SideSlots returns the positions of merged whose tag names side.
// Consecutive runs from the same side are added as ranges.
func SideSlots(merged []Entry, side Side) *roaring64.Bitmap {
	bm := roaring64.New()
	start := -1
	for i := range merged {
		if merged[i].Side() == side {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			bm.AddRange(uint64(start), uint64(i))
			start = -1
		}
	}
	if start >= 0 {
		bm.AddRange(uint64(start), uint64(len(merged)))
	}
	return bm
}
