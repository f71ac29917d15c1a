package ooo_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/ooo"
)

// Example_mergeShuffle merges an out-of-order batch into existing columns.
func Example_mergeShuffle() {
	eng, err := ooo.New()
	if err != nil {
		log.Fatal(err)
	}

	// Existing rows are already ordered; the batch arrived out of order.
	existingTs := []int64{10, 30, 50}
	batchTs := []int64{40, 20}
	existingPrice := []float64{1.0, 3.0, 5.0}
	batchPrice := []float64{4.0, 2.0}

	existing := make([]ooo.Entry, len(existingTs))
	if err := eng.MakeTimestampIndex(existingTs, 0, len(existingTs)-1, existing); err != nil {
		log.Fatal(err)
	}
	batch := make([]ooo.Entry, len(batchTs))
	if err := eng.MakeTimestampIndex(batchTs, 0, len(batchTs)-1, batch); err != nil {
		log.Fatal(err)
	}
	eng.SortIndex(batch)

	idx, err := eng.MergeTwoIndexes(existing, batch)
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Free()

	entries, _ := idx.Entries()
	price := make([]float64, len(entries))
	if err := eng.MergeShuffle(ooo.BufferOf(existingPrice), ooo.BufferOf(batchPrice), ooo.BufferOf(price), entries); err != nil {
		log.Fatal(err)
	}

	ts := make([]int64, len(entries))
	_ = idx.Timestamps(ts)
	fmt.Println(ts)
	fmt.Println(price)
	// Output:
	// [10 20 30 40 50]
	// [1 2 3 4 5]
}

// Example_binarySearch finds scan boundaries in an ordered column.
func Example_binarySearch() {
	eng, _ := ooo.New()
	data := []int64{10, 20, 20, 30}

	first, _ := eng.BinarySearch(data, 20, 0, len(data)-1, ooo.ScanForward)
	last, _ := eng.BinarySearch(data, 20, 0, len(data)-1, ooo.ScanBackward)
	fmt.Println(first, last)
	// Output: 1 2
}

// Example_mergeVarColumn merges variable-length values into an allocated column.
func Example_mergeVarColumn() {
	eng, _ := ooo.New(ooo.WithMemoryLimit(1 << 20))

	existing := ooo.VarColumn64{Offsets: []int64{0, 3, 7}, Data: []byte("foobar!")}
	batch := ooo.VarColumn64{Offsets: []int64{0, 2}, Data: []byte("hi")}
	idx := []ooo.Entry{
		{Ts: 1, Row: ooo.Tag(0, ooo.SideExisting)},
		{Ts: 2, Row: ooo.Tag(0, ooo.SideOOO)},
		{Ts: 3, Row: ooo.Tag(1, ooo.SideExisting)},
	}

	col, err := eng.MergeVarColumnAlloc(idx, existing, batch)
	if err != nil {
		log.Fatal(err)
	}
	defer col.Free()

	c, _ := col.Column()
	fmt.Println(string(c.Data), c.Offsets)
	// Output: foohibar! [0 3 5 9]
}
