package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchDirections(t *testing.T) {
	data := []int64{10, 20, 20, 30}
	hi := len(data) - 1

	tests := []struct {
		name     string
		value    int64
		forward  int
		backward int
	}{
		{"exact duplicate", 20, 1, 2},
		{"exact unique", 30, 3, 3},
		{"exact first", 10, 0, 0},
		{"absent between", 25, 3, 2},
		{"absent between low", 15, 1, 0},
		{"below minimum", 5, 0, -1},
		{"above maximum", 35, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.forward, Search(data, tt.value, 0, hi, ScanForward))
			assert.Equal(t, tt.backward, Search(data, tt.value, 0, hi, ScanBackward))
		})
	}
}

func TestSearchSubRange(t *testing.T) {
	data := []int64{1, 2, 3, 4, 5, 6, 7, 8}

	assert.Equal(t, 2, Search(data, 1, 2, 5, ScanForward))
	assert.Equal(t, 1, Search(data, 1, 2, 5, ScanBackward))
	assert.Equal(t, 6, Search(data, 8, 2, 5, ScanForward))
	assert.Equal(t, 5, Search(data, 8, 2, 5, ScanBackward))
	assert.Equal(t, 4, Search(data, 5, 2, 5, ScanForward))
}

func TestSearchEmptyRange(t *testing.T) {
	assert.Equal(t, 0, Search(nil, 1, 0, -1, ScanForward))
	assert.Equal(t, -1, Search(nil, 1, 0, -1, ScanBackward))
}

func TestSearchEntriesMatchesSearch(t *testing.T) {
	keys := []int64{1, 3, 3, 3, 7, 9, 9, 12}
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Ts: k, Row: uint64(i)}
	}

	for v := int64(0); v <= 13; v++ {
		for _, dir := range []Direction{ScanForward, ScanBackward} {
			assert.Equal(t,
				Search(keys, v, 0, len(keys)-1, dir),
				SearchEntries(entries, v, 0, len(entries)-1, dir),
				"value %d dir %d", v, dir)
		}
	}
}
