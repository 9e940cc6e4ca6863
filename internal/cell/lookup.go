package cell

// LookupTable maps a board slot to the ID of the cell occupying it.
// It is always a permutation of 0..SlotCount-1.
type LookupTable [SlotCount]int

// Identity returns the table where every cell sits in the slot matching its ID.
func Identity() LookupTable {
	var t LookupTable
	for i := range t {
		t[i] = i
	}
	return t
}

// IsPermutation reports whether every cell ID appears exactly once.
func (t *LookupTable) IsPermutation() bool {
	var seen [SlotCount]bool
	for _, id := range t {
		if id < 0 || id >= SlotCount || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// SlotOf returns the slot holding cell id, or -1.
func (t *LookupTable) SlotOf(id int) int {
	for slot, v := range t {
		if v == id {
			return slot
		}
	}
	return -1
}

// RowSlots returns the five slots of the row starting at rowStart.
func RowSlots(rowStart int) [BoardSize]int {
	var s [BoardSize]int
	for k := range s {
		s[k] = rowStart + k
	}
	return s
}

// ColumnSlots returns the five slots of the column starting at colStart,
// from top to bottom.
func ColumnSlots(colStart int) [BoardSize]int {
	var s [BoardSize]int
	for k := range s {
		s[k] = colStart + k*BoardSize
	}
	return s
}

// RotateRow cyclically shifts the row starting at rowStart by one slot.
// Eastward moves every entry one slot to the right, the last wrapping to the first.
func (t *LookupTable) RotateRow(rowStart int, eastward bool) {
	t.rotate(RowSlots(rowStart), eastward)
}

// RotateColumn cyclically shifts the column starting at colStart by one slot.
// Northward moves every entry one row up, the top wrapping to the bottom.
func (t *LookupTable) RotateColumn(colStart int, northward bool) {
	t.rotate(ColumnSlots(colStart), !northward)
}

// rotate shifts the entries at slots one position forward (toward higher k)
// or backward, with wraparound.
func (t *LookupTable) rotate(slots [BoardSize]int, forward bool) {
	var old [BoardSize]int
	for k, s := range slots {
		old[k] = t[s]
	}
	for k, s := range slots {
		if forward {
			t[s] = old[(k+BoardSize-1)%BoardSize]
		} else {
			t[s] = old[(k+1)%BoardSize]
		}
	}
}
