package zobrist

import "testing"

func TestNewTableDeterministic(t *testing.T) {
	a := NewTable(4, 4)
	b := NewTable(4, 4)
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("table length = %d, want 16", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("table not deterministic at index %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestHashFlipSingleCellXorsTableEntry(t *testing.T) {
	table := NewTable(3, 3)
	cells := make([]uint8, 9)
	base := Hash(cells, table)

	cells[4] = 1
	flipped := Hash(cells, table)

	if flipped != base^table[4] {
		t.Fatalf("flipped hash = %d, want %d", flipped, base^table[4])
	}
}

func TestHashIsPositionSensitive(t *testing.T) {
	table := NewTable(2, 2)
	a := []uint8{1, 0, 0, 0}
	b := []uint8{0, 1, 0, 0}
	if Hash(a, table) == Hash(b, table) {
		t.Fatalf("expected different hashes for different live positions")
	}
}
