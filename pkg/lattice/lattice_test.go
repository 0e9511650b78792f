package lattice

import "testing"

func TestCountNeighborsHexParity(t *testing.T) {
	width, height := 4, 4
	cells := make([]uint8, width*height)
	set := func(x, y int) { cells[y*width+x] = 1 }
	set(1, 1)
	set(2, 2)

	got := CountNeighbors(cells, width, height, 2, 2, Hex, false)
	if got != 1 {
		t.Fatalf("hex neighbor count at (2,2) = %d, want 1", got)
	}
}

func TestCountNeighborsSquareBoundedSkipsOutOfRange(t *testing.T) {
	width, height := 3, 3
	cells := make([]uint8, width*height)
	for i := range cells {
		cells[i] = 1
	}
	got := CountNeighbors(cells, width, height, 0, 0, Square, false)
	if got != 3 {
		t.Fatalf("corner neighbor count = %d, want 3", got)
	}
}

func TestCountNeighborsToroidalWraps(t *testing.T) {
	width, height := 3, 3
	cells := make([]uint8, width*height)
	cells[2*width+2] = 1 // bottom-right corner

	got := CountNeighbors(cells, width, height, 0, 0, Square, true)
	if got != 1 {
		t.Fatalf("toroidal neighbor count at (0,0) = %d, want 1", got)
	}
}

func TestCountNeighborsCountsLiveCellAtAnOffset(t *testing.T) {
	width, height := 5, 5
	cells := make([]uint8, width*height)
	cells[2*width+2] = 1

	for _, lat := range []Lattice{Square, Hex} {
		for _, toroidal := range []bool{false, true} {
			for _, o := range offsets(lat, 1) {
				nx, ny := 1+o.dx, 1+o.dy
				if toroidal {
					nx = ((nx % width) + width) % width
					ny = ((ny % height) + height) % height
				}
				if nx == 2 && ny == 2 {
					count := CountNeighbors(cells, width, height, 1, 1, lat, toroidal)
					if count < 1 {
						t.Fatalf("expected (1,1) to count the live neighbor at (2,2), lattice=%v toroidal=%v", lat, toroidal)
					}
				}
			}
		}
	}
}
