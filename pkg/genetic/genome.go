package genetic

import (
	"github.com/google/uuid"

	"evocell/pkg/core"
)

// Coord is an (x, y) cell coordinate inside a genome's seed window.
type Coord struct{ X, Y int }

// Genome is an opaque-identity set of live-cell coordinates inside a
// seedWindow x seedWindow square. Duplicate coordinates are permitted —
// they collapse to a single live cell once embedded. The ID exists solely
// so a collaborator can deduplicate log lines; it never participates in
// fitness, equality, or selection.
type Genome struct {
	ID    string
	Cells []Coord
}

func newGenomeID() string {
	return uuid.NewString()
}

// RandomGenome samples max(8, floor(seedWindow^2 * 0.1)) distinct
// coordinates uniformly from [0, seedWindow)^2, capped at seedWindow^2
// (every cell of the window) for windows too small to hold that many.
func RandomGenome(rng *core.RNG, seedWindow int) Genome {
	count := int(float64(seedWindow*seedWindow) * 0.1)
	if count < 8 {
		count = 8
	}
	if count > seedWindow*seedWindow {
		count = seedWindow * seedWindow
	}

	seen := make(map[Coord]bool, count)
	cells := make([]Coord, 0, count)
	for len(cells) < count {
		c := Coord{X: rng.IntN(seedWindow), Y: rng.IntN(seedWindow)}
		if seen[c] {
			continue
		}
		seen[c] = true
		cells = append(cells, c)
	}
	return Genome{ID: newGenomeID(), Cells: cells}
}

// embed clears buffer (len == gridSize*gridSize) and sets live cells for
// each genome coordinate translated into the centred seedWindow window.
// Coordinates whose translated target lands outside the grid are dropped.
func embed(buffer []uint8, genome Genome, gridSize, seedWindow int) {
	for i := range buffer {
		buffer[i] = 0
	}
	offset := (gridSize - seedWindow) / 2
	for _, c := range genome.Cells {
		x, y := offset+c.X, offset+c.Y
		if x < 0 || x >= gridSize || y < 0 || y >= gridSize {
			continue
		}
		buffer[y*gridSize+x] = 1
	}
}
