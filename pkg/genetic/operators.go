package genetic

import (
	"evocell/pkg/core"
)

// Mutate applies point, insertion and deletion mutations independently,
// each with probability mutationRate, per spec: point mutation shifts an
// existing cell by +/-1 on both axes (sign chosen independently per axis),
// clamped into [0, seedWindow); insertion appends a fresh uniform
// coordinate; deletion removes a uniformly chosen cell when more than one
// remains. Duplicates introduced by these operators are not deduplicated —
// embedding tolerates them.
func Mutate(rng *core.RNG, genome Genome, mutationRate float64, seedWindow int) Genome {
	cells := append([]Coord(nil), genome.Cells...)

	for i := range cells {
		if rng.Float64() >= mutationRate {
			continue
		}
		dx := -1
		if rng.Float64() < 0.5 {
			dx = 1
		}
		dy := -1
		if rng.Float64() < 0.5 {
			dy = 1
		}
		cells[i] = Coord{
			X: clamp(cells[i].X+dx, seedWindow),
			Y: clamp(cells[i].Y+dy, seedWindow),
		}
	}

	if rng.Float64() < mutationRate {
		cells = append(cells, Coord{X: rng.IntN(seedWindow), Y: rng.IntN(seedWindow)})
	}

	if rng.Float64() < mutationRate && len(cells) > 1 {
		idx := rng.IntN(len(cells))
		cells = append(cells[:idx], cells[idx+1:]...)
	}

	return Genome{ID: newGenomeID(), Cells: cells}
}

func clamp(v, bound int) int {
	if v < 0 {
		return 0
	}
	if v >= bound {
		return bound - 1
	}
	return v
}

// Crossover builds a child of length max(|a|,|b|), alternating parent A's
// and parent B's cells by index parity, wrapping each parent's own index.
// This is deterministic given parent ordering.
func Crossover(a, b Genome) Genome {
	max := len(a.Cells)
	if len(b.Cells) > max {
		max = len(b.Cells)
	}
	if max == 0 {
		return Genome{ID: newGenomeID()}
	}
	if len(a.Cells) == 0 {
		return Genome{ID: newGenomeID(), Cells: append([]Coord(nil), b.Cells...)}
	}
	if len(b.Cells) == 0 {
		return Genome{ID: newGenomeID(), Cells: append([]Coord(nil), a.Cells...)}
	}

	cells := make([]Coord, max)
	for i := 0; i < max; i++ {
		if i%2 == 0 {
			cells[i] = a.Cells[i%len(a.Cells)]
		} else {
			cells[i] = b.Cells[i%len(b.Cells)]
		}
	}
	return Genome{ID: newGenomeID(), Cells: cells}
}
