package genetic

import (
	"evocell/pkg/lattice"
	"evocell/pkg/rule"
	"evocell/pkg/sim"
)

// fitnessMaxPeriod is the cycle-classification horizon used for every GA
// fitness evaluation, fixed per spec independently of the GA's own config.
const fitnessMaxPeriod = 50

// Evaluate scores genome by embedding it in a fresh gridSize grid and
// stepping at most maxGenerations times, stopping early on termination.
// On a bounded grid, a border penalty shrinks toward zero the later a live
// cell first touches an edge; toroidal runs never pay it, since there is
// no border to escape.
func Evaluate(genome Genome, cfg GAConfig, seedWindow int) float64 {
	r, err := rule.Parse(cfg.Rule)
	if err != nil {
		r = rule.DefaultSquare
		if cfg.Lattice == lattice.Hex {
			r = rule.DefaultHex
		}
	}

	simCfg := sim.Config{
		Lattice:   cfg.Lattice,
		Width:     cfg.GridSize,
		Height:    cfg.GridSize,
		Rule:      r,
		Toroidal:  cfg.Toroidal,
		MaxPeriod: fitnessMaxPeriod,
	}

	state, err := sim.Create(simCfg, func(current []uint8) {
		embed(current, genome, cfg.GridSize, seedWindow)
	})
	if err != nil {
		// A GA fitness evaluation never fails from within the GA; an
		// unembeddable genome on a misconfigured grid just scores zero.
		return 0
	}

	best := 0
	borderAt := -1

	for gen := 0; gen < cfg.MaxGenerations; gen++ {
		frame := state.Step()
		best = frame.Generation

		if !cfg.Toroidal && borderAt < 0 && touchesBorder(frame.Cells, cfg.GridSize) {
			borderAt = frame.Generation
		}

		if frame.Terminated {
			break
		}
	}

	fitness := float64(best)
	if !cfg.Toroidal && borderAt >= 0 {
		penalty := cfg.BorderPenalty - float64(borderAt)/20
		if penalty > 0 {
			fitness -= penalty
		}
	}
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

func touchesBorder(cells []uint8, gridSize int) bool {
	last := gridSize - 1
	for x := 0; x < gridSize; x++ {
		if cells[x] != 0 || cells[last*gridSize+x] != 0 {
			return true
		}
	}
	for y := 0; y < gridSize; y++ {
		if cells[y*gridSize] != 0 || cells[y*gridSize+last] != 0 {
			return true
		}
	}
	return false
}
