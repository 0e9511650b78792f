// Package genetic evolves small seed patterns inside a centred window of a
// larger simulation grid, scoring each genome by how long it survives
// unterminated and clear of the border, and returns the best genome found.
// This is the genetic search component (C4): it calls pkg/sim for every
// fitness evaluation and never talks to a collaborator directly — progress
// and results are handed back through callbacks and return values.
package genetic

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"evocell/pkg/core"
	"evocell/pkg/lattice"
)

// GAConfig controls population shape, mutation, elitism, the per-genome
// simulation budget, and the grid the GA evolves genomes against.
type GAConfig struct {
	PopulationSize int
	MutationRate   float64
	EliteCount     int
	MaxGenerations int
	GridSize       int
	Lattice        lattice.Lattice
	Rule           string
	Toroidal       bool
	BorderPenalty  float64
}

// RunOptions are the per-run parameters that do not belong to the
// reusable GAConfig: how many GA generations to run, and how large a
// seed window genomes live in.
type RunOptions struct {
	Iterations int
	SeedWindow int
}

// Validate aggregates every out-of-contract field instead of stopping at
// the first, mirroring sim.Config.Validate.
func (cfg GAConfig) Validate() error {
	var errs error
	if cfg.PopulationSize < 2 {
		errs = multierr.Append(errs, fmt.Errorf("genetic: PopulationSize %d must be >= 2", cfg.PopulationSize))
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		errs = multierr.Append(errs, fmt.Errorf("genetic: MutationRate %v must be in [0,1]", cfg.MutationRate))
	}
	if cfg.EliteCount < 1 || cfg.EliteCount > cfg.PopulationSize {
		errs = multierr.Append(errs, fmt.Errorf("genetic: EliteCount %d must be in [1,%d]", cfg.EliteCount, cfg.PopulationSize))
	}
	if cfg.MaxGenerations < 1 {
		errs = multierr.Append(errs, fmt.Errorf("genetic: MaxGenerations %d must be positive", cfg.MaxGenerations))
	}
	if cfg.BorderPenalty < 0 {
		errs = multierr.Append(errs, fmt.Errorf("genetic: BorderPenalty %v must be >= 0", cfg.BorderPenalty))
	}
	return errs
}

// ProgressEvent is emitted at most once per GA generation, carrying the
// best genome observed so far — not necessarily from the current
// generation.
type ProgressEvent struct {
	Generation  int
	BestFitness float64
	Population  int
	BestGenome  Genome
}

// Result is returned after Run completes without cancellation.
type Result struct {
	BestGenome  Genome
	BestFitness float64
}

// scored pairs a genome with its evaluated fitness.
type scored struct {
	genome  Genome
	fitness float64
}

// Run executes up to opts.Iterations GA generations, scoring every member
// of the population concurrently each generation, keeping the top
// EliteCount as carryover, and filling the rest by crossover + mutation of
// two uniformly sampled elites. shouldCancel is polled once per
// generation, after that generation's progress has already been
// delivered; when it reports true, Run stops and returns ok=false with a
// zero Result.
func Run(cfg GAConfig, opts RunOptions, onProgress func(ProgressEvent), shouldCancel func() bool, seed int64) (Result, bool) {
	rng := core.NewRNG(seed)

	population := make([]Genome, cfg.PopulationSize)
	for i := range population {
		population[i] = RandomGenome(rng, opts.SeedWindow)
	}

	var best Result

	for gen := 0; gen < opts.Iterations; gen++ {
		scoredPop := evaluatePopulation(population, cfg, opts.SeedWindow)
		sort.Slice(scoredPop, func(i, j int) bool { return scoredPop[i].fitness > scoredPop[j].fitness })

		if gen == 0 || scoredPop[0].fitness > best.BestFitness {
			best = Result{BestGenome: scoredPop[0].genome, BestFitness: scoredPop[0].fitness}
		}

		if onProgress != nil {
			onProgress(ProgressEvent{
				Generation:  gen,
				BestFitness: best.BestFitness,
				Population:  cfg.PopulationSize,
				BestGenome:  best.BestGenome,
			})
		}

		if shouldCancel != nil && shouldCancel() {
			return Result{}, false
		}

		elites := lo.Map(scoredPop[:cfg.EliteCount], func(s scored, _ int) Genome { return s.genome })
		population = nextGeneration(rng, elites, cfg, opts.SeedWindow)
	}

	return best, true
}

func evaluatePopulation(population []Genome, cfg GAConfig, seedWindow int) []scored {
	results := make([]scored, len(population))
	var g errgroup.Group
	g.SetLimit(workerLimit())

	for i, genome := range population {
		i, genome := i, genome
		g.Go(func() error {
			results[i] = scored{genome: genome, fitness: Evaluate(genome, cfg, seedWindow)}
			return nil
		})
	}
	_ = g.Wait() // fitness evaluation never returns an error

	return results
}

func nextGeneration(rng *core.RNG, elites []Genome, cfg GAConfig, seedWindow int) []Genome {
	next := append([]Genome(nil), elites...)
	for len(next) < cfg.PopulationSize {
		a := elites[rng.IntN(len(elites))]
		b := elites[rng.IntN(len(elites))]
		child := Crossover(a, b)
		child = Mutate(rng, child, cfg.MutationRate, seedWindow)
		next = append(next, child)
	}
	return next[:cfg.PopulationSize]
}

func workerLimit() int {
	if n := runtime.GOMAXPROCS(0); n > 1 {
		return n
	}
	return 1
}
