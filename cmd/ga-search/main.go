// Command ga-search drives pkg/genetic from the terminal: it evolves a
// population of seed genomes against a configured rule and grid, and
// prints the best genome found plus a fitness-sorted list of the
// best-so-far genome reported at each GA generation, adapted from the teacher's
// cmd/volcano_tuner and cmd/lava-sweep coordinate-descent sweep tools.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"evocell/pkg/genetic"
	"evocell/pkg/lattice"
)

func main() {
	var (
		ruleStr        = "B3/S23"
		latticeName    = "square"
		gridSize       = 24
		seedWindow     = 6
		populationSize = 24
		eliteCount     = 4
		maxGenerations = 80
		iterations     = 30
		mutationRate   = 0.15
		borderPenalty  = 10.0
		toroidal       = false
		seedFlag       = 1337
		topN           = 5
	)

	flaggy.SetName("ga-search")
	flaggy.SetDescription("evolve cellular automaton seed patterns by survival fitness")
	flaggy.String(&ruleStr, "r", "rule", "birth/survival rule string, e.g. B3/S23")
	flaggy.String(&latticeName, "l", "lattice", "neighborhood: square or hex")
	flaggy.Int(&gridSize, "g", "grid-size", "width/height of the evaluation grid")
	flaggy.Int(&seedWindow, "w", "seed-window", "side length of the genome's seed window")
	flaggy.Int(&populationSize, "p", "population", "genomes per generation")
	flaggy.Int(&eliteCount, "e", "elite", "genomes carried over unmutated each generation")
	flaggy.Int(&maxGenerations, "m", "max-generations", "simulation generations budget per fitness evaluation")
	flaggy.Int(&iterations, "i", "iterations", "GA generations to run")
	flaggy.Float64(&mutationRate, "u", "mutation-rate", "per-operator mutation probability")
	flaggy.Float64(&borderPenalty, "b", "border-penalty", "fitness penalty for touching a bounded grid's border")
	flaggy.Bool(&toroidal, "t", "toroidal", "wrap the evaluation grid instead of bounding it")
	flaggy.Int(&seedFlag, "s", "seed", "RNG seed for the initial population and mutations")
	flaggy.Int(&topN, "n", "top", "how many top genomes to print at the end")
	flaggy.Parse()

	lat := lattice.Square
	if latticeName == "hex" {
		lat = lattice.Hex
	}

	cfg := genetic.GAConfig{
		PopulationSize: populationSize,
		MutationRate:   mutationRate,
		EliteCount:     eliteCount,
		MaxGenerations: maxGenerations,
		GridSize:       gridSize,
		Lattice:        lat,
		Rule:           ruleStr,
		Toroidal:       toroidal,
		BorderPenalty:  borderPenalty,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	opts := genetic.RunOptions{Iterations: iterations, SeedWindow: seedWindow}

	fmt.Println(aurora.Bold("ga-search").String() + " evolving " + aurora.Cyan(ruleStr).String() +
		" on a " + fmt.Sprintf("%dx%d", gridSize, gridSize) + " grid")

	type ranked struct {
		genome  genetic.Genome
		fitness float64
	}
	var leaderboard []ranked

	result, ok := genetic.Run(cfg, opts, func(e genetic.ProgressEvent) {
		fmt.Printf("  generation %s: best fitness %s\n",
			humanize.Comma(int64(e.Generation)),
			aurora.Green(fmt.Sprintf("%.1f", e.BestFitness)).String())
		leaderboard = append(leaderboard, ranked{genome: e.BestGenome, fitness: e.BestFitness})
	}, nil, int64(seedFlag))

	if !ok {
		fmt.Println(aurora.Red("run cancelled; no result").String())
		os.Exit(1)
	}

	fmt.Printf("\n%s: fitness %s, %s live cells, id %s\n",
		aurora.Bold("best genome").String(),
		aurora.Green(fmt.Sprintf("%.1f", result.BestFitness)).String(),
		humanize.Comma(int64(len(result.BestGenome.Cells))),
		result.BestGenome.ID)

	sort.Slice(leaderboard, func(i, j int) bool { return leaderboard[i].fitness > leaderboard[j].fitness })
	if topN > len(leaderboard) {
		topN = len(leaderboard)
	}
	fmt.Printf("\ntop %d genomes observed across the run:\n", topN)
	for i := 0; i < topN; i++ {
		fmt.Printf("  %d. fitness %.1f, %d cells, id %s\n",
			i+1, leaderboard[i].fitness, len(leaderboard[i].genome.Cells), leaderboard[i].genome.ID)
	}
}
