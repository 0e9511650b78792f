package genetic

import (
	"testing"

	"evocell/pkg/lattice"
)

func toyConfig() GAConfig {
	return GAConfig{
		PopulationSize: 6,
		MutationRate:   0.2,
		EliteCount:     2,
		MaxGenerations: 20,
		GridSize:       16,
		Lattice:        lattice.Square,
		Rule:           "B3/S23",
		Toroidal:       false,
		BorderPenalty:  5,
	}
}

func TestRunReturnsBestFitnessAtLeastAsGoodAsFirstGeneration(t *testing.T) {
	cfg := toyConfig()
	opts := RunOptions{Iterations: 4, SeedWindow: 8}

	var firstGenBest float64
	seenFirst := false

	result, ok := Run(cfg, opts, func(e ProgressEvent) {
		if !seenFirst {
			firstGenBest = e.BestFitness
			seenFirst = true
		}
	}, nil, 99)

	if !ok {
		t.Fatalf("expected Run to complete without cancellation")
	}
	if !seenFirst {
		t.Fatalf("expected at least one progress event")
	}
	if result.BestFitness < firstGenBest {
		t.Fatalf("best fitness regressed: first gen best=%v final=%v", firstGenBest, result.BestFitness)
	}
}

func TestRunProgressBestFitnessIsMonotoneNonDecreasing(t *testing.T) {
	cfg := toyConfig()
	opts := RunOptions{Iterations: 5, SeedWindow: 8}

	var last float64
	first := true

	_, ok := Run(cfg, opts, func(e ProgressEvent) {
		if !first && e.BestFitness < last {
			t.Fatalf("progress best fitness regressed: %v -> %v at generation %d", last, e.BestFitness, e.Generation)
		}
		last = e.BestFitness
		first = false
	}, nil, 7)

	if !ok {
		t.Fatalf("expected Run to complete without cancellation")
	}
}

func TestRunReturnsNotOkOnImmediateCancellation(t *testing.T) {
	cfg := toyConfig()
	opts := RunOptions{Iterations: 10, SeedWindow: 8}

	result, ok := Run(cfg, opts, nil, func() bool { return true }, 3)

	if ok {
		t.Fatalf("expected cancellation to report ok=false")
	}
	if result.BestGenome.ID != "" || result.BestFitness != 0 {
		t.Fatalf("expected zero Result on cancellation, got %+v", result)
	}
}

func TestRunStopsEarlyWhenCancelledMidRun(t *testing.T) {
	cfg := toyConfig()
	opts := RunOptions{Iterations: 20, SeedWindow: 8}

	seenGenerations := 0
	_, ok := Run(cfg, opts, func(ProgressEvent) {
		seenGenerations++
	}, func() bool { return seenGenerations >= 3 }, 11)

	if ok {
		t.Fatalf("expected cancellation to report ok=false")
	}
	if seenGenerations != 3 {
		t.Fatalf("expected exactly 3 progress events before cancellation, got %d", seenGenerations)
	}
}

func TestRunOnToroidalGridNeverAppliesBorderPenalty(t *testing.T) {
	cfg := toyConfig()
	cfg.Toroidal = true
	opts := RunOptions{Iterations: 3, SeedWindow: 8}

	result, ok := Run(cfg, opts, nil, nil, 42)
	if !ok {
		t.Fatalf("expected Run to complete without cancellation")
	}
	if result.BestFitness < 0 {
		t.Fatalf("fitness must never be negative, got %v", result.BestFitness)
	}

	noPenalty := cfg
	noPenalty.BorderPenalty = 0
	withPenalty := Evaluate(result.BestGenome, cfg, opts.SeedWindow)
	without := Evaluate(result.BestGenome, noPenalty, opts.SeedWindow)
	if withPenalty != without {
		t.Fatalf("toroidal fitness changed with BorderPenalty: %v with, %v without", withPenalty, without)
	}
}
