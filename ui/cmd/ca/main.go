// Command ca is the desktop viewer for evocell's simulation core: it
// renders the pkg/sim frame stream with ebiten, the optional "canvas
// rendering" collaborator named in spec.md §1.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"evocell/pkg/lattice"
	"evocell/pkg/rule"
	"evocell/pkg/sim"
	"evocell/ui/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	lat := lattice.Square
	if cfg.Lattice == "hex" {
		lat = lattice.Hex
	}

	r, err := rule.Parse(cfg.Rule)
	if err != nil {
		log.Fatalf("parse rule: %v", err)
	}

	simCfg := sim.Config{
		Lattice:   lat,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Rule:      r,
		Toroidal:  cfg.Toroidal,
		MaxPeriod: cfg.MaxPeriod,
	}
	if err := simCfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	state, err := sim.Create(simCfg, nil)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}
	state.Randomize(cfg.Density, cfg.Seed)

	game := app.New(state, cfg.Scale, cfg.Density, cfg.Seed)
	width, height := game.Layout(0, 0)

	ebiten.SetWindowTitle("evocell — " + r.String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(width, height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
