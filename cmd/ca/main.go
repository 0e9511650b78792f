// Command ca is the headless CLI runner for pkg/sim: it steps a
// SimulationState per the bound Config and prints each frame, the way the
// teacher's cmd/ca drove an ebiten Game loop but without a display server.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"

	"evocell/internal/seedlib"
	"evocell/pkg/lattice"
	"evocell/pkg/rule"
	"evocell/pkg/sim"
)

// cliConfig binds cmd/ca's command-line flags, the same Config.Bind shape
// the teacher's internal/app.Config uses.
type cliConfig struct {
	Width     int
	Height    int
	Lattice   string
	Rule      string
	Toroidal  bool
	MaxPeriod int
	Pattern   string
	Density   float64
	Seed      int64
	Steps     int
}

func newCLIConfig() *cliConfig {
	return &cliConfig{
		Width:     20,
		Height:    20,
		Lattice:   "square",
		Rule:      "B3/S23",
		Toroidal:  false,
		MaxPeriod: 50,
		Pattern:   "",
		Density:   0,
		Seed:      1337,
		Steps:     50,
	}
}

// Bind registers every field on fs, mirroring the teacher's
// Config.Bind(*flag.FlagSet) convention.
func (c *cliConfig) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width")
	fs.IntVar(&c.Height, "height", c.Height, "grid height")
	fs.StringVar(&c.Lattice, "lattice", c.Lattice, "neighborhood: square or hex")
	fs.StringVar(&c.Rule, "rule", c.Rule, "birth/survival rule string, e.g. B3/S23")
	fs.BoolVar(&c.Toroidal, "toroidal", c.Toroidal, "wrap the grid instead of bounding it")
	fs.IntVar(&c.MaxPeriod, "max-period", c.MaxPeriod, "cycle horizon before a surviving pattern is classified Steady")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "named seed pattern from internal/seedlib, e.g. blinker")
	fs.Float64Var(&c.Density, "density", c.Density, "random seed density in [0,1]; ignored if -pattern is set")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "RNG seed for -density")
	fs.IntVar(&c.Steps, "steps", c.Steps, "generations to step before exiting")
}

func main() {
	cfg := newCLIConfig()
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

	var initializer sim.Initializer
	if cfg.Pattern != "" {
		pattern, ok := seedlib.Lookup(cfg.Pattern)
		if !ok {
			log.Fatalf("unknown pattern %q (known: %v)", cfg.Pattern, seedlib.Names())
		}
		initializer = func(current []uint8) { pattern.Apply(current, cfg.Width, cfg.Height) }
	}

	state, err := sim.Create(simCfg, initializer)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}
	if cfg.Pattern == "" {
		state.Randomize(cfg.Density, cfg.Seed)
	}

	fmt.Printf("%s rule=%s lattice=%s size=%dx%d toroidal=%v\n",
		aurora.Bold("evocell").String(), r.String(), lat, cfg.Width, cfg.Height, cfg.Toroidal)

	for i := 0; i < cfg.Steps; i++ {
		frame := state.Step()
		fmt.Printf("gen %s pop %s hash %08x", humanize.Comma(int64(frame.Generation)), humanize.Comma(int64(frame.Population)), frame.Hash)
		if frame.Terminated {
			fmt.Printf(" terminated=%s", aurora.Yellow(frame.Reason.String()).String())
			if frame.HasPeriod {
				fmt.Printf(" period=%d", frame.Period)
			}
		}
		fmt.Println()
		if frame.Terminated {
			break
		}
	}
}
