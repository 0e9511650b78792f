package app

import "flag"

// Config represents the command-line parameters for the desktop viewer.
type Config struct {
	Width     int
	Height    int
	Lattice   string
	Rule      string
	Toroidal  bool
	MaxPeriod int
	Scale     int
	TPS       int
	Density   float64
	Seed      int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:     60,
		Height:    40,
		Lattice:   "square",
		Rule:      "B3/S23",
		Toroidal:  true,
		MaxPeriod: 200,
		Scale:     8,
		TPS:       60,
		Density:   0.3,
		Seed:      42,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width")
	fs.IntVar(&c.Height, "height", c.Height, "grid height")
	fs.StringVar(&c.Lattice, "lattice", c.Lattice, "neighborhood: square or hex")
	fs.StringVar(&c.Rule, "rule", c.Rule, "birth/survival rule string, e.g. B3/S23")
	fs.BoolVar(&c.Toroidal, "toroidal", c.Toroidal, "wrap the grid instead of bounding it")
	fs.IntVar(&c.MaxPeriod, "max-period", c.MaxPeriod, "cycle horizon before a surviving pattern is classified Steady")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ebiten ticks per second")
	fs.Float64Var(&c.Density, "density", c.Density, "initial random seed density")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial randomize")
}
