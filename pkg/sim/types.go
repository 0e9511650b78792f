// Package sim owns the cell buffers, advances one generation at a time, and
// classifies termination. It is the simulation engine (C3): it calls
// pkg/rule, pkg/lattice, pkg/zobrist and pkg/tracker, and knows nothing
// about transport, storage, rendering, or audio — those are collaborators
// that consume the frames this package emits.
package sim

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"evocell/pkg/lattice"
	"evocell/pkg/rule"
	"evocell/pkg/tracker"
)

// OutOfRange reports a SimulationConfig field outside its documented contract.
type OutOfRange struct {
	Field string
	Value any
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("sim: %s out of range: %v", e.Field, e.Value)
}

// Config controls the lattice, dimensions, rule, boundary policy and cycle
// classification horizon of a simulation.
type Config struct {
	Lattice   lattice.Lattice
	Width     int
	Height    int
	Rule      rule.Rule
	Toroidal  bool
	MaxPeriod int
}

// Validate aggregates every OutOfRange violation in cfg instead of
// returning only the first, so a collaborator can report all of them to a
// caller in one round trip.
func (cfg Config) Validate() error {
	var errs error
	if cfg.Width < 1 {
		errs = multierr.Append(errs, &OutOfRange{Field: "Width", Value: cfg.Width})
	}
	if cfg.Height < 1 {
		errs = multierr.Append(errs, &OutOfRange{Field: "Height", Value: cfg.Height})
	}
	if cfg.MaxPeriod < 1 {
		errs = multierr.Append(errs, &OutOfRange{Field: "MaxPeriod", Value: cfg.MaxPeriod})
	}
	return errs
}

// CellCount returns width*height.
func (cfg Config) CellCount() int {
	return cfg.Width * cfg.Height
}

// DefaultConfig returns a 40x40 bounded square grid running Conway's rule,
// classified against a 100-generation cycle horizon.
func DefaultConfig() Config {
	return Config{
		Lattice:   lattice.Square,
		Width:     40,
		Height:    40,
		Rule:      rule.DefaultSquare,
		Toroidal:  false,
		MaxPeriod: 100,
	}
}

// FromMap builds a Config from string key/value overrides, the shape a
// collaborator receives over a wire protocol. Recognized keys are
// "lattice", "width", "height", "rule", "toroidal" and "maxPeriod"; any
// other key is ignored. Keys absent from overrides keep DefaultConfig's
// value. Unlike the ecology FromMap this is grounded on, a malformed value
// for a recognized key is reported as an error instead of silently
// falling back to the default.
func FromMap(overrides map[string]string) (Config, error) {
	cfg := DefaultConfig()
	if overrides == nil {
		return cfg, nil
	}

	if v, ok := overrides["lattice"]; ok {
		switch v {
		case "square":
			cfg.Lattice = lattice.Square
		case "hex":
			cfg.Lattice = lattice.Hex
		default:
			return Config{}, fmt.Errorf("sim: FromMap: unknown lattice %q", v)
		}
	}
	if v, ok := overrides["width"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("sim: FromMap: width: %w", err)
		}
		cfg.Width = n
	}
	if v, ok := overrides["height"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("sim: FromMap: height: %w", err)
		}
		cfg.Height = n
	}
	if v, ok := overrides["rule"]; ok {
		r, err := rule.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("sim: FromMap: rule: %w", err)
		}
		cfg.Rule = r
	}
	if v, ok := overrides["toroidal"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("sim: FromMap: toroidal: %w", err)
		}
		cfg.Toroidal = b
	}
	if v, ok := overrides["maxPeriod"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("sim: FromMap: maxPeriod: %w", err)
		}
		cfg.MaxPeriod = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Stats describes a simulation's state after a step.
type Stats struct {
	Generation  int
	Population  int
	Hash        uint32
	Terminated  bool
	Reason      tracker.Reason
	Period      int
	HasPeriod   bool
}

// Frame is Stats plus an owned copy of the post-step cell buffer, safe to
// hand to another goroutine or collaborator without aliasing the engine's
// internal buffers.
type Frame struct {
	Stats
	Cells []uint8
}
