package sim

import (
	"fmt"

	"evocell/pkg/core"
	"evocell/pkg/lattice"
	"evocell/pkg/tracker"
	"evocell/pkg/zobrist"
)

// Initializer writes arbitrary bytes into the freshly allocated current
// buffer; any non-zero byte is treated as a live cell. It is invoked at
// most once, during Create.
type Initializer func(current []uint8)

// State owns the two cell buffers, the Zobrist table and the cycle
// tracker for one simulation run. Buffers are allocated once at Create
// and never reallocated; current and scratch are swapped after each step.
type State struct {
	cfg Config

	current []uint8
	scratch []uint8
	table   zobrist.Table
	tracker *tracker.Tracker

	generation int
	terminated bool
	reason     tracker.Reason
	period     int
	hasPeriod  bool
}

// Create allocates both buffers zeroed, runs the optional initializer
// exactly once, and resets generation/termination state.
func Create(cfg Config, initializer Initializer) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	count := cfg.CellCount()
	s := &State{
		cfg:     cfg,
		current: make([]uint8, count),
		scratch: make([]uint8, count),
		table:   zobrist.NewTable(cfg.Width, cfg.Height),
		tracker: tracker.New(cfg.MaxPeriod),
	}
	if initializer != nil {
		initializer(s.current)
	}
	s.resetRunState()
	return s, nil
}

// Config returns the simulation's configuration.
func (s *State) Config() Config { return s.cfg }

// Cells exposes the current buffer. Callers must not retain it across a
// Step call; use the Frame returned by Step for an owned copy.
func (s *State) Cells() []uint8 { return s.current }

// Generation returns the number of completed steps.
func (s *State) Generation() int { return s.generation }

// Terminated reports whether the engine has frozen.
func (s *State) Terminated() bool { return s.terminated }

// Toggle flips the live bit at (x, y) on the current buffer. It does not step.
func (s *State) Toggle(x, y int) {
	if x < 0 || x >= s.cfg.Width || y < 0 || y >= s.cfg.Height {
		panic(fmt.Sprintf("sim: Toggle coordinates (%d,%d) out of range", x, y))
	}
	idx := y*s.cfg.Width + x
	if s.current[idx] == 0 {
		s.current[idx] = 1
	} else {
		s.current[idx] = 0
	}
}

// Randomize clears scratch, sets each cell live independently with
// probability density using a deterministic PRNG seeded by seed, and
// resets generation/tracker/termination.
func (s *State) Randomize(density float64, seed int64) {
	rng := core.NewRNG(seed)
	core.FillDensity(rng.Source(), s.current, density)
	for i := range s.scratch {
		s.scratch[i] = 0
	}
	s.resetRunState()
}

// ApplySeed zeroes the current buffer, copies up to min(len(seed),
// CellCount) bytes from seed, and resets generation/tracker/termination.
func (s *State) ApplySeed(seed []byte) {
	for i := range s.current {
		s.current[i] = 0
	}
	n := len(seed)
	if cap := len(s.current); n > cap {
		n = cap
	}
	for i := 0; i < n; i++ {
		if seed[i] != 0 {
			s.current[i] = 1
		}
	}
	s.resetRunState()
}

func (s *State) resetRunState() {
	s.generation = 0
	s.terminated = false
	s.reason = tracker.None
	s.period = 0
	s.hasPeriod = false
	s.tracker.Reset()
	// Record the starting state at generation 0 so a return to it is
	// classified (a still life reports Periodic/1 at generation 1).
	s.tracker.Add(zobrist.Hash(s.current, s.table), 0)
}

// Step advances the simulation by one generation and returns a frame whose
// Cells is a disjoint copy of the new buffer. Once terminated, Step keeps
// returning the frozen state without regressing Generation.
func (s *State) Step() *Frame {
	if s.terminated {
		return s.snapshot()
	}

	population := 0
	width, height := s.cfg.Width, s.cfg.Height
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			n := lattice.CountNeighbors(s.current, width, height, x, y, s.cfg.Lattice, s.cfg.Toroidal)
			alive := s.current[idx] == 1
			next := uint8(0)
			if (alive && s.cfg.Rule.Survives(n)) || (!alive && s.cfg.Rule.Births(n)) {
				next = 1
				population++
			}
			s.scratch[idx] = next
		}
	}

	hash := zobrist.Hash(s.scratch, s.table)

	reason := tracker.None
	period := 0
	hasPeriod := false
	if population == 0 {
		reason = tracker.Extinction
	} else if s.tracker.Has(hash) {
		reason, period = s.tracker.Classify(hash, s.generation+1)
		hasPeriod = reason == tracker.Periodic
	}

	s.tracker.Add(hash, s.generation+1)
	s.current, s.scratch = s.scratch, s.current
	s.generation++

	if reason != tracker.None {
		s.terminated = true
		s.reason = reason
		s.period = period
		s.hasPeriod = hasPeriod
	}

	return &Frame{
		Stats: Stats{
			Generation: s.generation,
			Population: population,
			Hash:       hash,
			Terminated: s.terminated,
			Reason:     reason,
			Period:     period,
			HasPeriod:  hasPeriod,
		},
		Cells: append([]uint8(nil), s.current...),
	}
}

// Snapshot returns the current state as a Frame without stepping, for a
// collaborator that wants to observe the engine (e.g. to draw it) without
// advancing it.
func (s *State) Snapshot() *Frame {
	return s.snapshot()
}

func (s *State) snapshot() *Frame {
	return &Frame{
		Stats: Stats{
			Generation: s.generation,
			Population: population(s.current),
			Hash:       zobrist.Hash(s.current, s.table),
			Terminated: s.terminated,
			Reason:     s.reason,
			Period:     s.period,
			HasPeriod:  s.hasPeriod,
		},
		Cells: append([]uint8(nil), s.current...),
	}
}

func population(cells []uint8) int {
	n := 0
	for _, c := range cells {
		if c != 0 {
			n++
		}
	}
	return n
}
