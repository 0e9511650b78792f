// Package tracker maintains the hash -> first-seen-generation mapping used
// to classify a cellular automaton's termination as periodic or steady.
package tracker

import "sort"

// Reason classifies why a simulation terminated.
type Reason int

const (
	None Reason = iota
	Extinction
	Periodic
	Steady
)

func (r Reason) String() string {
	switch r {
	case Extinction:
		return "extinction"
	case Periodic:
		return "periodic"
	case Steady:
		return "steady"
	default:
		return "none"
	}
}

// Tracker maps a hash to the generation at which it was first observed,
// self-bounding at 2*maxPeriod entries.
type Tracker struct {
	maxPeriod int
	firstSeen map[uint32]int
}

// New creates a tracker bounded to 2*maxPeriod entries.
func New(maxPeriod int) *Tracker {
	return &Tracker{maxPeriod: maxPeriod, firstSeen: make(map[uint32]int)}
}

// Reset discards all recorded hashes.
func (t *Tracker) Reset() {
	t.firstSeen = make(map[uint32]int)
}

// Has reports whether hash has already been observed.
func (t *Tracker) Has(hash uint32) bool {
	_, ok := t.firstSeen[hash]
	return ok
}

// Period returns currentGeneration - storedGeneration when hash is present.
func (t *Tracker) Period(hash uint32, currentGeneration int) (int, bool) {
	stored, ok := t.firstSeen[hash]
	if !ok {
		return 0, false
	}
	return currentGeneration - stored, true
}

// Add records hash at generation, overwriting any prior entry, then trims
// to the 2*maxPeriod soft cap by evicting the smallest hash keys — a cheap
// approximation of age-based eviction, acceptable because overflow is rare
// and bounded.
func (t *Tracker) Add(hash uint32, generation int) {
	t.firstSeen[hash] = generation

	cap := 2 * t.maxPeriod
	if cap <= 0 || len(t.firstSeen) <= cap {
		return
	}

	keys := make([]uint32, 0, len(t.firstSeen))
	for k := range t.firstSeen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	excess := len(t.firstSeen) - cap
	for i := 0; i < excess; i++ {
		delete(t.firstSeen, keys[i])
	}
}

// Classify determines the termination reason for a hash seen again at
// currentGeneration, given the tracker's maxPeriod bound.
func (t *Tracker) Classify(hash uint32, currentGeneration int) (Reason, int) {
	period, ok := t.Period(hash, currentGeneration)
	if !ok {
		return None, 0
	}
	if period <= t.maxPeriod {
		return Periodic, period
	}
	return Steady, 0
}
