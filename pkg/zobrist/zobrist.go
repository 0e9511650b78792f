// Package zobrist builds the per-cell random table used to compute a
// position-sensitive hash of a cellular automaton's live cells.
package zobrist

// Seed is the fixed Zobrist seed. It is part of the public wire contract:
// hashes appear in frames handed to collaborators, so changing this value
// would be a breaking change for anything that logs or compares them.
const Seed uint32 = 1337

// mulberry32 is a small, fast, deterministic PRNG. The exact algorithm
// matters here — unlike pkg/core.RNG (used for GA randomness, where any
// good PRNG will do), the Zobrist table must produce identical values on
// every platform and every run for a given seed.
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed uint32) *mulberry32 {
	return &mulberry32{state: seed}
}

func (m *mulberry32) next() uint32 {
	m.state += 0x6D2B79F5
	z := m.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Table is the fixed-length sequence of per-cell random keys.
type Table []uint32

// NewTable builds a table of length width*height from the fixed seed.
func NewTable(width, height int) Table {
	count := width * height
	if count < 0 {
		count = 0
	}
	table := make(Table, count)
	rng := newMulberry32(Seed)
	for i := range table {
		table[i] = rng.next()
	}
	return table
}

// Hash XORs together the table entries at every live index.
func Hash(cells []uint8, table Table) uint32 {
	var h uint32
	for i, c := range cells {
		if c != 0 {
			h ^= table[i]
		}
	}
	return h
}
