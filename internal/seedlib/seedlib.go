// Package seedlib is a named-pattern registry: small, well-known live-cell
// layouts that collaborators can reference by name instead of shipping raw
// buffers over the wire. It mirrors the teacher's simulation factory
// registry (internal/core.Register/Sims), retargeted at seed patterns.
package seedlib

// Pattern is a named set of live-cell coordinates, relative to its own
// top-left corner.
type Pattern struct {
	Name        string
	Description string
	Cells       [][2]int
}

// Width and Height report the smallest bounding box containing every live
// cell, so a caller can centre the pattern on an arbitrary grid.
func (p Pattern) Width() int {
	w := 0
	for _, c := range p.Cells {
		if c[0]+1 > w {
			w = c[0] + 1
		}
	}
	return w
}

func (p Pattern) Height() int {
	h := 0
	for _, c := range p.Cells {
		if c[1]+1 > h {
			h = c[1] + 1
		}
	}
	return h
}

// Apply centres the pattern on a width x height buffer and sets its live
// cells, clearing everything else first. Cells that fall outside the
// buffer once centred are silently dropped, matching pkg/genetic's embed.
func (p Pattern) Apply(buffer []uint8, width, height int) {
	for i := range buffer {
		buffer[i] = 0
	}
	ox := (width - p.Width()) / 2
	oy := (height - p.Height()) / 2
	for _, c := range p.Cells {
		x, y := ox+c[0], oy+c[1]
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		buffer[y*width+x] = 1
	}
}

var patterns = map[string]Pattern{}

// Register adds a pattern under its own name, overwriting any pattern
// already registered under that name.
func Register(p Pattern) {
	if p.Name == "" {
		return
	}
	patterns[p.Name] = p
}

// Lookup returns the pattern registered under name.
func Lookup(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// Names returns every registered pattern name.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	return names
}

func init() {
	Register(Pattern{
		Name:        "blinker",
		Description: "period-2 oscillator, three cells in a row",
		Cells:       [][2]int{{0, 0}, {1, 0}, {2, 0}},
	})
	Register(Pattern{
		Name:        "block",
		Description: "period-1 still life, a 2x2 square",
		Cells:       [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	})
	Register(Pattern{
		Name:        "glider",
		Description: "period-4 spaceship, translates diagonally",
		Cells:       [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	})
	Register(Pattern{
		Name:        "r-pentomino",
		Description: "methuselah, stabilizes after 1103 generations under B3/S23",
		Cells:       [][2]int{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}},
	})
}
