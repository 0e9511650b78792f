// Package lattice computes neighbor counts on square and hex grids under
// bounded or toroidal boundary policies.
package lattice

// Lattice selects the neighborhood shape used when counting neighbors.
type Lattice int

const (
	Square Lattice = iota
	Hex
)

func (l Lattice) String() string {
	switch l {
	case Square:
		return "square"
	case Hex:
		return "hex"
	default:
		return "unknown"
	}
}

type offset struct{ dx, dy int }

var squareOffsets = []offset{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

var hexOffsetsEvenRow = []offset{
	{-1, -1}, {0, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1},
}

var hexOffsetsOddRow = []offset{
	{0, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}, {1, 1},
}

// offsets returns the neighbor offsets appropriate for the lattice at row y.
func offsets(l Lattice, y int) []offset {
	if l == Square {
		return squareOffsets
	}
	if y&1 == 0 {
		return hexOffsetsEvenRow
	}
	return hexOffsetsOddRow
}

// CountNeighbors sums live cells (0 or 1) among the neighbors of (x, y),
// skipping out-of-range neighbors when toroidal is false or wrapping them
// when toroidal is true.
func CountNeighbors(cells []uint8, width, height, x, y int, l Lattice, toroidal bool) int {
	count := 0
	for _, o := range offsets(l, y) {
		nx, ny := x+o.dx, y+o.dy
		if toroidal {
			nx = ((nx % width) + width) % width
			ny = ((ny % height) + height) % height
		} else if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		count += int(cells[ny*width+nx])
	}
	return count
}
