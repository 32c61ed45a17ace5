package model

// Topology decides how a neighbor direction leaving the grid is resolved.
type Topology uint8

const (
	// Bounded drops directions that leave the grid.
	Bounded Topology = iota
	// Toroidal wraps them to the opposite edge.
	Toroidal
)

func (t Topology) String() string {
	if t == Toroidal {
		return "toroidal"
	}
	return "bounded"
}

// directions lists the eight relative offsets as (dRow, dCol):
// N, S, NW, NE, SW, SE, W, E.
var directions = [8][2]int{
	{-1, 0}, {1, 0},
	{-1, -1}, {-1, 1},
	{1, -1}, {1, 1},
	{0, -1}, {0, 1},
}

// neighborIndices computes the neighbor list of (row, col) for a
// width×height grid under topology t.
func neighborIndices(t Topology, row, col, width, height int) []int {
	out := make([]int, 0, len(directions))
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if t == Toroidal {
			r, c = wrap(r, height), wrap(c, width)
		} else if r < 0 || r >= height || c < 0 || c >= width {
			continue
		}
		out = append(out, r*width+c)
	}
	return out
}

// wrap folds v one step past either edge back into [0, size).
func wrap(v, size int) int {
	switch {
	case v < 0:
		return size - 1
	case v >= size:
		return 0
	default:
		return v
	}
}

// linkNeighbors recomputes the neighbor list of every cell in buf, whose
// layout must be row-major for width×height.
func linkNeighbors(buf []Cell, t Topology, width, height int) {
	for i := range buf {
		p := buf[i].coord
		buf[i].SetNeighbors(neighborIndices(t, p.Row, p.Col, width, height))
	}
}
