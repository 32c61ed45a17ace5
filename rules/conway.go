package rules

// CountCap is the neighbor count at which counting around a live cell can
// stop: every count of CountCap or more kills the cell.
const CountCap = 4

const (
	minSurvive = 2
	maxSurvive = 3
	birth      = 3
)

// Survives reports whether a live cell with n live neighbors stays alive.
func Survives(n int) bool {
	return n >= minSurvive && n <= maxSurvive
}

// Born reports whether a dead cell with n live neighbors comes alive.
func Born(n int) bool {
	return n == birth
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return Survives(neighbors)
	}
	return Born(neighbors)
}

// Limit returns how far neighbor counting has to go for a cell in the given
// state. Live cells stop at CountCap, dead cells count every neighbor.
func Limit(alive bool, neighbors int) int {
	if alive && neighbors > CountCap {
		return CountCap
	}
	return neighbors
}
