package model

import "fmt"

// Coordinate identifies a grid position. Row runs along the height, Col
// along the width.
type Coordinate struct {
	Row int
	Col int
}

// Index returns the row-major offset of c in a grid of the given width.
func (c Coordinate) Index(width int) int {
	return c.Row*width + c.Col
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// LifeState is the binary state of a cell.
type LifeState uint8

const (
	Dead LifeState = iota
	Alive
)

func (s LifeState) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

// Cell is a single grid position with its cached neighbor indices.
type Cell struct {
	coord     Coordinate
	state     LifeState
	neighbors []int
}

// NewCell returns a dead cell at coord with no neighbors.
func NewCell(coord Coordinate) Cell {
	return Cell{coord: coord}
}

// Coordinate returns the fixed position of the cell.
func (c *Cell) Coordinate() Coordinate { return c.coord }

// State returns the current life state.
func (c *Cell) State() LifeState { return c.state }

// Revive marks the cell alive.
func (c *Cell) Revive() { c.state = Alive }

// Kill marks the cell dead.
func (c *Cell) Kill() { c.state = Dead }

func (c *Cell) IsAlive() bool { return c.state == Alive }

func (c *Cell) IsDead() bool { return c.state == Dead }

// Neighbors returns the flattened buffer indices of the cell's neighbors.
// The slice is shared with the parallel cell of the other buffer.
func (c *Cell) Neighbors() []int { return c.neighbors }

// SetNeighbors replaces the neighbor cache. The slice is kept by reference.
func (c *Cell) SetNeighbors(neighbors []int) { c.neighbors = neighbors }

func (c Cell) String() string {
	return c.coord.String() + " state:" + c.state.String()
}
