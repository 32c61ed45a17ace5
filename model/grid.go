package model

import (
	"io"
	"log"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-engine/rules"
)

// ErrOutOfBounds is reported when a coordinate lies outside the grid.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// parallelThreshold is the cell count below which Step stays on one goroutine.
const parallelThreshold = 64 * 64

// Grid is the double-buffered Game of Life engine. It is not safe for
// concurrent use; callers serialize access (see the runner package).
type Grid struct {
	width    int
	height   int
	topology Topology

	// current holds the live generation; next is the scratch buffer and is
	// all dead whenever Step is entered.
	current []Cell
	next    []Cell

	generation int
	workers    int
	logger     *log.Logger
}

// Option configures a Grid.
type Option func(*Grid)

// WithTopology selects the initial neighbor topology.
func WithTopology(t Topology) Option {
	return func(g *Grid) { g.topology = t }
}

// WithLogger sets where out-of-bounds diagnostics go. A nil logger discards them.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		g.logger = l
	}
}

// WithWorkers sets how many goroutines Step may split large grids across.
// Values below 1 select runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(g *Grid) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		g.workers = n
	}
}

// NewGrid returns an empty 0×0 grid. Call Resize before placing cells.
func NewGrid(opts ...Option) *Grid {
	g := &Grid{
		topology: Bounded,
		workers:  1,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Dimension returns width and height.
func (g *Grid) Dimension() (width, height int) {
	return g.width, g.height
}

// Topology returns the active neighbor topology.
func (g *Grid) Topology() Topology {
	return g.topology
}

// Generation returns the number of steps taken since the last Clear.
func (g *Grid) Generation() int {
	return g.generation
}

// Resize rebuilds both buffers for the new dimensions. Cells alive before the
// call stay alive when their (row, col) still fits; the rest are dropped.
func (g *Grid) Resize(width, height int) {
	if width < 0 || height < 0 {
		g.logger.Printf("[Resize] negative dimensions %dx%d clamped to zero", width, height)
		width, height = max(width, 0), max(height, 0)
	}
	alive := g.AlivePoints()
	g.width, g.height = width, height
	g.rebuild(alive)
}

// SetToroidal switches between wrapping and bounded edges. Neighbor lists are
// recomputed at the current dimensions and the alive set is kept.
func (g *Grid) SetToroidal(toroidal bool) {
	t := Bounded
	if toroidal {
		t = Toroidal
	}
	g.topology = t
	g.rebuild(g.AlivePoints())
}

// rebuild allocates fresh buffers in row-major order, links neighbors and
// revives every in-bounds coordinate of alive.
func (g *Grid) rebuild(alive []Coordinate) {
	next := make([]Cell, 0, g.width*g.height)
	for row := range g.height {
		for col := range g.width {
			next = append(next, NewCell(Coordinate{Row: row, Col: col}))
		}
	}
	linkNeighbors(next, g.topology, g.width, g.height)

	// Struct copies share the neighbor slices with next.
	current := make([]Cell, len(next))
	copy(current, next)

	for _, p := range alive {
		if g.contains(p.Row, p.Col) {
			current[p.Index(g.width)].Revive()
		}
	}
	g.current, g.next = current, next
}

func (g *Grid) contains(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// cell returns the current cell at (row, col), or a wrapped ErrOutOfBounds.
func (g *Grid) cell(op string, row, col int) (*Cell, error) {
	if !g.contains(row, col) {
		return nil, errors.Wrapf(ErrOutOfBounds, "[%s] (%d,%d) in %dx%d grid", op, row, col, g.width, g.height)
	}
	return &g.current[row*g.width+col], nil
}

// lookup is cell with the error turned into a diagnostic.
func (g *Grid) lookup(op string, row, col int) *Cell {
	c, err := g.cell(op, row, col)
	if err != nil {
		g.logger.Print(err)
		return nil
	}
	return c
}

// Toggle flips the cell at (row, col).
func (g *Grid) Toggle(row, col int) {
	c := g.lookup("Toggle", row, col)
	if c == nil {
		return
	}
	if c.IsAlive() {
		c.Kill()
	} else {
		c.Revive()
	}
}

// Revive marks the cell at (row, col) alive.
func (g *Grid) Revive(row, col int) {
	if c := g.lookup("Revive", row, col); c != nil {
		c.Revive()
	}
}

// ClearCell marks the cell at (row, col) dead.
func (g *Grid) ClearCell(row, col int) {
	if c := g.lookup("ClearCell", row, col); c != nil {
		c.Kill()
	}
}

// Clear kills every cell by rebuilding the grid at its current size.
func (g *Grid) Clear() {
	g.generation = 0
	g.rebuild(nil)
}

// State reports whether (row, col) is alive. Out-of-bounds coordinates log a
// diagnostic and report false; use Lookup to tell the two apart.
func (g *Grid) State(row, col int) bool {
	c := g.lookup("State", row, col)
	return c != nil && c.IsAlive()
}

// Lookup is State with the out-of-bounds condition returned as an error.
func (g *Grid) Lookup(row, col int) (bool, error) {
	c, err := g.cell("Lookup", row, col)
	if err != nil {
		return false, err
	}
	return c.IsAlive(), nil
}

// Get returns the state of a cell
func (g *Grid) Get(row, col int) bool {
	if !g.contains(row, col) {
		return false
	}
	return g.current[row*g.width+col].IsAlive()
}

// AlivePoints returns the coordinates of every live cell in row-major order.
func (g *Grid) AlivePoints() []Coordinate {
	var points []Coordinate
	for i := range g.current {
		if g.current[i].IsAlive() {
			points = append(points, g.current[i].coord)
		}
	}
	return points
}

// Population returns the number of live cells.
func (g *Grid) Population() (count int) {
	for i := range g.current {
		if g.current[i].IsAlive() {
			count++
		}
	}
	return
}

// Cells exposes the current buffer in row-major order. It is shared with the
// grid and must be treated as read-only.
func (g *Grid) Cells() []Cell {
	return g.current
}

// Neighbors returns the cached neighbor coordinates of (row, col).
func (g *Grid) Neighbors(row, col int) []Coordinate {
	c := g.lookup("Neighbors", row, col)
	if c == nil {
		return nil
	}
	out := make([]Coordinate, len(c.neighbors))
	for i, j := range c.neighbors {
		out[i] = g.current[j].coord
	}
	return out
}

// Randomize revives each cell with the given probability.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.current {
		if rng.Float64() < density {
			g.current[i].Revive()
		}
	}
}

// Step advances the grid by one generation.
func (g *Grid) Step() {
	cur, next := g.current, g.next
	if g.workers > 1 && len(cur) >= parallelThreshold {
		g.advanceParallel(cur, next)
	} else {
		advance(cur, next, 0, len(cur))
	}

	// Killed here so the buffer is clean when it becomes next again.
	for i := range cur {
		cur[i].Kill()
	}
	g.current, g.next = next, cur
	g.generation++
}

// advanceParallel splits the rows of cur across the configured workers. Each
// worker reads only cur and writes a disjoint range of next.
func (g *Grid) advanceParallel(cur, next []Cell) {
	var (
		eg            errgroup.Group
		rowsPerWorker = (g.height + g.workers - 1) / g.workers // Ceiling division
	)

	for i := range g.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			advance(cur, next, startRow*g.width, endRow*g.width)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		g.logger.Printf("[Step] parallel advance: %v", err)
	}
}

// advance writes the next state of cur[lo:hi] into next, which must be all dead.
func advance(cur, next []Cell, lo, hi int) {
	for i := lo; i < hi; i++ {
		c := &cur[i]
		alive := c.IsAlive()
		n := liveNeighbors(cur, c.neighbors, rules.Limit(alive, len(c.neighbors)))
		if rules.ApplyConwayRules(n, alive) {
			next[i].Revive()
		}
	}
}

// liveNeighbors counts live cells among neighbors, stopping at limit.
func liveNeighbors(cur []Cell, neighbors []int, limit int) int {
	count := 0
	for _, j := range neighbors {
		if cur[j].IsAlive() {
			count++
			if count >= limit {
				break
			}
		}
	}
	return count
}
