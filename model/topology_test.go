package model

import (
	"slices"
	"testing"
)

func TestBoundedNeighborCounts(t *testing.T) {
	g := sizedGrid(t, columns, rows)
	tests := []struct {
		name     string
		row, col int
		want     int
	}{
		{"top-left corner", 0, 0, 3},
		{"bottom-right corner", rows - 1, columns - 1, 3},
		{"top edge", 0, 3, 5},
		{"left edge", 2, 0, 5},
		{"interior", 2, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(g.Neighbors(tt.row, tt.col)); got != tt.want {
				t.Fatalf("neighbors = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToroidalNeighborsWrap(t *testing.T) {
	g := sizedGrid(t, columns, rows, WithTopology(Toroidal))
	for row := range rows {
		for col := range columns {
			if n := len(g.Neighbors(row, col)); n != 8 {
				t.Fatalf("(%d,%d) has %d neighbors, want 8", row, col, n)
			}
		}
	}

	got := g.Neighbors(0, 0)
	want := coords(
		[2]int{rows - 1, 0}, [2]int{1, 0},
		[2]int{rows - 1, columns - 1}, [2]int{rows - 1, 1},
		[2]int{1, columns - 1}, [2]int{1, 1},
		[2]int{0, columns - 1}, [2]int{0, 1},
	)
	if !slices.Equal(got, want) {
		t.Fatalf("neighbors of (0,0) = %v, want %v", got, want)
	}
}

func TestSetToroidalRelinksAndKeepsCells(t *testing.T) {
	g := sizedGrid(t, columns, rows)
	g.Populate(linesWalker)
	before := g.AlivePoints()

	g.SetToroidal(true)
	if g.Topology() != Toroidal {
		t.Fatalf("topology = %v, want toroidal", g.Topology())
	}
	if n := len(g.Neighbors(0, 0)); n != 8 {
		t.Fatalf("corner has %d neighbors after switching to toroidal", n)
	}
	assertAlive(t, g, before)

	g.SetToroidal(false)
	if n := len(g.Neighbors(0, 0)); n != 3 {
		t.Fatalf("corner has %d neighbors after switching to bounded", n)
	}
	assertAlive(t, g, before)
}

func shift(points []Coordinate, dRow, dCol, width, height int) []Coordinate {
	out := make([]Coordinate, len(points))
	for i, p := range points {
		out[i] = Coordinate{Row: (p.Row + dRow) % height, Col: (p.Col + dCol) % width}
	}
	slices.SortFunc(out, func(a, b Coordinate) int {
		return a.Index(width) - b.Index(width)
	})
	return out
}

func TestGliderWrapsOnTorus(t *testing.T) {
	const size = 8
	g := sizedGrid(t, size, size, WithTopology(Toroidal))
	g.Populate(linesWalker)
	start := g.AlivePoints()

	for gen := 1; gen <= 4*size; gen++ {
		g.Step()
		if gen%4 == 0 {
			assertAlive(t, g, shift(start, gen/4, gen/4, size, size))
		}
	}
	assertAlive(t, g, start)
}

func TestGliderDivergesByTopology(t *testing.T) {
	const size = 8
	torus := sizedGrid(t, size, size, WithTopology(Toroidal))
	bounded := sizedGrid(t, size, size, WithTopology(Bounded))
	torus.Populate(linesWalker)
	bounded.Populate(linesWalker)
	start := torus.AlivePoints()

	for range 4 * size {
		torus.Step()
		bounded.Step()
	}
	if !slices.Equal(torus.AlivePoints(), start) {
		t.Fatalf("torus glider should return to its start, got %v", torus.AlivePoints())
	}
	if slices.Equal(bounded.AlivePoints(), start) {
		t.Fatalf("bounded glider should not return to its start")
	}
	if slices.Equal(bounded.AlivePoints(), torus.AlivePoints()) {
		t.Fatalf("bounded and toroidal runs should differ")
	}
}
