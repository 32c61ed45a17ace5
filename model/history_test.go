package model

import "testing"

func TestHistoryDetectsStillLife(t *testing.T) {
	g := sizedGrid(t, columns, rows)
	g.Populate(linesBlock)

	var h History
	for range 3 {
		h.Record(g)
		g.Step()
	}
	if !h.IsStagnant(g) {
		t.Fatalf("block should be reported stagnant")
	}

	h.Reset()
	if h.IsStagnant(g) {
		t.Fatalf("reset history should not report stagnation")
	}
}

func TestHistoryDetectsBlinker(t *testing.T) {
	g := sizedGrid(t, 5, 5)
	g.Populate([]string{".....", "..0..", "..0..", "..0.."})

	var h History
	for range 3 {
		h.Record(g)
		g.Step()
	}
	if !h.IsStagnant(g) {
		t.Fatalf("blinker should be reported stagnant")
	}
}

func TestHistoryIgnoresMovingGlider(t *testing.T) {
	g := sizedGrid(t, 20, 20, WithTopology(Toroidal))
	g.Populate(linesWalker)

	var h History
	for range 5 {
		h.Record(g)
		g.Step()
		if h.IsStagnant(g) {
			t.Fatalf("glider reported stagnant at generation %d", g.Generation())
		}
	}
}

func TestGridHashIncludesDimension(t *testing.T) {
	a := sizedGrid(t, 4, 2)
	b := sizedGrid(t, 2, 4)
	if GetGridHash(a) == GetGridHash(b) {
		t.Fatalf("empty grids of different shape should hash differently")
	}
}
