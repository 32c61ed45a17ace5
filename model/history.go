package model

import (
	"crypto/md5"
	"fmt"
)

// historySize is how many recent generations are kept for cycle detection.
const historySize = 5

// History remembers digests of recent generations to spot still lifes and
// short oscillators.
type History struct {
	hashes []string
}

// GetGridHash returns an MD5 digest of the grid's dimensions and live cells.
func GetGridHash(g *Grid) string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d;", g.width, g.height)
	for i := range g.current {
		if g.current[i].IsAlive() {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Record adds the grid's current state and keeps only the last few.
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, GetGridHash(g))

	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether the grid repeats one of the last three recorded
// generations: a still life or an oscillator of period 2 or 3.
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := GetGridHash(g)
	for back := 1; back <= 3; back++ {
		if h.hashes[len(h.hashes)-back] == current {
			return true
		}
	}
	return false
}

// Reset forgets every recorded generation.
func (h *History) Reset() {
	h.hashes = nil
}
