package model

import "strings"

// aliveMark is the character that marks a live cell in population text.
const aliveMark = '0'

// SplitPopulation breaks population text into lines. Both newlines and the
// letter 'n' separate lines, so a pattern fits on one command-line argument:
// "...n.0.n.0.".
func SplitPopulation(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.TrimRight(strings.ReplaceAll(input, "n", "\n"), "\n")
	if input == "" {
		return nil
	}
	return strings.Split(input, "\n")
}

// ParsePattern returns the live coordinates described by lines: a '0' at
// line i, character j marks (i, j). Every other character is dead.
func ParsePattern(lines []string) []Coordinate {
	var points []Coordinate
	for row, line := range lines {
		for col, ch := range []rune(line) {
			if ch == aliveMark {
				points = append(points, Coordinate{Row: row, Col: col})
			}
		}
	}
	return points
}

// PatternSize returns the width of the longest line and the number of lines.
func PatternSize(lines []string) (width, height int) {
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	return width, len(lines)
}

// Populate revives every cell marked in lines and returns how many were
// placed. Marks outside the grid are dropped with a diagnostic.
func (g *Grid) Populate(lines []string) int {
	placed := 0
	for _, p := range ParsePattern(lines) {
		if c := g.lookup("Populate", p.Row, p.Col); c != nil {
			c.Revive()
			placed++
		}
	}
	return placed
}

// LoadPattern replaces the contents of g with lines, resized to fit them.
func LoadPattern(g *Grid, lines []string) int {
	g.Resize(PatternSize(lines))
	g.Clear()
	return g.Populate(lines)
}
