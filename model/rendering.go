package model

import (
	"bufio"
	"io"
	"strings"
)

const (
	gridPosAlive = '0'
	gridPosEmpty = '.'

	dumpTitle     = "Conway's Game of Life"
	ansiClearHome = "\033[H\033[2J"
)

// TerminalRenderer writes plain-text dumps of a grid
type TerminalRenderer struct{}

// Display writes the grid framed by bars, one row per line. Rows use the
// population text format, so a dump can be fed back through ParsePattern.
func (r *TerminalRenderer) Display(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(dumpTitle + "\n")
	bw.WriteString(strings.Repeat("_", g.width+4) + "\n")
	for _, line := range Rows(g) {
		bw.WriteString("| " + line + " |\n")
	}
	bw.WriteString(strings.Repeat("-", g.width+4) + "\n")
	return bw.Flush()
}

// Clear homes the cursor and clears the terminal screen
func (r *TerminalRenderer) Clear(w io.Writer) error {
	_, err := io.WriteString(w, ansiClearHome)
	return err
}

// Rows returns the grid as population text lines.
func Rows(g *Grid) []string {
	lines := make([]string, 0, g.height)
	var sb strings.Builder
	for row := range g.height {
		sb.Reset()
		for col := range g.width {
			if g.Get(row, col) {
				sb.WriteByte(gridPosAlive)
			} else {
				sb.WriteByte(gridPosEmpty)
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}
