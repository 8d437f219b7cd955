// Package render formats a board and a solution's move sequence for
// display on a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/herohde/former/pkg/grid"
	"github.com/herohde/former/pkg/search"
)

// Board renders g as rows of single-character cell symbols, one row per
// line.
func Board(g grid.Grid) string {
	return g.String()
}

// Move formats a single representative coordinate as "(row,col)".
func Move(c grid.Coord) string {
	return fmt.Sprintf("(%v,%v)", c.Row, c.Col)
}

// Moves formats a full move sequence as a space-separated list of
// coordinates.
func Moves(path []grid.Coord) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = Move(c)
	}
	return strings.Join(parts, " ")
}

// Solution formats a complete search result for display: whether the
// board was cleared, the move sequence found, and the diagnostic
// counters aggregated across search workers.
func Solution(sol search.BeamSolution) string {
	status := "unsolved"
	if sol.Solved {
		status = "solved"
	}
	return fmt.Sprintf("%v in %v moves [boards=%v, duplicates=%v]\n%v",
		status, len(sol.Moves), sol.BoardsAnalyzed, sol.DuplicatesDropped, Moves(sol.Moves))
}
