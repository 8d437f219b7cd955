package search

import "github.com/herohde/former/pkg/grid"

// Score returns the heuristic value of g: its remaining cluster count.
// Lower is better -- fewer remaining clusters generally means the board is
// closer to solved. Intentionally simple; the search relies on beam width,
// not heuristic sophistication, to compensate.
func Score(g grid.Grid) int {
	return g.CountMoves()
}
