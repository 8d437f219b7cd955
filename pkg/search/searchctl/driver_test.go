package searchctl_test

import (
	"context"
	"testing"

	"github.com/herohde/former/pkg/grid"
	"github.com/herohde/former/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBoard(c grid.Cell) grid.Grid {
	var g grid.Grid
	for r := 0; r < grid.Height; r++ {
		for col := 0; col < grid.Width; col++ {
			g.Set(r, col, c)
		}
	}
	return g
}

func TestSolveSingleColorBoardIsSolved(t *testing.T) {
	g := fullBoard(grid.Blue)

	result, err := searchctl.Solve(context.Background(), g, searchctl.Options{BeamWidth: 4, MaxThreads: 4})
	require.NoError(t, err)
	assert.True(t, result.Solved)
	assert.NotEmpty(t, result.Moves)
}

func TestSolveEmptyGridIsTriviallySolved(t *testing.T) {
	var g grid.Grid

	result, err := searchctl.Solve(context.Background(), g, searchctl.Options{BeamWidth: 1, MaxThreads: 1})
	require.NoError(t, err)
	assert.True(t, result.Solved)
	assert.Empty(t, result.Moves)
	assert.Equal(t, 1, result.BoardsAnalyzed)
}

// Thread count is clamped to the number of root moves, so asking for more
// workers than there are roots does not panic or spawn idle workers.
func TestSolveClampsThreadsToRootCount(t *testing.T) {
	g := fullBoard(grid.Green)

	result, err := searchctl.Solve(context.Background(), g, searchctl.Options{BeamWidth: 2, MaxThreads: 64})
	require.NoError(t, err)
	assert.True(t, result.Solved)
}

func TestSolveRespectsMaxDepth(t *testing.T) {
	g := fullBoard(grid.Orange)

	result, err := searchctl.Solve(context.Background(), g, searchctl.Options{
		BeamWidth:  4,
		MaxThreads: 2,
		MaxDepth:   lang.Some(uint(0)),
	})
	require.NoError(t, err)
	assert.True(t, result.Solved, "a single-cluster board solves within its root move, before any further depth is needed")
}
