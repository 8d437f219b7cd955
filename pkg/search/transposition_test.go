package search_test

import (
	"testing"

	"github.com/herohde/former/pkg/grid"
	"github.com/herohde/former/pkg/search"
	"github.com/stretchr/testify/assert"
)

// Transposition monotonicity: repeatedly calling InsertIfBetter(k, d) with
// non-increasing d yields true for the first call, then false or true only
// if d strictly decreases.
func TestTranspositionTableMonotonicity(t *testing.T) {
	tt := search.NewTranspositionTable()

	var g grid.Grid
	g.Set(0, 0, grid.Blue)
	key := grid.Compress(g)

	assert.True(t, tt.InsertIfBetter(key, 5), "first insert at any depth is novel")
	assert.False(t, tt.InsertIfBetter(key, 5), "same depth is dominated")
	assert.False(t, tt.InsertIfBetter(key, 7), "deeper revisit is dominated")
	assert.True(t, tt.InsertIfBetter(key, 3), "strictly shallower revisit is novel")
	assert.False(t, tt.InsertIfBetter(key, 3), "now dominated at the new depth")
}

func TestTranspositionTableShardsAreIndependent(t *testing.T) {
	tt := search.NewTranspositionTable()

	var a, b grid.Grid
	a.Set(0, 0, grid.Blue)
	b.Set(0, 0, grid.Green)

	assert.True(t, tt.InsertIfBetter(grid.Compress(a), 1))
	assert.True(t, tt.InsertIfBetter(grid.Compress(b), 1))
	assert.Equal(t, 2, tt.Size())
}
