package grid_test

import (
	"math/rand"
	"testing"

	"github.com/herohde/former/pkg/grid"
	"github.com/stretchr/testify/assert"
)

func randomGrid(r *rand.Rand) grid.Grid {
	var g grid.Grid
	for row := 0; row < grid.Height; row++ {
		for c := 0; c < grid.Width; c++ {
			g.Set(row, c, grid.Cell(r.Intn(5)))
		}
	}
	return g
}

// Compression round-trip: compress is injective on valid Grids.
func TestCompressRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		a := randomGrid(r)
		b := a
		assert.Equal(t, grid.Compress(a), grid.Compress(b))

		mutant := randomGrid(r)
		if mutant.Equals(a) {
			continue
		}
		assert.NotEqual(t, grid.Compress(a), grid.Compress(mutant))
	}
}

func TestCompressTopBitOfEachWordIsZero(t *testing.T) {
	g := grid.Grid{}
	for r := 0; r < grid.Height; r++ {
		for c := 0; c < grid.Width; c++ {
			g.Set(r, c, grid.Pink)
		}
	}
	c := grid.Compress(g)
	assert.Equal(t, uint64(0), c.W2>>63)
	assert.Equal(t, uint64(0), c.W1>>63)
	assert.Equal(t, uint64(0), c.W0>>63)
}

func TestShardIsStable(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	g := randomGrid(r)
	c := grid.Compress(g)

	first := c.Shard(256)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Shard(256))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 256)
}
