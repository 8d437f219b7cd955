package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/herohde/former/pkg/grid"
	"github.com/stretchr/testify/assert"
)

// Fixture values from the reference JavaScript Alea implementation seeded
// with "test", verifying this port reproduces its double-precision
// sequence bit-for-bit.
var aleaTestFixture = []float64{
	0.5442283214069903, 0.7071346458978951, 0.7247104682028294,
	0.18215877166949213, 0.40387626527808607, 0.6793456706218421,
	0.3913689369801432, 0.34771870146505535, 0.8993504859972745,
	0.5323070492595434,
}

func TestAleaMatchesReferenceSequence(t *testing.T) {
	a := newAlea("test")
	for i, want := range aleaTestFixture {
		got := a.next()
		assert.InDelta(t, want, got, 1e-15, "draw %v", i)
	}
}

func TestGenerateBoardIsDeterministic(t *testing.T) {
	a := GenerateBoard("test")
	b := GenerateBoard("test")
	assert.True(t, a.Equals(b))
}

func TestGenerateBoardDiffersAcrossSeeds(t *testing.T) {
	a := GenerateBoard("test")
	b := GenerateBoard("other-seed")
	assert.False(t, a.Equals(b))
}

func TestGenerateBoardFirstCellsMatchReferenceDraws(t *testing.T) {
	g := GenerateBoard("test")

	wantIdx := []int{2, 2, 2, 0, 1, 2, 1, 1, 3}
	want := make([]grid.Cell, len(wantIdx))
	for i, idx := range wantIdx {
		want[i] = lut[idx]
	}

	got := []grid.Cell{
		g.At(0, 0), g.At(0, 1), g.At(0, 2), g.At(0, 3), g.At(0, 4),
		g.At(0, 5), g.At(0, 6), g.At(1, 0), g.At(1, 1),
	}
	assert.Equal(t, want, got)
}

func TestFetchTodaySeedOnCancelledContextIsErrSeedFetchFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchTodaySeed(ctx)
	assert.True(t, errors.Is(err, ErrSeedFetchFailed))
}
