// Package searchctl drives a parallel beam search: it partitions a
// grid's root moves across worker goroutines, runs one beam worker per
// partition against a transposition table shared by all of them, and
// aggregates their results into a single BeamSolution.
package searchctl

import (
	"context"
	"fmt"
	"runtime"

	"github.com/herohde/former/pkg/grid"
	"github.com/herohde/former/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/mathx"
	"golang.org/x/sync/errgroup"
)

// defaultMaxDepth bounds a search that sets no explicit depth limit: the
// grid has 7*9 = 63 cells, so no solution can need more plies than that.
const defaultMaxDepth = 63

// defaultBeamWidth is the width used when a solve leaves BeamWidth unset.
const defaultBeamWidth = 500

// Options hold the dynamic parameters of one parallel solve.
type Options struct {
	// BeamWidth is the number of candidate grids each worker retains per
	// depth. Zero is treated as defaultBeamWidth.
	BeamWidth uint
	// MaxThreads is the number of worker goroutines to run. Zero means
	// runtime.NumCPU(), or 2 if that reports no CPUs; the count is also
	// clamped to the number of root moves,
	// since a worker with no root moves to expand does no useful work.
	MaxThreads uint
	// MaxDepth, if set, limits how many plies each worker explores
	// beyond the root. Unset means defaultMaxDepth.
	MaxDepth lang.Optional[uint]
}

func (o Options) String() string {
	depth := defaultMaxDepth
	if v, ok := o.MaxDepth.V(); ok {
		depth = int(v)
	}
	return fmt.Sprintf("[width=%v, threads=%v, depth=%v]", o.BeamWidth, o.MaxThreads, depth)
}

// Solve partitions start's root moves round-robin across worker
// goroutines, runs a beam search from each partition sharing one
// transposition table, and returns the aggregated best result: solved
// beats unsolved; among solved results, the shorter move sequence wins;
// among unsolved results, the longer (more-progress) path wins.
func Solve(ctx context.Context, start grid.Grid, opt Options) (search.BeamSolution, error) {
	roots := start.EnumerateMoves()
	if len(roots) == 0 {
		return search.BeamSolution{Solved: true, BoardsAnalyzed: 1}, nil
	}

	requested := opt.MaxThreads
	if requested == 0 {
		requested = uint(runtime.NumCPU())
		if requested == 0 {
			requested = 2
		}
	}
	threads := int(mathx.Max(requested, 1))
	if threads > len(roots) {
		threads = len(roots)
	}

	width := int(opt.BeamWidth)
	if width == 0 {
		width = defaultBeamWidth
	}

	maxDepth := defaultMaxDepth
	if d, ok := opt.MaxDepth.V(); ok {
		maxDepth = int(d)
	}

	tt := search.NewTranspositionTable()
	partitions := partition(roots, threads)

	logw.Debugf(ctx, "Launching %v workers over %v roots %v", len(partitions), len(roots), opt)

	results := make([]search.BeamSolution, len(partitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range partitions {
		i, p := i, p
		g.Go(func() error {
			results[i] = search.RunBeamWorker(gctx, start, p, tt, width, maxDepth)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return search.BeamSolution{}, err
	}

	best := aggregate(results)
	logw.Infof(ctx, "Solved %v: boards=%v duplicates=%v solved=%v moves=%v", start, best.BoardsAnalyzed, best.DuplicatesDropped, best.Solved, len(best.Moves))
	return best, nil
}

// partition splits roots round-robin into at most n non-empty groups.
func partition(roots []grid.Move, n int) [][]grid.Move {
	out := make([][]grid.Move, n)
	for i, m := range roots {
		idx := i % n
		out[idx] = append(out[idx], m)
	}

	var nonEmpty [][]grid.Move
	for _, p := range out {
		if len(p) > 0 {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return nonEmpty
}

// aggregate picks the best result across workers and sums their
// diagnostic counters over all of them.
func aggregate(results []search.BeamSolution) search.BeamSolution {
	best := results[0]
	for _, r := range results[1:] {
		if better(r, best) {
			best = r
		}
	}

	total := search.BeamSolution{Solved: best.Solved, Moves: best.Moves}
	for _, r := range results {
		total.BoardsAnalyzed += r.BoardsAnalyzed
		total.DuplicatesDropped += r.DuplicatesDropped
	}
	return total
}

// better reports whether a is a preferable result to b:
//   - a solved result always beats an unsolved one;
//   - between two solved results, the shorter move sequence wins;
//   - between two unsolved results, the longer (more-progress) path
//     wins, since it represents a board closer to cleared.
func better(a, b search.BeamSolution) bool {
	if a.Solved != b.Solved {
		return a.Solved
	}
	if a.Solved {
		return len(a.Moves) < len(b.Moves)
	}
	return len(a.Moves) > len(b.Moves)
}
