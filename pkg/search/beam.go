package search

import (
	"container/heap"
	"context"

	"github.com/herohde/former/pkg/grid"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Node is one beam search state: the grid reached, the path of
// representatives chosen to reach it, and its heuristic cost.
type Node struct {
	Grid grid.Grid
	Path []grid.Coord
	Cost int

	seq int64 // insertion order, for stable tie-breaking on equal Cost
}

func appendPath(path []grid.Coord, c grid.Coord) []grid.Coord {
	next := make([]grid.Coord, len(path)+1)
	copy(next, path)
	next[len(path)] = c
	return next
}

// nodeHeap is a max-heap on Cost (the root is the worst node), with ties
// broken by insertion order: of two equal-cost nodes, the later-inserted
// one sorts as "worse" and is evicted first. This keeps earlier-discovered
// states at equal cost in their retention slots, per the beam's tie-break
// rule.
type nodeHeap []Node

func worse(a, b Node) bool {
	if a.Cost != b.Cost {
		return a.Cost > b.Cost
	}
	return a.seq > b.seq
}

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return worse(h[i], h[j]) }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(Node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Beam is the bounded, cost-ordered container of candidate Nodes retained
// at one search depth: admission is O(log n), and once the configured
// width is reached, a candidate is admitted only if it beats the current
// worst retained Node.
type Beam struct {
	h   nodeHeap
	seq int64
}

// NewBeam returns an empty Beam.
func NewBeam() *Beam {
	return &Beam{}
}

// Len returns the number of Nodes currently retained.
func (b *Beam) Len() int {
	return b.h.Len()
}

// Nodes returns the retained Nodes, in no particular order.
func (b *Beam) Nodes() []Node {
	return b.h
}

// Admit inserts n if the beam has not yet reached width, or if n is
// strictly better (lower cost, or equal cost and earlier) than the
// current worst retained Node -- in which case the worst is evicted.
// Reports whether n was retained.
func (b *Beam) Admit(n Node, width int) bool {
	b.seq++
	n.seq = b.seq

	if b.h.Len() < width {
		heap.Push(&b.h, n)
		return true
	}
	if worse(b.h[0], n) {
		heap.Pop(&b.h)
		heap.Push(&b.h, n)
		return true
	}
	return false
}

// Best returns the lowest-cost retained Node, if any.
func (b *Beam) Best() (Node, bool) {
	if b.h.Len() == 0 {
		return Node{}, false
	}
	best := b.h[0]
	for _, n := range b.h[1:] {
		if n.Cost < best.Cost {
			best = n
		}
	}
	return best, true
}

// BeamSolution is the result of one beam search: whether the board was
// cleared, the representative move sequence found, and diagnostic
// counters aggregated across every worker that contributed to it.
type BeamSolution struct {
	Solved            bool
	Moves             []grid.Coord
	BoardsAnalyzed    int
	DuplicatesDropped int
}

// RunBeamWorker runs a single-threaded beam expansion from start over the
// given root moves, consulting tt to prune revisits shared with other
// workers. Terminates on solve, when the beam empties, or at maxDepth.
func RunBeamWorker(ctx context.Context, start grid.Grid, roots []grid.Move, tt *TranspositionTable, width, maxDepth int) BeamSolution {
	result := BeamSolution{BoardsAnalyzed: 1}

	beam := NewBeam()
	for _, m := range roots {
		child := start.Play(m)
		result.BoardsAnalyzed++

		if child.CountMoves() < 3 {
			path := appendPath(nil, m.Representative())
			for _, mm := range child.EnumerateMoves() {
				path = appendPath(path, mm.Representative())
			}
			result.Solved = true
			result.Moves = path
			return result
		}

		cost := Score(child)
		key := grid.Compress(child)
		if !tt.InsertIfBetter(key, 0) {
			result.DuplicatesDropped++
			continue
		}

		beam.Admit(Node{Grid: child, Path: appendPath(nil, m.Representative()), Cost: cost}, len(roots)+1)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		if contextx.IsCancelled(ctx) {
			break
		}

		next := NewBeam()

		for _, n := range beam.Nodes() {
			for _, mv := range n.Grid.EnumerateMoves() {
				child := n.Grid.Play(mv)
				result.BoardsAnalyzed++

				if child.CountMoves() < 3 {
					path := appendPath(n.Path, mv.Representative())
					for _, m := range child.EnumerateMoves() {
						path = appendPath(path, m.Representative())
					}
					result.Solved = true
					result.Moves = path
					return result
				}

				cost := Score(child)
				key := grid.Compress(child)
				if !tt.InsertIfBetter(key, depth) {
					result.DuplicatesDropped++
					continue
				}

				cand := Node{
					Grid: child,
					Path: appendPath(n.Path, mv.Representative()),
					Cost: cost,
				}
				next.Admit(cand, width)
			}
		}

		if next.Len() == 0 {
			break
		}
		beam = next
	}

	if best, ok := beam.Best(); ok {
		result.Moves = best.Path
	}
	return result
}
