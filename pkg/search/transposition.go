package search

import (
	"sync"

	"github.com/herohde/former/pkg/grid"
)

// NumShards is the number of independently-mutexed partitions of the
// transposition table. Chosen to keep lock contention low for the handful
// of concurrent beam workers a search realistically runs (<=64), the same
// design tradeoff the chess engine's single sharded table once made for
// position hashes.
const NumShards = 256

type shard struct {
	mu sync.Mutex
	m  map[grid.Compressed]int
}

// TranspositionTable maps a compressed grid to the smallest depth at which
// it has been enqueued. Unlike a replacement cache, it is exact: no entry
// is ever evicted in favor of a worse one, so the table grows monotonically
// for the lifetime of one search. Shared by every worker of one
// solve invocation; must be thread-safe.
type TranspositionTable struct {
	shards [NumShards]shard
}

// NewTranspositionTable returns an empty table. A fresh instance is used
// per solve call; the table has no lifetime beyond one search.
func NewTranspositionTable() *TranspositionTable {
	tt := &TranspositionTable{}
	for i := range tt.shards {
		tt.shards[i].m = make(map[grid.Compressed]int)
	}
	return tt
}

// InsertIfBetter reports whether key at depth is worth expanding.
//
//   - true ("novel"): key was absent, or stored at a strictly greater
//     depth -- in which case the stored depth is overwritten with depth.
//   - false ("dominated"): key is already stored at a depth <= depth.
//
// Acquires and releases the one shard lock covering key; never holds more
// than one shard lock at a time, so no lock ordering is required and no
// deadlock is possible.
func (tt *TranspositionTable) InsertIfBetter(key grid.Compressed, depth int) bool {
	s := &tt.shards[key.Shard(NumShards)]

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.m[key]; ok && stored <= depth {
		return false
	}
	s.m[key] = depth
	return true
}

// Size returns the total number of entries across all shards. Diagnostic.
func (tt *TranspositionTable) Size() int {
	total := 0
	for i := range tt.shards {
		tt.shards[i].mu.Lock()
		total += len(tt.shards[i].m)
		tt.shards[i].mu.Unlock()
	}
	return total
}
