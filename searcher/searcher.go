// Package searcher provides the reusable per-query execution context
// for nearest-neighbor search: a bounded, distance-ascending result set
// and a pooled scratch structure that eliminates heap allocations in the
// steady state.
package searcher

import (
	"sync"

	"github.com/hupe1980/kdgo/geo"
)

// Searcher is a reusable execution context for a single search operation.
// It owns all scratch memory required for the query.
//
// Searcher is NOT thread-safe. It is intended to be owned by a single
// goroutine during a search operation.
type Searcher struct {
	// Results holds the best candidates found so far, ascending by
	// squared distance, bounded at k entries.
	Results *ResultSet

	// Visited optionally records every stored point visited during the
	// traversal, in visitation order. Nil disables recording. Used for
	// testing and visualization, not for correctness.
	Visited *[]geo.Point

	// OpsPerformed tracks the number of distance calculations.
	OpsPerformed int
}

var searcherPool = sync.Pool{
	New: func() interface{} {
		return &Searcher{Results: NewResultSet(16)}
	},
}

// Acquire retrieves a Searcher from the pool and prepares it for a
// query returning at most k results.
func Acquire(k int) *Searcher {
	s := searcherPool.Get().(*Searcher)
	s.Results.Reset(k)
	s.Visited = nil
	s.OpsPerformed = 0
	return s
}

// Release returns the Searcher to the pool. The caller must not use s,
// or any slice obtained from s.Results.Items, after Release.
func Release(s *Searcher) {
	s.Visited = nil
	searcherPool.Put(s)
}

// Visit records p when visit logging is enabled.
func (s *Searcher) Visit(p geo.Point) {
	if s.Visited != nil {
		*s.Visited = append(*s.Visited, p)
	}
}
