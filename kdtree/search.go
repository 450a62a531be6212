package kdtree

import (
	"github.com/hupe1980/kdgo/core"
	"github.com/hupe1980/kdgo/geo"
	"github.com/hupe1980/kdgo/searcher"
)

// Result is a single nearest-neighbor match.
type Result struct {
	// ID is the point's build-time identifier (input position).
	ID core.PointID
	// Point is the stored point.
	Point geo.Point
	// Distance is the squared Euclidean distance to the query.
	Distance float64
}

// FilterFunc restricts which stored points may appear in results.
// Filtered points are skipped for insertion but their subtrees are
// still traversed.
type FilterFunc func(id core.PointID) bool

// SearchOptions contains per-query options for KNearest.
type SearchOptions struct {
	// Filter, when non-nil, keeps only points for which it returns true.
	Filter FilterFunc

	// Visited, when non-nil, is appended with every stored point visited
	// during the traversal, in visitation order. Diagnostic only.
	Visited *[]geo.Point
}

// Nearest returns the stored point closest to query, or false if the
// tree is empty. A query coincident with a stored point returns that
// point at distance zero.
func (t *Tree) Nearest(query geo.Point) (Result, bool) {
	results, err := t.KNearest(query, 1)
	if err != nil || len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}

// KNearest returns up to k stored points ascending by squared distance
// to query. Querying an empty tree is not an error and yields no
// results; k < 1 returns ErrInvalidK.
func (t *Tree) KNearest(query geo.Point, k int, optFns ...func(o *SearchOptions)) ([]Result, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}

	var opts SearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if t.root == nil {
		return nil, nil
	}

	s := searcher.Acquire(k)
	defer searcher.Release(s)
	s.Visited = opts.Visited

	t.root.search(query, 0, opts.Filter, s)

	items := s.Results.Items()
	results := make([]Result, len(items))
	for i, it := range items {
		results[i] = Result{ID: it.ID, Point: it.Point, Distance: it.Distance}
	}
	return results, nil
}

// KNearestWithSearcher runs the same bounded search using a caller-owned
// Searcher, leaving the matches in s.Results. It allows callers with
// strict allocation budgets to reuse scratch memory across queries.
// s must have been prepared for k results (searcher.Acquire or
// Results.Reset).
func (t *Tree) KNearestWithSearcher(query geo.Point, filter FilterFunc, s *searcher.Searcher) {
	if t.root == nil {
		return
	}
	t.root.search(query, 0, filter, s)
}

// search is the bounded branch-and-bound descent both query operations
// delegate to.
func (n *node) search(query geo.Point, depth int, filter FilterFunc, s *searcher.Searcher) {
	s.Visit(n.pt)
	s.OpsPerformed++

	d := geo.SquaredDistance(query, n.pt)
	if filter == nil || filter(n.id) {
		s.Results.Insert(searcher.Item{ID: n.id, Point: n.pt, Distance: d})
	}

	axis := geo.AxisForDepth(depth)
	near, far := n.right, n.left
	if query.Coord(axis) < n.pt.Coord(axis) {
		near, far = n.left, n.right
	}

	if near != nil {
		near.search(query, depth+1, filter, s)
	}

	if far != nil {
		// The far subtree can only improve or fill the results when the
		// closest conceivable point inside its region beats the current
		// worst candidate, or the result set still has room.
		bound := far.rect.SquaredDistance(query)
		if worst, ok := s.Results.Worst(); !ok || !s.Results.Full() || bound <= worst {
			far.search(query, depth+1, filter, s)
		}
	}
}
