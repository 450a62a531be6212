package kdgo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kdgo/core"
	"github.com/hupe1980/kdgo/geo"
	"github.com/hupe1980/kdgo/kdtree"
)

// PointWithData couples a point with its associated data payload.
type PointWithData[T any] struct {
	// Point is the 2D location to index.
	Point geo.Point

	// Data is the payload returned alongside the point in search results.
	Data T
}

// SearchResult represents a search result.
type SearchResult[T any] struct {
	kdtree.Result

	// Data is the associated data of the search result.
	Data T
}

// Index is an immutable 2D spatial index with data payloads attached to
// every point. It is built once and safe for concurrent queries.
type Index[T any] struct {
	tree    *kdtree.Tree
	data    []T
	metrics MetricsCollector
	logger  *Logger
}

// New builds an index from points with attached data. Point IDs are
// assigned by input position (the first item gets ID 0). The input
// slice is not retained; an empty input yields a valid empty index.
//
// A point with a NaN or infinite coordinate fails the whole batch with
// *ErrNonFiniteCoordinate.
func New[T any](items []PointWithData[T], optFns ...Option) (*Index[T], error) {
	opts := applyOptions(optFns)

	points := make([]geo.Point, len(items))
	data := make([]T, len(items))
	for i, it := range items {
		points[i] = it.Point
		data[i] = it.Data
	}

	return build(points, data, opts)
}

// NewFromPoints builds an index over bare points, without payloads.
func NewFromPoints(points []geo.Point, optFns ...Option) (*Index[struct{}], error) {
	opts := applyOptions(optFns)

	// Copy before handing off; Build copies again internally, but the
	// data slice length must match and the caller's slice stays untouched.
	pts := make([]geo.Point, len(points))
	copy(pts, points)

	return build(pts, make([]struct{}, len(points)), opts)
}

func build[T any](points []geo.Point, data []T, opts options) (*Index[T], error) {
	ctx := context.Background()
	start := time.Now()

	tree, err := kdtree.Build(points)
	if err != nil {
		err = translateError(err)
		opts.metricsCollector.RecordBuild(len(points), time.Since(start), err)
		opts.logger.LogBuild(ctx, len(points), 0, err)
		return nil, err
	}

	opts.metricsCollector.RecordBuild(len(points), time.Since(start), nil)
	opts.logger.LogBuild(ctx, len(points), tree.Stats().Height, nil)

	return &Index[T]{
		tree:    tree,
		data:    data,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}, nil
}

// Len returns the number of indexed points.
func (ix *Index[T]) Len() int {
	return ix.tree.Len()
}

// Stats returns structural properties of the underlying tree.
func (ix *Index[T]) Stats() kdtree.Stats {
	return ix.tree.Stats()
}

// Get returns the data payload associated with the given point ID.
func (ix *Index[T]) Get(id core.PointID) (T, error) {
	if int(id) >= len(ix.data) {
		var zero T
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return ix.data[id], nil
}

// FilterFunc is a function type used for filtering search results.
type FilterFunc func(id core.PointID) bool

// KNNSearchOptions contains options for KNN search.
type KNNSearchOptions struct {
	// FilterFunc is a function used to filter search results.
	// Filtered points are skipped, their subtrees are still explored.
	FilterFunc FilterFunc

	// AllowList restricts results to point IDs contained in the bitmap.
	// Combined with FilterFunc when both are set.
	AllowList *roaring.Bitmap

	// Visited, when non-nil, is appended with every stored point visited
	// during the search, in visitation order. Diagnostic only.
	Visited *[]geo.Point
}

// KNNSearch returns the k indexed points nearest to query, ascending by
// squared distance, with their data payloads. Fewer than k results are
// returned when the index holds fewer than k eligible points; an empty
// index yields no results. k < 1 returns ErrInvalidK.
func (ix *Index[T]) KNNSearch(ctx context.Context, query geo.Point, k int, optFns ...func(o *KNNSearchOptions)) ([]SearchResult[T], error) {
	start := time.Now()

	var opts KNNSearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	matches, err := ix.tree.KNearest(query, k, func(o *kdtree.SearchOptions) {
		o.Filter = combineFilters(opts.FilterFunc, opts.AllowList)
		o.Visited = opts.Visited
	})
	if err != nil {
		err = translateError(err)
		ix.metrics.RecordSearch(k, time.Since(start), err)
		ix.logger.LogSearch(ctx, k, 0, err)
		return nil, err
	}

	results := make([]SearchResult[T], len(matches))
	for i, m := range matches {
		results[i] = SearchResult[T]{Result: m, Data: ix.data[m.ID]}
	}

	ix.metrics.RecordSearch(k, time.Since(start), nil)
	ix.logger.LogSearch(ctx, k, len(results), nil)
	return results, nil
}

// NearestNeighbor returns the single indexed point nearest to query.
// An empty index returns ErrNotFound.
func (ix *Index[T]) NearestNeighbor(ctx context.Context, query geo.Point) (SearchResult[T], error) {
	results, err := ix.KNNSearch(ctx, query, 1)
	if err != nil {
		return SearchResult[T]{}, err
	}
	if len(results) == 0 {
		return SearchResult[T]{}, ErrNotFound
	}
	return results[0], nil
}

// BatchKNNSearch answers one KNN query per element of queries, fanning
// out across goroutines. The result slice is index-aligned with queries.
// The tree is immutable, so the concurrent reads need no locking; each
// query owns its own accumulator.
func (ix *Index[T]) BatchKNNSearch(ctx context.Context, queries []geo.Point, k int, optFns ...func(o *KNNSearchOptions)) ([][]SearchResult[T], error) {
	results := make([][]SearchResult[T], len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			r, err := ix.KNNSearch(gctx, q, k, optFns...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ix.logger.LogBatchSearch(ctx, len(queries), k, err)
		return nil, err
	}

	ix.logger.LogBatchSearch(ctx, len(queries), k, nil)
	return results, nil
}

func combineFilters(fn FilterFunc, allowList *roaring.Bitmap) kdtree.FilterFunc {
	switch {
	case fn == nil && allowList == nil:
		return nil
	case allowList == nil:
		return kdtree.FilterFunc(fn)
	case fn == nil:
		return func(id core.PointID) bool {
			return allowList.Contains(uint32(id))
		}
	default:
		return func(id core.PointID) bool {
			return allowList.Contains(uint32(id)) && fn(id)
		}
	}
}
