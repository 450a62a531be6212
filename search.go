// Package kdgo provides an embedded 2D spatial index for exact
// nearest-neighbor search.
//
// This file implements a fluent search API for querying Index instances.
package kdgo

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/kdgo/geo"
)

// Search creates a new fluent search builder for the given query point.
//
// Example:
//
//	results, err := idx.Search(query).
//	    KNN(10).
//	    Filter(func(id core.PointID) bool { return id%2 == 0 }).
//	    Execute(ctx)
func (ix *Index[T]) Search(query geo.Point) *SearchBuilder[T] {
	return &SearchBuilder[T]{
		ix:    ix,
		query: query,
		k:     10, // Default k
	}
}

// SearchBuilder is a fluent builder for constructing search queries.
type SearchBuilder[T any] struct {
	ix    *Index[T]
	query geo.Point
	k     int

	// Filters
	filterFunc FilterFunc
	allowList  *roaring.Bitmap

	// Diagnostics
	visited *[]geo.Point
}

// KNN sets the number of nearest neighbors to return.
func (sb *SearchBuilder[T]) KNN(k int) *SearchBuilder[T] {
	sb.k = k
	return sb
}

// Filter sets a filter function for search results.
// Only points where filter(id) returns true are considered.
func (sb *SearchBuilder[T]) Filter(fn FilterFunc) *SearchBuilder[T] {
	sb.filterFunc = fn
	return sb
}

// WithinBitmap restricts results to point IDs contained in the bitmap.
func (sb *SearchBuilder[T]) WithinBitmap(bm *roaring.Bitmap) *SearchBuilder[T] {
	sb.allowList = bm
	return sb
}

// VisitLog records every point visited during the search into the given
// slice, in visitation order. Diagnostic hook for testing and
// visualization; it does not affect results.
func (sb *SearchBuilder[T]) VisitLog(visited *[]geo.Point) *SearchBuilder[T] {
	sb.visited = visited
	return sb
}

// Execute runs the search and returns the results.
func (sb *SearchBuilder[T]) Execute(ctx context.Context) ([]SearchResult[T], error) {
	return sb.ix.KNNSearch(ctx, sb.query, sb.k, func(o *KNNSearchOptions) {
		o.FilterFunc = sb.filterFunc
		o.AllowList = sb.allowList
		o.Visited = sb.visited
	})
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder[T]) MustExecute(ctx context.Context) []SearchResult[T] {
	results, err := sb.Execute(ctx)
	if err != nil {
		panic(err)
	}
	return results
}

// First returns only the nearest result, or ErrNotFound if none matched.
func (sb *SearchBuilder[T]) First(ctx context.Context) (SearchResult[T], error) {
	sb.k = 1
	results, err := sb.Execute(ctx)
	if err != nil {
		return SearchResult[T]{}, err
	}
	if len(results) == 0 {
		return SearchResult[T]{}, ErrNotFound
	}
	return results[0], nil
}

// Count executes the search and returns the number of results.
func (sb *SearchBuilder[T]) Count(ctx context.Context) (int, error) {
	results, err := sb.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Exists checks if at least one result matches the search.
func (sb *SearchBuilder[T]) Exists(ctx context.Context) (bool, error) {
	sb.k = 1
	results, err := sb.Execute(ctx)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}
