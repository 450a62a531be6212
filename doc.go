// Package kdgo provides an embedded 2D spatial index for exact
// nearest-neighbor search.
//
// kdgo builds an immutable, balanced k-d tree once from a fixed point
// collection and answers k-nearest-neighbor queries by branch-and-bound
// descent, pruning subtrees via per-node bounding rectangles. There is
// no insertion or deletion after construction; a built index is
// read-only and safe for concurrent queries without locking.
//
// # Quick Start
//
//	ctx := context.Background()
//	idx, err := kdgo.New([]kdgo.PointWithData[string]{
//	    {Point: geo.Point{X: 0, Y: 0}, Data: "origin"},
//	    {Point: geo.Point{X: 1, Y: 1}, Data: "diagonal"},
//	    {Point: geo.Point{X: 5, Y: 5}, Data: "far"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := idx.KNNSearch(ctx, geo.Point{X: 1, Y: 0}, 2)
//	for _, r := range results {
//	    fmt.Println(r.Point, r.Distance, r.Data)
//	}
//
// # Fluent Search
//
//	nearest, err := idx.Search(geo.Point{X: 1, Y: 0}).
//	    KNN(5).
//	    Filter(func(id core.PointID) bool { return id != 3 }).
//	    Execute(ctx)
//
// # Key Features
//
//   - Exact search (100% recall), no approximation
//   - Balanced lower-median construction, deterministic for a fixed input order
//   - Zero-allocation queries in the steady state via pooled searchers
//   - Roaring Bitmap allow-list filtering by point ID
//   - Concurrent batch queries over the immutable tree
//   - Generic payloads attached to every point
//
// Persistence, dynamic updates and dimensions other than two are out of
// scope; serialization of a built tree is an external collaborator's
// concern.
package kdgo
