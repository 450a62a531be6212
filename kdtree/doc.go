// Package kdtree implements an immutable, balanced 2D k-d tree for
// exact nearest-neighbor search.
//
// The tree is built once from a point collection and then queried
// repeatedly; it supports no insertion or deletion after construction.
// Construction partitions at the lower median on alternating axes
// (X at even depths, Y at odd depths), annotating every node with the
// axis-aligned region of the plane assigned to its subtree. Queries
// descend recursively, pruning any subtree whose region provably cannot
// contain a closer point than the candidates already found.
//
// A built Tree is never mutated and is therefore safe to query
// concurrently from multiple goroutines without locking.
//
// # Usage
//
//	tree, err := kdtree.Build(points)
//	if err != nil {
//	    return err
//	}
//	best, ok := tree.Nearest(geo.Point{X: 1, Y: 0})
//	top5, err := tree.KNearest(geo.Point{X: 1, Y: 0}, 5)
package kdtree
