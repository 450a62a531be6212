// Package geo provides the planar geometry primitives used by the index.
//
// # Types
//
//   - Point: an immutable (x, y) coordinate pair
//   - Rect: an axis-aligned region of the plane
//   - Axis: the splitting dimension (X or Y) at a tree depth
//
// # Usage
//
//	d := geo.SquaredDistance(a, b)
//	lower := rect.SquaredDistance(query)
package geo
