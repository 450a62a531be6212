package kdtree

import (
	"cmp"
	"slices"

	"github.com/hupe1980/kdgo/core"
	"github.com/hupe1980/kdgo/geo"
)

// node owns exactly one point, two optional children and the region of
// the plane assigned to the subtree rooted at it. The region is the
// half-plane slab inherited from the parent, clipped at the parent's
// splitting coordinate - not merely the bounding box of the contained
// points.
type node struct {
	id    core.PointID
	pt    geo.Point
	left  *node
	right *node
	rect  geo.Rect
}

// Tree is an immutable balanced 2D k-d tree. The zero value (and a tree
// built from no points) is a valid empty tree.
type Tree struct {
	root *node
	size int
}

// Stats is a snapshot of structural properties of a built tree.
type Stats struct {
	// Size is the number of indexed points.
	Size int
	// Height is the maximum node depth plus one; zero for an empty tree.
	// A balanced build keeps this at floor(log2(n))+1.
	Height int
	// Bounds is the bounding rectangle of all indexed points.
	// Meaningless when Size is zero.
	Bounds geo.Rect
}

// Build constructs a balanced tree from the given points. Points are
// assigned dense IDs by input position (the first point gets ID 0).
//
// The input is copied, never reordered or retained; an empty input
// yields a valid empty tree. A point with a NaN or infinite coordinate
// fails the whole batch with *ErrNonFiniteCoordinate.
//
// For a fixed input order the tree shape is fully determined: each
// level sorts stably by the axis coordinate and pivots on the lower
// median, so ties keep their original relative order.
func Build(points []geo.Point) (*Tree, error) {
	for i, p := range points {
		if !p.IsFinite() {
			return nil, &ErrNonFiniteCoordinate{Index: i, Point: p}
		}
	}
	if len(points) == 0 {
		return &Tree{}, nil
	}

	items := make([]item, len(points))
	for i, p := range points {
		items[i] = item{id: core.PointID(i), pt: p}
	}

	return &Tree{
		root: build(items, 0, geo.BoundingRect(points)),
		size: len(points),
	}, nil
}

type item struct {
	id core.PointID
	pt geo.Point
}

func build(items []item, depth int, region geo.Rect) *node {
	if len(items) == 0 {
		return nil
	}

	axis := geo.AxisForDepth(depth)
	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.pt.Coord(axis), b.pt.Coord(axis))
	})

	mid := len(items) / 2
	pivot := items[mid]
	split := pivot.pt.Coord(axis)

	return &node{
		id:    pivot.id,
		pt:    pivot.pt,
		rect:  region,
		left:  build(items[:mid], depth+1, region.ClampMax(axis, split)),
		right: build(items[mid+1:], depth+1, region.ClampMin(axis, split)),
	}
}

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	return t.size
}

// Stats returns structural properties of the tree.
func (t *Tree) Stats() Stats {
	s := Stats{Size: t.size, Height: t.root.height()}
	if t.root != nil {
		s.Bounds = t.root.rect
	}
	return s
}

func (n *node) height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.left.height(), n.right.height())
}

// Walk calls fn for every node in depth-first pre-order with the node's
// point, its region rectangle and its depth. Traversal stops early if
// fn returns false.
func (t *Tree) Walk(fn func(pt geo.Point, region geo.Rect, depth int) bool) {
	t.root.walk(0, fn)
}

func (n *node) walk(depth int, fn func(geo.Point, geo.Rect, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n.pt, n.rect, depth) {
		return false
	}
	return n.left.walk(depth+1, fn) && n.right.walk(depth+1, fn)
}
